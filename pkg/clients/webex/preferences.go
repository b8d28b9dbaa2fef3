package webex

import (
	"context"
	"net/url"
)

// PersonalMeetingRoom is the personal-room block of a user's meeting
// preferences. The access code doubles as a permanent meeting number.
type PersonalMeetingRoom struct {
	PersonalMeetingRoomLink string `json:"personalMeetingRoomLink"`
	SIPAddress              string `json:"sipAddress"`
	AccessCode              string `json:"accessCode"`
	HostPIN                 string `json:"hostPin"`
}

// GetPersonalMeetingRoom fetches the personal-room preferences of the given
// host, used to detect lookups targeting someone else's personal room.
func (c *Client) GetPersonalMeetingRoom(ctx context.Context, userEmail string) (*PersonalMeetingRoom, error) {
	query := url.Values{}
	if userEmail != "" {
		query.Set("userEmail", userEmail)
	}

	var pmr PersonalMeetingRoom
	if err := c.getJSON(ctx, "/meetingPreferences/personalMeetingRoom", query, &pmr); err != nil {
		return nil, err
	}
	return &pmr, nil
}
