package webex

import (
	"context"
	"net/http"
)

const defaultDeviceURL = "https://wdm-a.wbx2.com/wdm/api/v1"

// Device is a registered device record carrying the websocket URL used for
// the persistent event connection.
type Device struct {
	URL          string `json:"url"`
	WebSocketURL string `json:"webSocketUrl"`
	DeviceType   string `json:"deviceType"`
	Name         string `json:"name"`
}

type createDeviceRequest struct {
	DeviceName     string `json:"deviceName"`
	DeviceType     string `json:"deviceType"`
	LocalizedModel string `json:"localizedModel"`
	Model          string `json:"model"`
	Name           string `json:"name"`
	SystemName     string `json:"systemName"`
	SystemVersion  string `json:"systemVersion"`
}

// CreateDevice registers a device with the device-management service and
// returns the record with the websocket URL to dial. The device URL is
// absolute and outside the API base URL.
func (c *Client) CreateDevice(ctx context.Context, deviceURL, name string) (*Device, error) {
	if deviceURL == "" {
		deviceURL = defaultDeviceURL
	}

	req := createDeviceRequest{
		DeviceName:     name,
		DeviceType:     "DESKTOP",
		LocalizedModel: "go",
		Model:          "go",
		Name:           name,
		SystemName:     "recording-bot",
		SystemVersion:  "0.1",
	}

	resp, err := c.doAbsoluteRequest(ctx, http.MethodPost, deviceURL+"/devices", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var device Device
	if err := decodeJSON(resp.Body, &device); err != nil {
		return nil, err
	}
	return &device, nil
}
