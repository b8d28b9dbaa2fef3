// Package events contains the two inbound transports. Both produce the same
// normalized InboundMessage into the pipeline; which one runs is a
// deployment choice, never both against shared state.
package events

import (
	"context"

	"github.com/meetrec/recording-bot/internal/domain"
)

// Handler consumes one normalized inbound event.
type Handler func(ctx context.Context, msg domain.InboundMessage)

// InboundEventSource delivers chat events into the pipeline until the
// context is cancelled.
type InboundEventSource interface {
	Run(ctx context.Context) error
}
