package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is one piece of content handed to a platform sender.
type Message struct {
	Platform Platform  `json:"platform"`
	TokenID  uuid.UUID `json:"token_id"`
	Body     string    `json:"body"`
}

// Ack is a sender's receipt for a delivered message.
type Ack struct {
	MessageID string    `json:"message_id"`
	SentAt    time.Time `json:"sent_at"`
}

// Sender delivers a message to one social platform. Implementations
// must honor ctx cancellation; the sweep calls Send under a bounded
// timeout and marks the item failed when the deadline passes.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Ack, error)
}

// Booking is a request to place a promotion into a podcast episode.
type Booking struct {
	Episode string    `json:"episode"`
	Slot    AdSlot    `json:"slot"`
	AirAt   time.Time `json:"air_at"`
	TokenID uuid.UUID `json:"token_id"`
}

// PodcastScheduler books ad slots with the podcast collaborator.
type PodcastScheduler interface {
	Book(ctx context.Context, booking Booking) error
}
