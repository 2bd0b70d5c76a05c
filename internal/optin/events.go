package optin

import (
	"context"
	"time"

	"github.com/pyowdigitals/optin/internal/pubsub"
)

// ResourceRequest is announced when a visitor asks for the free resource.
type ResourceRequest struct {
	VisitorID   string    `json:"visitor_id"`
	RequestedAt time.Time `json:"requested_at"`
}

var (
	// LeadSubscribed is published after each successful simulated submission.
	LeadSubscribed = pubsub.NewEvent[Lead]("leads.subscribed", "A visitor completed the opt-in form")
	// ResourceRequested is published when the download action is used. No file is sent.
	ResourceRequested = pubsub.NewEvent[ResourceRequest]("leads.resource_requested", "A visitor asked for the free resource")
)

// AnnounceTo returns an OnSubscribed hook that publishes each lead as LeadSubscribed.
func AnnounceTo(p pubsub.Publisher) func(ctx context.Context, lead Lead) error {
	return func(ctx context.Context, lead Lead) error {
		return pubsub.Publish(ctx, p, LeadSubscribed, lead.VisitorID, lead)
	}
}
