package leads

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pyowdigitals/optin/internal/logging"
	"github.com/pyowdigitals/optin/internal/optin"
	"github.com/pyowdigitals/optin/internal/pubsub"
)

// LeadLogger records opt-in events in the log. Nothing is persisted.
type LeadLogger struct {
	subscriber pubsub.Subscriber
}

// NewLeadLogger creates a logger for the opt-in events on sub.
func NewLeadLogger(sub pubsub.Subscriber) *LeadLogger {
	return &LeadLogger{subscriber: sub}
}

// Start subscribes to the opt-in events; handling continues in the background until ctx is done.
func (l *LeadLogger) Start(ctx context.Context) error {
	if err := pubsub.Subscribe(ctx, l.subscriber, optin.LeadSubscribed, l.handleLead); err != nil {
		return fmt.Errorf("subscribe %s: %w", optin.LeadSubscribed.Name(), err)
	}
	if err := pubsub.Subscribe(ctx, l.subscriber, optin.ResourceRequested, l.handleResourceRequest); err != nil {
		return fmt.Errorf("subscribe %s: %w", optin.ResourceRequested.Name(), err)
	}
	return nil
}

func (l *LeadLogger) handleLead(ctx context.Context, visitorID string, lead optin.Lead) error {
	slog.InfoContext(ctx, "New lead",
		"submission_id", lead.SubmissionID,
		"visitor_id", visitorID,
		"name", lead.Name,
		"email", logging.MaskEmail(lead.Email),
		"submitted_at", lead.SubmittedAt,
	)
	return nil
}

func (l *LeadLogger) handleResourceRequest(ctx context.Context, visitorID string, req optin.ResourceRequest) error {
	slog.InfoContext(ctx, "Free resource requested", "visitor_id", visitorID, "requested_at", req.RequestedAt)
	return nil
}
