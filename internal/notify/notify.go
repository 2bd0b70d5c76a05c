// Package notify defines the transient, user-visible notifications (toasts)
// the page shows after an action.
package notify

import (
	"encoding/json"
	"fmt"
)

// Variant is the severity of a notification.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a title, a description and a severity.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// IsError reports whether the notification signals a failure.
func (n Notification) IsError() bool {
	return n.Variant == VariantDestructive
}

// Encode serialises the notification for transport in a session flash.
func (n Notification) Encode() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("encode notification: %w", err)
	}
	return string(b), nil
}

// Decode parses a value produced by Encode.
func Decode(s string) (Notification, error) {
	var n Notification
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	return n, nil
}

// MissingFields is shown when the name or email is blank.
func MissingFields() Notification {
	return Notification{
		Title:       "Please fill in all fields",
		Description: "Both name and email are required.",
		Variant:     VariantDestructive,
	}
}

// InvalidEmail is shown when the email does not have a valid shape.
func InvalidEmail() Notification {
	return Notification{
		Title:       "Invalid email",
		Description: "Please enter a valid email address.",
		Variant:     VariantDestructive,
	}
}

// SubmissionInProgress is shown when a submit arrives while another is running.
func SubmissionInProgress() Notification {
	return Notification{
		Title:       "Hang on",
		Description: "Your subscription is already being processed.",
		Variant:     VariantDestructive,
	}
}

// Subscribed is shown after a successful submission.
func Subscribed() Notification {
	return Notification{
		Title:       "Success! 🎉",
		Description: "Check your email for the free resource!",
		Variant:     VariantDefault,
	}
}

// DownloadStarted confirms a free resource request.
func DownloadStarted() Notification {
	return Notification{
		Title:       "Download Started!",
		Description: "Your free resource is being prepared.",
		Variant:     VariantDefault,
	}
}
