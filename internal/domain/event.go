package domain

import "time"

// Event types emitted by the gateway.
const (
	EventLogin     = "auth.login"
	EventTwoFactor = "auth.2fa"
	EventRegister  = "auth.register"
)

// Event is a notification of a completed gateway operation. It never carries secrets.
type Event struct {
	EventID    string    `json:"id"`
	Type       string    `json:"type"`
	UserID     string    `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
