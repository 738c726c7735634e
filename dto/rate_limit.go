package dto

import "time"

// RateLimitDecision is the outcome of a single limiter check.
type RateLimitDecision struct {
	Allowed           bool      `json:"allowed"`
	Remaining         int       `json:"remaining"`
	ResetTime         time.Time `json:"reset_time"`
	RetryAfterSeconds int       `json:"retry_after,omitempty"`
}
