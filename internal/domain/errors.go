package domain

import (
	"errors"
	"fmt"
)

// Resolution-stage failures surface to the caller as request-level errors.
// Per-recipient failures inside a fan-out never do; they are recovered
// locally and aggregated into counts.
var (
	// ErrNotFound covers unknown recipients, conversations and posts.
	ErrNotFound = errors.New("not found")

	// ErrNoDeliveryAddress means the recipient exists but never registered a
	// push token. Batch callers treat it as "nothing to do".
	ErrNoDeliveryAddress = errors.New("no delivery address registered")

	ErrOtpNotFound        = errors.New("no verification code found")
	ErrOtpExpired         = errors.New("verification code expired")
	ErrOtpTooManyAttempts = errors.New("verification attempts exhausted")
)

// InvalidCodeError is returned on a code mismatch, carrying how many
// attempts the caller has left before the entry is exhausted.
type InvalidCodeError struct {
	RemainingAttempts int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code, %d attempts remaining", e.RemainingAttempts)
}

// RateLimitedError is returned when a code is re-requested while the
// previous one is still inside its cooldown window.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("code already sent, retry after %d seconds", e.RetryAfterSeconds)
}
