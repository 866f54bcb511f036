package domain

import (
	"errors"
	"fmt"
)

// The core surfaces exactly two error kinds. Every failure a service returns
// wraps one of these sentinels together with a human-readable description.
var (
	// ErrInvalidInput marks requests whose parameters are semantically wrong:
	// bad format, out-of-range id, duplicate, length violation, or an
	// operation applied in the wrong state (e.g. pinning a pinned message).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized marks requests whose credential is unknown, or whose
	// resolved user lacks the required membership/ownership/global role.
	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidInputf wraps ErrInvalidInput with a description.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Unauthorizedf wraps ErrUnauthorized with a description.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}
