package wisp

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrConfiguration is wrapped by every ConfigError.
	ErrConfiguration = errors.New("wisp: invalid configuration")

	// ErrMissingTarget reports a trigger bound to a container with no units.
	// Triggers treat it as a no-op.
	ErrMissingTarget = errors.New("wisp: container has no units")

	// ErrPersistence is wrapped by every PersistenceError.
	ErrPersistence = errors.New("wisp: persistence write failed")

	// ErrQuotaExceeded is returned by MemoryStore when a write would exceed
	// its capacity.
	ErrQuotaExceeded = errors.New("wisp: storage quota exceeded")
)

// ConfigError describes an invalid configuration value. It is returned at
// initialization and values are never silently clamped.
type ConfigError struct {
	Profile string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Profile != "" {
		return fmt.Sprintf("wisp: profile %q: %s: %s", e.Profile, e.Field, e.Reason)
	}
	return fmt.Sprintf("wisp: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// PersistenceError is the non-fatal warning returned when the image store
// rejects a write. The visual update it accompanies has already been applied.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("wisp: persist %q: %v", e.Key, e.Err)
}

// Unwrap exposes both the sentinel and the store's cause to errors.Is.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

func quote(s string) string { return strconv.Quote(s) }

func isMissingTarget(err error) bool { return errors.Is(err, ErrMissingTarget) }
