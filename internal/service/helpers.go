package service

import (
	"errors"
	"time"
)

// ErrInvalidInput marks requests rejected before reaching storage.
var ErrInvalidInput = errors.New("invalid input")

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}
