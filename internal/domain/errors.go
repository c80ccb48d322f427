package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the root of every lookup failure inside an aggregate.
	ErrNotFound = errors.New("not found")

	// ErrDayNotFound indicates a day identifier absent from the plan.
	ErrDayNotFound = fmt.Errorf("day %w", ErrNotFound)

	// ErrTaskNotFound indicates a task identifier absent from its day.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
)
