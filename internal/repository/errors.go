package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches. It wraps domain.ErrNotFound
	// so callers can test for either.
	ErrNotFound = fmt.Errorf("record %w", domain.ErrNotFound)

	ErrAlreadyExists = errors.New("already exists")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
