package service

import (
	"errors"

	"github.com/dukerupert/tantuka/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// storeError passes domain errors through untouched and wraps anything else as
// an internal error so store details never reach clients.
func storeError(err error, op, message string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return domain.Internal(err, op, message)
}

// page normalizes skip/limit pairs coming from query strings.
func page(skip, limit int32) (int32, int32) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}
