package service

import (
	"fmt"

	"github.com/openshelf/catalog-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent business-rule violations that callers may want to
// check for with errors.Is(). They wrap domain.ErrValidation so the API layer
// can match the whole invalid-argument family with a single check.
var (
	// ErrEmailInUse indicates a creation attempt with an email some user
	// already holds. Returned only on the creation path of UserService.Save.
	ErrEmailInUse = fmt.Errorf("%w: email already in use", domain.ErrValidation)

	// ErrEmailInUseByAnother indicates a partial update tried to take an
	// email held by a different user. Updating a user to its own current
	// email is not a conflict.
	ErrEmailInUseByAnother = fmt.Errorf(
		"%w: email already in use by another user", domain.ErrValidation)

	// ErrStockBelowZero indicates a stock adjustment whose result would be
	// negative. The returned error states the current stock.
	ErrStockBelowZero = fmt.Errorf(
		"%w: operation would result in negative stock", domain.ErrValidation)
)
