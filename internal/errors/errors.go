// Package errors defines sentinel errors for the shopping list service.
package errors

import "errors"

// ErrItemNotFound is returned when no item exists with the requested ID.
var ErrItemNotFound = errors.New("item not found")
