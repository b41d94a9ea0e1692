// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is wrapped by every *SelectionError.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrUnknownVariant is returned for a variant with no descriptor.
	ErrUnknownVariant = errors.New("unknown algorithm variant")

	// ErrMalformedResponse wraps bodies that do not match the declared shape.
	ErrMalformedResponse = errors.New("malformed algorithm response")
)

// SelectionError names the selection an algorithm is missing.
// Message is suitable for the status slot.
type SelectionError struct {
	Variant Variant
	Field   Field
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Variant, e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidSelection.
func (e *SelectionError) Unwrap() error {
	return ErrInvalidSelection
}
