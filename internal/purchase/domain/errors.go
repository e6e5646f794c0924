package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers the single-row purchase lookup.
var ErrNotFound = errors.New("purchase not found")

// ErrNoShippingOption is the defensive case for a directive with no
// recognizable form; request validation makes it unreachable in practice.
var ErrNoShippingOption = errors.New("no shipping location specified")

// NotFoundError reports a missing entity referenced by a purchase
// request. The message surfaces verbatim in the HTTP response.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}
