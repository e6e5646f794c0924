package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Product price is in the minor currency unit. Products are immutable
// after creation.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	CreatedAt   time.Time
}

type NewProduct struct {
	Name        string
	Description string
	Price       int64
}
