package domain

import (
	"errors"
	"time"

	locdomain "github.com/commercekit/purchase-service/internal/location/domain"
)

var ErrNotFound = errors.New("customer not found")

type Customer struct {
	ID                int64
	Email             string
	PhoneNumber       string
	FirstName         string
	LastName          string
	BillingLocationID int64
	CreatedAt         time.Time
}

// NewCustomer carries a registration request. The billing address is
// persisted first and the customer row references it, both within one
// transaction.
type NewCustomer struct {
	Email          string
	PhoneNumber    string
	FirstName      string
	LastName       string
	BillingAddress locdomain.Address
}
