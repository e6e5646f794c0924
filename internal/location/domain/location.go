package domain

import "time"

type LocationType string

const (
	TypeBilling  LocationType = "billing"
	TypeShipping LocationType = "shipping"
	TypeStore    LocationType = "store"
)

// Location is never updated or deleted once created; any number of
// customers and line items may reference the same row.
type Location struct {
	ID           int64
	Type         LocationType
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	CreatedAt    time.Time
}

// Address is the wire-level shape of a postal address, before it is
// persisted as a typed Location.
type Address struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
}

func (a Address) AsLocation(t LocationType) Location {
	return Location{
		Type:         t,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}
