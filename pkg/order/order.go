package order

import (
	"context"
	"encoding/json"
)

// Customer holds the contact and delivery details of an order.
type Customer struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	PostalCode string `json:"postal-code"`
	City       string `json:"city"`

	// Extra holds submitted members other than the ones above.
	Extra map[string]json.RawMessage `json:"-"`
}

// Payload is an order as submitted by a client, before validation.
// Line items are kept as raw JSON and stored as received, as are any
// members the service does not interpret.
type Payload struct {
	Items    []json.RawMessage          `json:"items"`
	Customer *Customer                  `json:"customer"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// Order represents a persisted customer order.
type Order struct {
	ID       string                     `json:"id"`
	Items    []json.RawMessage          `json:"items"`
	Customer *Customer                  `json:"customer"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// Store loads and saves the complete sequence of orders.
//
// Load returns an empty slice when nothing has been stored yet. Save
// replaces the stored sequence as a whole: readers observe either the
// previous contents or the new ones.
type Store interface {
	Load(ctx context.Context) ([]Order, error)
	Save(ctx context.Context, orders []Order) error
}

// Locker serializes access to a Store shared between processes.
type Locker interface {
	Lock(ctx context.Context) (unlock func(context.Context) error, err error)
}
