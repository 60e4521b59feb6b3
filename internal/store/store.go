// Package store provides an interface for shopping item storage operations.
package store

import "context"

// Item is a persisted shopping list entry. Purchased is stored as a
// 0/1 integer in the database; the translation never leaves this package.
type Item struct {
	ID        int64
	Name      string
	Quantity  int64
	Purchased bool
}

// ItemUpdate carries a partial update. A nil field means "not provided";
// a pointer to the zero value (empty name, zero quantity, false flag)
// is still an explicit update.
type ItemUpdate struct {
	Name      *string
	Quantity  *int64
	Purchased *bool
}

// ItemStore is an interface for shopping item storage operations.
// It is a thin persistence primitive: no validation happens here.
type ItemStore interface {
	// FindAll returns all items. The order is stable but not contractual.
	FindAll(ctx context.Context) ([]Item, error)

	// FindByID retrieves a single item by its identifier.
	// Returns ErrItemNotFound if no item exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// Create persists a new item and returns it with its assigned ID.
	Create(ctx context.Context, name string, quantity int64, purchased bool) (*Item, error)

	// Update applies only the provided fields and returns the resulting
	// record. An update with no fields set returns the current record
	// unchanged. Returns ErrItemNotFound if no item exists with the given ID.
	Update(ctx context.Context, id int64, upd ItemUpdate) (*Item, error)

	// DeleteByID removes an item and returns the record as it existed
	// before removal. Returns ErrItemNotFound if no item exists with the
	// given ID.
	DeleteByID(ctx context.Context, id int64) (*Item, error)

	// Seed inserts the two fixed starter rows if and only if the table
	// is empty. Safe to call on every startup.
	Seed(ctx context.Context) error
}
