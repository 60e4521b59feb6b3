// Package service provides the shopping item business logic and DTOs.
package service

import (
	"context"
	"fmt"

	"shoplist/internal/store"
)

// ItemService defines the methods for managing shopping items.
// It abstracts the underlying data access.
type ItemService interface {
	// FindAll returns all items. Returns an empty slice if none exist.
	FindAll(ctx context.Context) ([]ItemDto, error)

	// FindByID retrieves a single item by its identifier.
	// Returns ErrItemNotFound if no item exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ItemDto, error)

	// Create adds a new item and returns it with its assigned ID.
	Create(ctx context.Context, item ItemCreateDto) (*ItemDto, error)

	// Update applies the provided fields only and returns the full
	// resulting record. Returns ErrItemNotFound if no item exists with
	// the given ID.
	Update(ctx context.Context, id int64, item ItemUpdateDto) (*ItemDto, error)

	// DeleteByID removes an item and returns the record as it existed
	// before removal. Returns ErrItemNotFound if no item exists with the
	// given ID.
	DeleteByID(ctx context.Context, id int64) (*ItemDto, error)
}

// ItemDto represents a shopping item on the wire.
type ItemDto struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Purchased bool   `json:"purchased"`
}

// ItemCreateDto represents the payload for creating an item. Name and
// Quantity are pointers so that present-but-zero values ("" and 0) pass
// the required check, matching the presence-only validation contract.
type ItemCreateDto struct {
	Name      *string `json:"name"      validate:"required"`
	Quantity  *int64  `json:"quantity"  validate:"required"`
	Purchased *bool   `json:"purchased"`
}

// ItemUpdateDto represents a partial update. Nil means "field absent";
// a pointer to false still applies.
type ItemUpdateDto struct {
	Name      *string `json:"name"`
	Quantity  *int64  `json:"quantity"`
	Purchased *bool   `json:"purchased"`
}

// Service implements ItemService on top of an ItemStore.
type Service struct {
	repository store.ItemStore
}

// NewService creates a new instance of ItemService with the provided repository.
func NewService(repo store.ItemStore) *Service {
	return &Service{repository: repo}
}

// FindAll retrieves all items and returns them as DTOs.
func (s *Service) FindAll(ctx context.Context) ([]ItemDto, error) {
	items, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	itemDTOs := make([]ItemDto, len(items))
	for i, item := range items {
		itemDTOs[i] = *toDto(&item)
	}
	return itemDTOs, nil
}

// FindByID retrieves an item by its ID and returns it as a DTO.
// Returns ErrItemNotFound if no item exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ItemDto, error) {
	item, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item by ID %d: %w", id, err)
	}
	return toDto(item), nil
}

// Create creates a new item and returns it as a DTO. The purchased flag
// defaults to false when omitted.
func (s *Service) Create(ctx context.Context, item ItemCreateDto) (*ItemDto, error) {
	purchased := false
	if item.Purchased != nil {
		purchased = *item.Purchased
	}
	created, err := s.repository.Create(ctx, *item.Name, *item.Quantity, purchased)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return toDto(created), nil
}

// Update applies the provided fields and returns the updated record.
// Returns ErrItemNotFound if no item exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, item ItemUpdateDto) (*ItemDto, error) {
	updated, err := s.repository.Update(ctx, id, store.ItemUpdate{
		Name:      item.Name,
		Quantity:  item.Quantity,
		Purchased: item.Purchased,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update item with ID %d: %w", id, err)
	}
	return toDto(updated), nil
}

// DeleteByID removes an item and returns the record that was removed.
// Returns ErrItemNotFound if no item exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) (*ItemDto, error) {
	deleted, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete item with ID %d: %w", id, err)
	}
	return toDto(deleted), nil
}

// toDto converts a store.Item to an ItemDto.
func toDto(item *store.Item) *ItemDto {
	return &ItemDto{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Purchased: item.Purchased,
	}
}
