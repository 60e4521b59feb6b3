package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	serrors "shoplist/internal/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements ItemStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ItemStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindAll returns all items ordered by ID.
func (p *PgStore) FindAll(ctx context.Context) ([]Item, error) {
	rows, err := p.db.Query(ctx, `SELECT id, name, quantity, purchased FROM shopping_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item rows: %w", err)
	}
	return items, nil
}

// FindByID retrieves an item by its identifier.
// Returns ErrItemNotFound if no item exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Item, error) {
	row := p.db.QueryRow(ctx, `SELECT id, name, quantity, purchased FROM shopping_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return item, nil
}

// Create persists a new item and returns it with its assigned ID.
func (p *PgStore) Create(ctx context.Context, name string, quantity int64, purchased bool) (*Item, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO shopping_items (name, quantity, purchased) VALUES ($1, $2, $3) RETURNING id`,
		name, quantity, boolToInt(purchased),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return &Item{ID: id, Name: name, Quantity: quantity, Purchased: purchased}, nil
}

// Update applies only the provided fields and returns the resulting record.
// The existence check and the mutation are two separate statements; a
// concurrent delete between them surfaces as ErrItemNotFound on the re-read.
func (p *PgStore) Update(ctx context.Context, id int64, upd ItemUpdate) (*Item, error) {
	current, err := p.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Quantity != nil {
		args = append(args, *upd.Quantity)
		sets = append(sets, fmt.Sprintf("quantity = $%d", len(args)))
	}
	if upd.Purchased != nil {
		args = append(args, boolToInt(*upd.Purchased))
		sets = append(sets, fmt.Sprintf("purchased = $%d", len(args)))
	}
	if len(sets) == 0 {
		return current, nil
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE shopping_items SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return p.FindByID(ctx, id)
}

// DeleteByID removes an item and returns the record as it existed before removal.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) (*Item, error) {
	item, err := p.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := p.db.Exec(ctx, `DELETE FROM shopping_items WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	return item, nil
}

// Seed inserts the two fixed starter rows if and only if the table is empty.
func (p *PgStore) Seed(ctx context.Context) error {
	var count int64
	if err := p.db.QueryRow(ctx, `SELECT COUNT(*) FROM shopping_items`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}
	seed := []struct {
		name     string
		quantity int64
	}{
		{"Milk", 1},
		{"Bread", 2},
	}
	for _, s := range seed {
		if _, err := p.db.Exec(ctx,
			`INSERT INTO shopping_items (name, quantity, purchased) VALUES ($1, $2, 0)`,
			s.name, s.quantity,
		); err != nil {
			return fmt.Errorf("failed to seed item %q: %w", s.name, err)
		}
	}
	return nil
}

// scanItem reads one row, translating the stored 0/1 purchased flag to a bool.
func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	var purchased int64
	if err := row.Scan(&item.ID, &item.Name, &item.Quantity, &purchased); err != nil {
		return nil, err
	}
	item.Purchased = purchased != 0
	return &item, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
