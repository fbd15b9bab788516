package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// ErrBarcodeTaken indicates another product already carries the barcode.
var ErrBarcodeTaken = errors.New("barcode already in use")

const productColumns = `id, name, price_ex_tax, price_inc_tax, cost, stock, barcode, category, created_at`

// Store persists products in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

// Find returns products whose name or barcode contains the search text,
// case-insensitive and unordered. Empty search text returns the whole
// catalog.
func (s *Store) Find(ctx context.Context, search string) ([]Product, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("catalog store not configured")
	}
	var (
		rows pgx.Rows
		err  error
	)
	if search == "" {
		rows, err = s.Pool.Query(ctx, `SELECT `+productColumns+` FROM products`)
	} else {
		pattern := "%" + search + "%"
		rows, err = s.Pool.Query(ctx, `SELECT `+productColumns+` FROM products
			WHERE name ILIKE $1 OR barcode ILIKE $1`, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()
	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Get returns one product by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	if s == nil || s.Pool == nil {
		return Product{}, errors.New("catalog store not configured")
	}
	return scanProduct(s.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// Insert creates a product and returns it with identity assigned.
func (s *Store) Insert(ctx context.Context, p Product) (Product, error) {
	if s == nil || s.Pool == nil {
		return Product{}, errors.New("catalog store not configured")
	}
	row := s.Pool.QueryRow(ctx, `INSERT INTO products
		(name, price_ex_tax, price_inc_tax, cost, stock, barcode, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		p.Name, p.PriceExTax, p.PriceIncTax, p.Cost, p.Stock, p.Barcode, p.Category)
	created, err := scanProduct(row)
	if err != nil {
		return Product{}, mapUniqueViolation(err)
	}
	return created, nil
}

// Update replaces the mutable fields of a product.
func (s *Store) Update(ctx context.Context, p Product) error {
	if s == nil || s.Pool == nil {
		return errors.New("catalog store not configured")
	}
	tag, err := s.Pool.Exec(ctx, `UPDATE products
		SET name = $1, price_ex_tax = $2, price_inc_tax = $3, cost = $4, stock = $5, barcode = $6, category = $7
		WHERE id = $8`,
		p.Name, p.PriceExTax, p.PriceIncTax, p.Cost, p.Stock, p.Barcode, p.Category, p.ID)
	if err != nil {
		return mapUniqueViolation(fmt.Errorf("update product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes a product. Sale item snapshots keep the product name, so
// historical sales stay intact.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.Pool == nil {
		return errors.New("catalog store not configured")
	}
	tag, err := s.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.PriceExTax, &p.PriceIncTax, &p.Cost, &p.Stock,
		&p.Barcode, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, common.ErrNotFound
		}
		return Product{}, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %v", ErrBarcodeTaken, err)
	}
	return err
}
