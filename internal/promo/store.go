package promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

const promotionColumns = `id, name, kind, value, product_id, min_qty, min_amount, valid_from, valid_to, active, created_at`

// Store persists promotions in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

// FindActive returns active promotions inside their validity window. When
// productID is set, only promotions scoped to that product or to the whole
// store are returned; the evaluator never sees promotions for other products.
func (s *Store) FindActive(ctx context.Context, productID *uuid.UUID) ([]Promotion, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("promo store not configured")
	}
	query := `SELECT ` + promotionColumns + ` FROM promotions
		WHERE active
		  AND (valid_from IS NULL OR valid_from <= now())
		  AND (valid_to IS NULL OR valid_to >= now())`
	args := []any{}
	if productID != nil {
		query += ` AND (product_id IS NULL OR product_id = $1)`
		args = append(args, *productID)
	}
	query += ` ORDER BY created_at`
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query active promotions: %w", err)
	}
	defer rows.Close()
	return scanPromotions(rows)
}

// ActiveForProducts resolves the active promotions for each of the provided
// products in one round trip. Storewide promotions appear in every product's
// slice.
func (s *Store) ActiveForProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]Promotion, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("promo store not configured")
	}
	result := make(map[uuid.UUID][]Promotion, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	rows, err := s.Pool.Query(ctx, `SELECT `+promotionColumns+` FROM promotions
		WHERE active
		  AND (valid_from IS NULL OR valid_from <= now())
		  AND (valid_to IS NULL OR valid_to >= now())
		  AND (product_id IS NULL OR product_id = ANY($1))
		ORDER BY created_at`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("query promotions for products: %w", err)
	}
	defer rows.Close()
	promos, err := scanPromotions(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range promos {
		if p.ProductID == nil {
			for _, id := range productIDs {
				result[id] = append(result[id], p)
			}
			continue
		}
		result[*p.ProductID] = append(result[*p.ProductID], p)
	}
	return result, nil
}

// List returns every promotion regardless of state, newest first.
func (s *Store) List(ctx context.Context) ([]Promotion, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("promo store not configured")
	}
	rows, err := s.Pool.Query(ctx, `SELECT `+promotionColumns+` FROM promotions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()
	return scanPromotions(rows)
}

// Create inserts a new promotion and returns it with identity and timestamp
// assigned.
func (s *Store) Create(ctx context.Context, p Promotion) (Promotion, error) {
	if s == nil || s.Pool == nil {
		return Promotion{}, errors.New("promo store not configured")
	}
	row := s.Pool.QueryRow(ctx, `INSERT INTO promotions
		(name, kind, value, product_id, min_qty, min_amount, valid_from, valid_to, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+promotionColumns,
		p.Name, string(p.Kind), p.Value, p.ProductID, p.MinQty, p.MinAmount, p.ValidFrom, p.ValidTo, p.Active)
	return scanPromotion(row)
}

// Deactivate clears the active flag without removing the row.
func (s *Store) Deactivate(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.Pool == nil {
		return errors.New("promo store not configured")
	}
	tag, err := s.Pool.Exec(ctx, `UPDATE promotions SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes a promotion outright.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.Pool == nil {
		return errors.New("promo store not configured")
	}
	tag, err := s.Pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanPromotions(rows pgx.Rows) ([]Promotion, error) {
	var promos []Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return promos, nil
}

func scanPromotion(row pgx.Row) (Promotion, error) {
	var (
		p    Promotion
		kind string
	)
	err := row.Scan(&p.ID, &p.Name, &kind, &p.Value, &p.ProductID, &p.MinQty, &p.MinAmount,
		&p.ValidFrom, &p.ValidTo, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Promotion{}, common.ErrNotFound
		}
		return Promotion{}, fmt.Errorf("scan promotion: %w", err)
	}
	p.Kind = Kind(kind)
	return p, nil
}
