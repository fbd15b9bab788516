package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// ListParams filters the sales listing. Nil bounds leave that side open.
type ListParams struct {
	From     *time.Time
	To       *time.Time
	MemberID *uuid.UUID
	Limit    int
	Offset   int
}

// Store reads the sales ledger. Writes go through Ledger exclusively.
type Store struct {
	Pool *pgxpool.Pool
}

const saleColumns = `id, member_id, subtotal, discount, total, cash, change_amount, payment_method, created_at`

// ListSales returns sales newest first, optionally bounded by date range and
// member.
func (s *Store) ListSales(ctx context.Context, p ListParams) ([]Sale, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("sales store not configured")
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE true`
	args := []any{}
	idx := 1
	if p.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", idx)
		args = append(args, *p.From)
		idx++
	}
	if p.To != nil {
		query += fmt.Sprintf(" AND created_at < $%d", idx)
		args = append(args, *p.To)
		idx++
	}
	if p.MemberID != nil {
		query += fmt.Sprintf(" AND member_id = $%d", idx)
		args = append(args, *p.MemberID)
		idx++
	}
	query += " ORDER BY created_at DESC"
	if p.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, p.Limit)
		idx++
	}
	if p.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, p.Offset)
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(&sale.ID, &sale.MemberID, &sale.Subtotal, &sale.Discount, &sale.Total,
			&sale.Cash, &sale.Change, &sale.PaymentMethod, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

// GetSale returns one sale with its items.
func (s *Store) GetSale(ctx context.Context, id uuid.UUID) (Sale, []SaleItem, error) {
	if s == nil || s.Pool == nil {
		return Sale{}, nil, errors.New("sales store not configured")
	}
	var sale Sale
	err := s.Pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id).
		Scan(&sale.ID, &sale.MemberID, &sale.Subtotal, &sale.Discount, &sale.Total,
			&sale.Cash, &sale.Change, &sale.PaymentMethod, &sale.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, nil, common.ErrNotFound
		}
		return Sale{}, nil, fmt.Errorf("get sale: %w", err)
	}
	rows, err := s.Pool.Query(ctx, `SELECT id, sale_id, product_id, product_name, qty, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return Sale{}, nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []SaleItem
	for rows.Next() {
		var item SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Qty, &item.UnitPrice, &item.Subtotal); err != nil {
			return Sale{}, nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	return sale, items, rows.Err()
}

// DailyTotals aggregates order count, revenue, and discount for all sales
// whose timestamp falls on the given calendar day.
func (s *Store) DailyTotals(ctx context.Context, day time.Time) (DailyTotals, error) {
	if s == nil || s.Pool == nil {
		return DailyTotals{}, errors.New("sales store not configured")
	}
	var t DailyTotals
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(discount), 0)
		FROM sales WHERE created_at::date = $1::date`, day).
		Scan(&t.OrderCount, &t.Revenue, &t.Discount)
	if err != nil {
		return DailyTotals{}, fmt.Errorf("daily totals: %w", err)
	}
	return t, nil
}
