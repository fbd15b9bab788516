package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger commits settled sales to Postgres. The commit is one transaction:
// the sale row, every sale item, every stock decrement, and the member
// accrual land together or not at all.
type Ledger struct {
	Pool *pgxpool.Pool
}

// CommitSale persists the draft atomically. Stock is decremented with a
// conditional update; a decrement that would push stock below zero affects
// zero rows and fails the whole checkout with ErrStockUnavailable, which is
// how two concurrent checkouts on the last unit resolve to exactly one
// winner.
func (l *Ledger) CommitSale(ctx context.Context, d Draft) (Sale, error) {
	if l == nil || l.Pool == nil {
		return Sale{}, errors.New("sales ledger not configured")
	}
	if len(d.Items) == 0 {
		return Sale{}, errors.New("sale draft has no items")
	}
	tx, err := l.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Sale{}, fmt.Errorf("begin checkout tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var sale Sale
	err = tx.QueryRow(ctx, `INSERT INTO sales
		(member_id, subtotal, discount, total, cash, change_amount, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, member_id, subtotal, discount, total, cash, change_amount, payment_method, created_at`,
		d.MemberID, d.Subtotal, d.Discount, d.Total, d.Cash, d.Change, d.PaymentMethod).
		Scan(&sale.ID, &sale.MemberID, &sale.Subtotal, &sale.Discount, &sale.Total,
			&sale.Cash, &sale.Change, &sale.PaymentMethod, &sale.CreatedAt)
	if err != nil {
		return Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range d.Items {
		if _, err := tx.Exec(ctx, `INSERT INTO sale_items
			(sale_id, product_id, product_name, qty, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, item.ProductID, item.ProductName, item.Qty, item.UnitPrice, item.Subtotal); err != nil {
			return Sale{}, fmt.Errorf("insert sale item %q: %w", item.ProductName, err)
		}
		tag, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
			item.Qty, item.ProductID)
		if err != nil {
			return Sale{}, fmt.Errorf("decrement stock for %q: %w", item.ProductName, err)
		}
		if tag.RowsAffected() == 0 {
			return Sale{}, fmt.Errorf("product %q: %w", item.ProductName, ErrStockUnavailable)
		}
	}

	if d.MemberID != nil {
		tag, err := tx.Exec(ctx, `UPDATE members
			SET points = points + $1, total_spent = total_spent + $2
			WHERE id = $3`,
			d.Points, d.Total, *d.MemberID)
		if err != nil {
			return Sale{}, fmt.Errorf("accrue member %s: %w", d.MemberID, err)
		}
		if tag.RowsAffected() == 0 {
			return Sale{}, fmt.Errorf("member %s: %w", d.MemberID, ErrMemberNotFound)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Sale{}, fmt.Errorf("commit sale: %w", err)
	}
	return sale, nil
}
