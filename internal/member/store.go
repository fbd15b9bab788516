package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jackielin7778-cloud/pos/internal/common"
)

// ErrPhoneTaken indicates another member already registered the phone number.
var ErrPhoneTaken = errors.New("phone number already registered")

const memberColumns = `id, name, phone, email, points, total_spent, created_at`

// Store persists members in Postgres. Point and spend mutations happen only
// inside the sales ledger transaction, never here.
type Store struct {
	Pool *pgxpool.Pool
}

// Create registers a new member with zero points and spend.
func (s *Store) Create(ctx context.Context, name, phone string, email *string) (Member, error) {
	if s == nil || s.Pool == nil {
		return Member{}, errors.New("member store not configured")
	}
	row := s.Pool.QueryRow(ctx, `INSERT INTO members (name, phone, email)
		VALUES ($1, $2, $3)
		RETURNING `+memberColumns, name, phone, email)
	m, err := scanMember(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Member{}, fmt.Errorf("%w: %s", ErrPhoneTaken, phone)
		}
		return Member{}, err
	}
	return m, nil
}

// FindByPhone looks a member up by exact phone number.
func (s *Store) FindByPhone(ctx context.Context, phone string) (Member, error) {
	if s == nil || s.Pool == nil {
		return Member{}, errors.New("member store not configured")
	}
	return scanMember(s.Pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE phone = $1`, phone))
}

// List returns members, optionally filtered by a case-insensitive substring
// of name or phone.
func (s *Store) List(ctx context.Context, search string) ([]Member, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("member store not configured")
	}
	var (
		rows pgx.Rows
		err  error
	)
	if search == "" {
		rows, err = s.Pool.Query(ctx, `SELECT `+memberColumns+` FROM members ORDER BY created_at DESC`)
	} else {
		pattern := "%" + search + "%"
		rows, err = s.Pool.Query(ctx, `SELECT `+memberColumns+` FROM members
			WHERE name ILIKE $1 OR phone ILIKE $1 ORDER BY created_at DESC`, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var members []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Points, &m.TotalSpent, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, common.ErrNotFound
		}
		return Member{}, fmt.Errorf("scan member: %w", err)
	}
	return m, nil
}
