package sales

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrStockUnavailable is returned when a checkout would decrement a product's
// stock below zero. The whole commit is rolled back; nothing is partially
// applied.
var ErrStockUnavailable = errors.New("insufficient stock")

// ErrMemberNotFound indicates the sale referenced a member that does not
// exist; the commit is rolled back.
var ErrMemberNotFound = errors.New("member not found")

// Sale is the write-once record of a settled checkout. It is created
// atomically by the ledger and never mutated afterwards; there is no update
// or delete operation.
type Sale struct {
	ID            uuid.UUID  `json:"id"`
	MemberID      *uuid.UUID `json:"memberId,omitempty"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	Cash          float64    `json:"cash"`
	Change        float64    `json:"change"`
	PaymentMethod string     `json:"paymentMethod"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// SaleItem is one settled line. ProductName is a snapshot taken at sale time
// so the row stays correct if the product is later renamed or deleted.
type SaleItem struct {
	ID          uuid.UUID  `json:"id"`
	SaleID      uuid.UUID  `json:"saleId"`
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ProductName string     `json:"productName"`
	Qty         int        `json:"qty"`
	UnitPrice   float64    `json:"unitPrice"`
	Subtotal    float64    `json:"subtotal"`
}

// Draft carries everything the ledger needs to commit one sale. The checkout
// orchestrator computes all figures before the transaction begins; the ledger
// only persists them.
type Draft struct {
	MemberID      *uuid.UUID
	Subtotal      float64
	Discount      float64
	Total         float64
	Cash          float64
	Change        float64
	PaymentMethod string
	Points        int64
	Items         []DraftItem
}

// DraftItem is the pre-commit form of a SaleItem.
type DraftItem struct {
	ProductID   uuid.UUID
	ProductName string
	Qty         int
	UnitPrice   float64
	Subtotal    float64
}

// PointsFor returns the loyalty points accrued by a sale: the floor of its
// committed total. total_spent always receives the exact total; only the
// points figure truncates.
func PointsFor(total float64) int64 {
	if total <= 0 || math.IsNaN(total) {
		return 0
	}
	return int64(math.Floor(total))
}

// DailyTotals aggregates sales whose timestamp falls on one calendar day.
type DailyTotals struct {
	OrderCount int64   `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
	Discount   float64 `json:"discount"`
}
