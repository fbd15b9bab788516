package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jackielin7778-cloud/pos/internal/sales"
)

type stubQueries struct {
	dailyCalls int
	listCalls  int
	lastParams sales.ListParams
}

func (s *stubQueries) ListSales(ctx context.Context, p sales.ListParams) ([]sales.Sale, error) {
	s.listCalls++
	s.lastParams = p
	return []sales.Sale{{Total: 280, Discount: 20}}, nil
}

func (s *stubQueries) DailyTotals(ctx context.Context, day time.Time) (sales.DailyTotals, error) {
	s.dailyCalls++
	return sales.DailyTotals{OrderCount: 3, Revenue: 900, Discount: 45}, nil
}

func TestDailyTotalsCached(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	queries := &stubQueries{}
	svc := &sales.Service{Q: queries, R: rdb, TTL: time.Minute}
	first, err := svc.Daily(context.Background())
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Daily(context.Background())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if queries.dailyCalls != 1 {
		t.Fatalf("expected 1 DB call, got %d", queries.dailyCalls)
	}
	if first != second {
		t.Fatalf("cached totals differ: %+v vs %+v", first, second)
	}
	if first.Revenue != 900 || first.OrderCount != 3 {
		t.Fatalf("unexpected totals: %+v", first)
	}
}

func TestDailyTotalsWithoutRedis(t *testing.T) {
	queries := &stubQueries{}
	svc := &sales.Service{Q: queries}
	for i := 0; i < 2; i++ {
		if _, err := svc.Daily(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if queries.dailyCalls != 2 {
		t.Fatalf("expected 2 DB calls without cache, got %d", queries.dailyCalls)
	}
}

func TestListAppliesDefaultLimit(t *testing.T) {
	queries := &stubQueries{}
	svc := &sales.Service{Q: queries, DefaultLimit: 50}
	if _, err := svc.List(context.Background(), sales.ListParams{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if queries.lastParams.Limit != 50 {
		t.Fatalf("expected default limit 50, got %d", queries.lastParams.Limit)
	}
}
