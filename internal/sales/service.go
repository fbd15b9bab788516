package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jackielin7778-cloud/pos/internal/obs"
)

// Querier defines the database access required by the sales query service.
type Querier interface {
	ListSales(ctx context.Context, p ListParams) ([]Sale, error)
	DailyTotals(ctx context.Context, day time.Time) (DailyTotals, error)
}

// Service provides cached read access to the sales ledger. The daily totals
// figure is shown on every till screen, so it goes through a short-lived
// cache when Redis is configured.
type Service struct {
	Q            Querier
	R            *redis.Client
	TTL          time.Duration
	DefaultLimit int
	Now          func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns sales matching the provided filters, clamped to the service's
// default page size when no limit is given.
func (s *Service) List(ctx context.Context, p ListParams) ([]Sale, error) {
	if s == nil || s.Q == nil {
		return nil, fmt.Errorf("sales service not configured")
	}
	if p.Limit <= 0 {
		p.Limit = s.DefaultLimit
	}
	return s.Q.ListSales(ctx, p)
}

// Daily returns aggregated totals for the current calendar day.
func (s *Service) Daily(ctx context.Context) (DailyTotals, error) {
	if s == nil || s.Q == nil {
		return DailyTotals{}, fmt.Errorf("sales service not configured")
	}
	day := s.now()
	key := "sales:daily:" + day.Format("2006-01-02")
	if totals, ok := s.fromCache(ctx, key); ok {
		cacheOutcome("hit")
		return totals, nil
	}
	cacheOutcome("miss")
	totals, err := s.Q.DailyTotals(ctx, day)
	if err != nil {
		return DailyTotals{}, err
	}
	s.store(ctx, key, totals)
	return totals, nil
}

func cacheOutcome(outcome string) {
	if obs.DailyTotalsCacheTotal != nil {
		obs.DailyTotalsCacheTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) fromCache(ctx context.Context, key string) (DailyTotals, bool) {
	if s.R == nil || s.TTL <= 0 {
		return DailyTotals{}, false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return DailyTotals{}, false
	}
	var totals DailyTotals
	if err := json.Unmarshal(data, &totals); err != nil {
		return DailyTotals{}, false
	}
	return totals, true
}

func (s *Service) store(ctx context.Context, key string, totals DailyTotals) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(totals)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
