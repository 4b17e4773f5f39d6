package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKey = "desa:stats:counts"

// Counts aggregates public entity totals for the admin dashboard.
type Counts struct {
	News        int `json:"news"`
	Gallery     int `json:"gallery"`
	Events      int `json:"events"`
	Submissions int `json:"submissions"`
	Documents   int `json:"documents"`
}

// Service computes entity counts, caching them in Redis for a short period.
// The cache is optional; without a client every call hits the database.
type Service struct {
	db    *sql.DB
	cache *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewService(db *sql.DB, cache *redis.Client, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{db: db, cache: cache, ttl: ttl, log: log}
}

// Counts returns the current totals. Cache failures are logged and ignored;
// they never fail the request.
func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached Counts
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("statistics cache read failed", zap.Error(err))
		}
	}

	counts, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		raw, err := json.Marshal(counts)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
				s.log.Warn("statistics cache write failed", zap.Error(err))
			}
		}
	}
	return counts, nil
}

func (s *Service) compute(ctx context.Context) (*Counts, error) {
	var counts Counts
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"news", &counts.News},
		{"galleries", &counts.Gallery},
		{"events", &counts.Events},
		{"service_submissions", &counts.Submissions},
	} {
		// Table names come from the fixed list above, never from input.
		query := fmt.Sprintf("SELECT COUNT(id) FROM %s", q.table)
		if err := s.db.QueryRowContext(ctx, query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return &counts, nil
}
