package pto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/repository"
	"github.com/google/uuid"
)

// Service keeps a tenant's copy of the PTO calendar.
type Service struct {
	repo       Repository
	fetcher    Fetcher
	activities ActivityRepository
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a PTO service. A sync within ttl of the previous one is
// served from storage; ttl <= 0 always refetches.
func NewService(repo Repository, fetcher Fetcher, activities ActivityRepository, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:       repo,
		fetcher:    fetcher,
		activities: activities,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Sync refreshes the stored calendar. force skips the freshness check.
func (s *Service) Sync(ctx context.Context, tenantID string, force bool) (*SyncResult, error) {
	if s.fetcher == nil {
		return nil, ErrNotConfigured
	}

	now := s.now()
	if !force && s.ttl > 0 {
		last, err := s.repo.LastSynced(ctx, tenantID)
		switch {
		case err == nil && now.Sub(last) < s.ttl:
			return &SyncResult{SyncedAt: last, Cached: true}, nil
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("checking last sync: %w", err)
		}
	}

	requests, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Warn("pto fetch failed", "tenant_id", tenantID, "error", err)
		return nil, err
	}
	leaves, invalid := Flatten(requests)
	if err := s.repo.Replace(ctx, tenantID, leaves, now); err != nil {
		return nil, fmt.Errorf("storing leave days: %w", err)
	}

	result := &SyncResult{Requests: len(requests), Days: len(leaves), Invalid: invalid, SyncedAt: now}
	s.logger.Info("synced pto calendar", "tenant_id", tenantID, "requests", result.Requests, "days", result.Days, "invalid", invalid)

	if s.activities != nil {
		_ = s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
			RunID:        uuid.NewString(),
			ActivityType: activity.TypePTOSynced,
			Summary:      fmt.Sprintf("synced %d leave days from %d requests", result.Days, result.Requests),
			Details:      activity.Details(result),
		})
	}
	return result, nil
}

// Between lists stored leave days in [from, to], compared by calendar day.
func (s *Service) Between(ctx context.Context, tenantID string, from, to time.Time) ([]Leave, error) {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	leaves, err := s.repo.Between(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing leave days: %w", err)
	}
	return leaves, nil
}

// Day returns midnight UTC of t's calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
