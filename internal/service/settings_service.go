package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"earnfast/internal/domain"
	"earnfast/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidSettings = errors.New("invalid settings values")

// SettingsService hands out immutable snapshots of the global settings.
// The cached copy is refreshed on an interval and invalidated on admin
// updates, so request paths never touch ambient mutable state.
type SettingsService struct {
	repo *repository.SettingsRepository

	mu        sync.RWMutex
	snapshot  domain.Settings
	fetchedAt time.Time
	maxAge    time.Duration
}

func NewSettingsService(db *pgxpool.Pool) *SettingsService {
	return &SettingsService{
		repo:     repository.NewSettingsRepository(db),
		snapshot: domain.DefaultSettings(),
		maxAge:   30 * time.Second,
	}
}

// Snapshot returns the current settings, refreshing the cache when it
// has gone stale. Refresh failures fall back to the last good snapshot.
func (s *SettingsService) Snapshot(ctx context.Context) domain.Settings {
	s.mu.RLock()
	fresh := time.Since(s.fetchedAt) < s.maxAge
	snap := s.snapshot
	s.mu.RUnlock()

	if fresh {
		return snap
	}

	loaded, err := s.repo.Get(ctx)
	if err != nil {
		return snap
	}

	s.mu.Lock()
	s.snapshot = loaded
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return loaded
}

// Update validates and persists new settings, then refreshes the cache.
func (s *SettingsService) Update(ctx context.Context, next domain.Settings) error {
	if err := validateSettings(next); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, next); err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = next
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

func validateSettings(s domain.Settings) error {
	if s.GameReward <= 0 || s.TTTReward <= 0 || s.MathReward <= 0 {
		return ErrInvalidSettings
	}
	if s.ReferBonus <= 0 || s.SignupBonus <= 0 || s.MinWithdraw <= 0 {
		return ErrInvalidSettings
	}
	if len(s.PaymentMethods) == 0 {
		return ErrInvalidSettings
	}
	return nil
}
