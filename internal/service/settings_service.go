package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/ws"
	"cost-calc-api/pkg/costing"

	"github.com/rs/zerolog/log"
)

// SettingsProvider hands out the current cost-rate thresholds.
type SettingsProvider interface {
	Current() costing.Settings
}

type SettingsService interface {
	SettingsProvider
	Load(ctx context.Context) (costing.Settings, error)
	Update(ctx context.Context, changes costing.SettingsInput) (costing.Settings, error)
	Reset(ctx context.Context) (costing.Settings, error)
}

type settingsService struct {
	repo repository.SettingRepository
	pub  Publisher

	mu      sync.RWMutex
	current costing.Settings
}

func NewSettingsService(repo repository.SettingRepository, pub Publisher) SettingsService {
	return &settingsService{
		repo:    repo,
		pub:     publisherOrNop(pub),
		current: costing.DefaultSettings(),
	}
}

func (s *settingsService) Current() costing.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load reads the stored thresholds. A missing or unreadable blob leaves
// the defaults in place; only storage failures are returned.
func (s *settingsService) Load(ctx context.Context) (costing.Settings, error) {
	raw, err := s.repo.Load(ctx, costing.SettingsKey)
	if errors.Is(err, repository.ErrNotFound) {
		return s.set(costing.DefaultSettings()), nil
	}
	if err != nil {
		return s.Current(), fmt.Errorf("load settings: %w", err)
	}

	var in costing.SettingsInput
	if err := json.Unmarshal(raw, &in); err != nil {
		log.Warn().Err(err).Str("key", costing.SettingsKey).Msg("Stored settings unreadable, using defaults")
		return s.set(costing.DefaultSettings()), nil
	}
	return s.set(costing.SanitizeSettings(in)), nil
}

// Update merges changes onto the current thresholds, sanitizes and saves.
func (s *settingsService) Update(ctx context.Context, changes costing.SettingsInput) (costing.Settings, error) {
	s.mu.Lock()
	next := costing.SanitizeSettings(s.current.Merge(changes))
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return costing.Settings{}, err
	}
	s.current = next
	s.mu.Unlock()

	s.publish(next)
	return next, nil
}

func (s *settingsService) Reset(ctx context.Context) (costing.Settings, error) {
	def := costing.DefaultSettings()

	s.mu.Lock()
	if err := s.save(ctx, def); err != nil {
		s.mu.Unlock()
		return costing.Settings{}, err
	}
	s.current = def
	s.mu.Unlock()

	s.publish(def)
	return def, nil
}

func (s *settingsService) save(ctx context.Context, settings costing.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, costing.SettingsKey, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *settingsService) set(settings costing.Settings) costing.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings
	return settings
}

func (s *settingsService) publish(settings costing.Settings) {
	s.pub.Publish(ws.Event{Table: "settings", Action: ws.ActionUpdated, Data: settings})
}
