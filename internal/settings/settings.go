// Package settings stores the toggles and player count a user last chose,
// keyed by the identifiers the web UI uses for its controls.
package settings

import (
	"context"
	"errors"
	"slices"

	"scythe/internal/engine"
)

// Identifiers of the persisted controls.
const (
	KeyInvaders    = "invadersSwitch"
	KeyWindGambit  = "windGambitSwitch"
	KeyProximity   = "proximityCheckbox"
	KeyPlayerCount = "playerCount"
)

// DefaultProfile is used when a caller does not name one.
const DefaultProfile = "default"

var ErrInvalidProfile = errors.New("invalid settings profile")

// Settings is the remembered state of the setup form.
type Settings struct {
	Toggles     map[string]bool `json:"toggles"`
	PlayerCount int             `json:"player_count,omitempty"` // 0 means none chosen yet
}

// Store loads and saves settings per profile.
type Store interface {
	Load(ctx context.Context, profile string) (Settings, error)
	Save(ctx context.Context, profile string, s Settings) error
	Close() error
}

// New returns empty settings.
func New() Settings {
	return Settings{Toggles: make(map[string]bool)}
}

// FromOptions records the toggles and player count of opts.
func FromOptions(opts engine.Options) Settings {
	s := New()
	s.Toggles[KeyInvaders] = opts.IncludeInvaders
	s.Toggles[KeyWindGambit] = opts.IncludeWindGambit
	s.Toggles[KeyProximity] = opts.WithProximity
	s.PlayerCount = opts.PlayerCount
	return s
}

// Options turns stored settings into engine options. A stored player count
// the catalog can no longer offer falls back to fallback.PlayerCount.
func (s Settings) Options(c *engine.Catalog, fallback engine.Options) engine.Options {
	opts := engine.Options{
		PlayerCount:       fallback.PlayerCount,
		IncludeInvaders:   s.toggle(KeyInvaders, fallback.IncludeInvaders),
		IncludeWindGambit: s.toggle(KeyWindGambit, fallback.IncludeWindGambit),
		WithProximity:     s.toggle(KeyProximity, fallback.WithProximity),
	}
	if slices.Contains(c.PlayerCountOptions(opts.IncludeInvaders), s.PlayerCount) {
		opts.PlayerCount = s.PlayerCount
	}
	return opts
}

func (s Settings) toggle(key string, fallback bool) bool {
	if v, ok := s.Toggles[key]; ok {
		return v
	}
	return fallback
}
