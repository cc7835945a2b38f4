package settings

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/setting"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Provider is the typed, cached read side of the settings store. Readers
// never get an error: a missing key, a type-tag mismatch or an unparseable
// value all degrade to the caller-supplied default with a log entry, so a
// misconfigured threshold can never crash a batch job.
//
// The cache holds whole entries per key and is invalidated synchronously by
// the write path; there is no time-based expiry because the source of truth
// only changes through an administrative write.
type Provider struct {
	repo setting.SettingRepository

	mu    sync.RWMutex
	cache map[string]setting.Setting
}

func NewProvider(repo setting.SettingRepository) *Provider {
	return &Provider{
		repo:  repo,
		cache: make(map[string]setting.Setting),
	}
}

// lookup returns the entry for key if it exists and carries the wanted type
// tag. ok=false means the caller should fall back to its default.
func (p *Provider) lookup(ctx context.Context, key string, want setting.ValueType) (setting.Setting, bool) {
	p.mu.RLock()
	entry, cached := p.cache[key]
	p.mu.RUnlock()

	if !cached {
		var err error
		entry, err = p.repo.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, setting.ErrSettingNotFound) {
				slog.Warn("Setting not found, using default", "key", key)
			} else {
				slog.Error("Failed to load setting, using default", "key", key, "error", err)
			}
			return setting.Setting{}, false
		}

		p.mu.Lock()
		p.cache[key] = entry
		p.mu.Unlock()
	}

	if entry.Type != want {
		slog.Error("Setting type mismatch, using default",
			"key", key, "declared_type", entry.Type, "requested_type", want)
		return setting.Setting{}, false
	}

	return entry, true
}

// Number returns the NUMBER setting for key, or def.
func (p *Provider) Number(ctx context.Context, key string, def decimal.Decimal) decimal.Decimal {
	entry, ok := p.lookup(ctx, key, setting.TypeNumber)
	if !ok {
		return def
	}

	value, err := decimal.NewFromString(entry.Value)
	if err != nil {
		slog.Error("Stored setting value is not a number, using default", "key", key, "value", entry.Value)
		return def
	}
	return value
}

// Bool returns the BOOLEAN setting for key, or def.
func (p *Provider) Bool(ctx context.Context, key string, def bool) bool {
	entry, ok := p.lookup(ctx, key, setting.TypeBoolean)
	if !ok {
		return def
	}

	switch {
	case strings.EqualFold(entry.Value, "true"):
		return true
	case strings.EqualFold(entry.Value, "false"):
		return false
	default:
		slog.Error("Stored setting value is not a boolean, using default", "key", key, "value", entry.Value)
		return def
	}
}

// ClockTime returns the TIME setting for key as a clock time, or def.
func (p *Provider) ClockTime(ctx context.Context, key string, def time.Time) time.Time {
	entry, ok := p.lookup(ctx, key, setting.TypeTime)
	if !ok {
		return def
	}

	value, err := setting.ParseClockTime(entry.Value)
	if err != nil {
		slog.Error("Stored setting value is not a clock time, using default", "key", key, "value", entry.Value)
		return def
	}
	return value
}

// String returns the STRING setting for key, or def.
func (p *Provider) String(ctx context.Context, key string, def string) string {
	entry, ok := p.lookup(ctx, key, setting.TypeString)
	if !ok {
		return def
	}
	return entry.Value
}

// List returns every stored setting.
func (p *Provider) List(ctx context.Context) ([]setting.Setting, error) {
	return p.repo.List(ctx)
}

// Set validates and persists a setting, then refreshes the cache entry.
// Validation happens here, at write time, so readers can trust the type tag.
func (p *Provider) Set(ctx context.Context, entry setting.Setting) (setting.Setting, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidSettingKey(entry.Key) {
		errs = append(errs, validator.ValidationError{Field: "key", Message: "must be UPPER_SNAKE_CASE"})
	}
	if validator.IsEmpty(entry.Value) && entry.Type != setting.TypeString {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return setting.Setting{}, errs
	}

	if err := entry.Validate(); err != nil {
		return setting.Setting{}, err
	}

	saved, err := p.repo.Upsert(ctx, entry)
	if err != nil {
		return setting.Setting{}, err
	}

	p.mu.Lock()
	p.cache[saved.Key] = saved
	p.mu.Unlock()

	slog.Info("Setting updated", "key", saved.Key, "type", saved.Type)
	return saved, nil
}

// Delete removes a setting and its cache entry.
func (p *Provider) Delete(ctx context.Context, key string) error {
	if err := p.repo.Delete(ctx, key); err != nil {
		return err
	}

	p.mu.Lock()
	delete(p.cache, key)
	p.mu.Unlock()

	slog.Info("Setting deleted", "key", key)
	return nil
}
