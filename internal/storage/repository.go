package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/notify"
)

// Repository is the typed access layer over a raw Engine: one method per
// logical entity, so JSON handling and corruption recovery live in one place
// instead of being scattered across the views.
//
// Corrupt JSON under any key degrades to the entity's empty value. A broken
// store must never abort rendering, so parse failures are logged and treated
// exactly like absence.
type Repository struct {
	engine Engine
	bus    *notify.Bus
}

// NewRepository wraps engine. bus may be nil; writes then publish nothing.
func NewRepository(engine Engine, bus *notify.Bus) *Repository {
	return &Repository{engine: engine, bus: bus}
}

// Engine exposes the underlying key/value engine.
func (r *Repository) Engine() Engine { return r.engine }

// Close closes the underlying engine.
func (r *Repository) Close() error { return r.engine.Close() }

// getJSON decodes the value under key into out. Absent keys and malformed
// JSON both leave out untouched and return false.
func (r *Repository) getJSON(key string, out any) (bool, error) {
	raw, ok, err := r.engine.Get(key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("storage: corrupt JSON, treating as absent", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (r *Repository) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.engine.Set(key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Flag reports whether a boolean flag key is set to "true".
func (r *Repository) Flag(key string) (bool, error) {
	raw, ok, err := r.engine.Get(key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return ok && string(raw) == FlagTrue, nil
}

// SetFlag sets a boolean flag key to "true".
func (r *Repository) SetFlag(key string) error {
	if err := r.engine.Set(key, []byte(FlagTrue)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// ClearFlag removes a boolean flag key.
func (r *Repository) ClearFlag(key string) error {
	if err := r.engine.Delete(key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// GetString returns the string value under key, or "" when absent.
func (r *Repository) GetString(key string) (string, error) {
	raw, _, err := r.engine.Get(key)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return string(raw), nil
}

// SetString writes a plain string value under key.
func (r *Repository) SetString(key, value string) error {
	if err := r.engine.Set(key, []byte(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Profile loads the student profile. The second return is false when no
// profile has been saved (or the stored one is unreadable).
func (r *Repository) Profile() (models.StudentProfile, bool, error) {
	var profile models.StudentProfile
	ok, err := r.getJSON(KeyStudentProfile, &profile)
	return profile, ok, err
}

// SaveProfile persists the profile and marks profile setup complete.
func (r *Repository) SaveProfile(profile models.StudentProfile) error {
	if err := r.setJSON(KeyStudentProfile, profile); err != nil {
		return err
	}
	return r.SetFlag(KeyProfileCompleted)
}

// AdminAccounts loads the provisioned admin logins, empty when absent.
func (r *Repository) AdminAccounts() ([]models.AdminAccount, error) {
	var accounts []models.AdminAccount
	if _, err := r.getJSON(KeyAdminAccounts, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SaveAdminAccounts persists the admin login list.
func (r *Repository) SaveAdminAccounts(accounts []models.AdminAccount) error {
	return r.setJSON(KeyAdminAccounts, accounts)
}

// Registry loads the UTR ownership map, empty when absent or corrupt.
func (r *Repository) Registry() (map[string]string, error) {
	registry := make(map[string]string)
	if _, err := r.getJSON(KeyUsedUTRRegistry, &registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// SaveRegistry persists the UTR ownership map.
func (r *Repository) SaveRegistry(registry map[string]string) error {
	return r.setJSON(KeyUsedUTRRegistry, registry)
}

// SubmissionsRaw returns the decoded JSON value under paymentSubmissions
// without imposing a record shape, so legacy alias fields survive for the
// normalizer. Absent or corrupt data yields nil.
func (r *Repository) SubmissionsRaw() (any, error) {
	var raw any
	if _, err := r.getJSON(KeyPaymentSubmissions, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SaveSubmissions persists the canonical submission list, newest first, and
// broadcasts the change to mounted views.
func (r *Repository) SaveSubmissions(records []models.PaymentRecord) error {
	if err := r.setJSON(KeyPaymentSubmissions, records); err != nil {
		return err
	}
	if r.bus != nil {
		r.bus.Publish(notify.Event{
			Topic: notify.TopicSubmissionsUpdated,
			Key:   KeyPaymentSubmissions,
		})
	}
	return nil
}

// AmountOverrides loads the per-student custom amount map, empty when absent.
func (r *Repository) AmountOverrides() (map[string]models.AmountOverrides, error) {
	overrides := make(map[string]models.AmountOverrides)
	if _, err := r.getJSON(KeyAmountOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// SaveScreenshot persists the raw image payload for a normalized UTR.
// Callers decide whether ErrCapacityExceeded is fatal.
func (r *Repository) SaveScreenshot(utr string, payload []byte) error {
	return r.engine.Set(ScreenshotKey(utr), payload)
}

// Screenshot loads the raw image payload for a normalized UTR, if present.
func (r *Repository) Screenshot(utr string) ([]byte, bool, error) {
	return r.engine.Get(ScreenshotKey(utr))
}
