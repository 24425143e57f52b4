// Package admin implements the read model behind the payment management
// views: normalized submission loading with the legacy fallback, filtering,
// and revenue summaries. It only ever reads the store; status mutation is
// the review flow's concern.
package admin

import (
	"log/slog"
	"strings"

	"github.com/skf-fest/refresko/internal/metrics"
	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/normalize"
	"github.com/skf-fest/refresko/internal/notify"
	"github.com/skf-fest/refresko/internal/storage"
)

// ReadModel loads and derives view state from the repository.
type ReadModel struct {
	repo *storage.Repository
}

// NewReadModel creates a ReadModel over repo.
func NewReadModel(repo *storage.Repository) *ReadModel {
	return &ReadModel{repo: repo}
}

// Payments returns the canonical submission list, newest first. When the
// list key is absent or empty it folds the legacy single-submission keys
// into one record, preserving data written under the old schema.
func (m *ReadModel) Payments() ([]models.PaymentRecord, error) {
	raw, err := m.repo.SubmissionsRaw()
	if err != nil {
		return nil, err
	}
	records := normalize.Payments(raw)
	if len(records) > 0 {
		return records, nil
	}
	return m.legacyPayments()
}

// legacyPayments synthesizes one record from the pre-list scalar keys.
// Read-only migration path: nothing is written back.
func (m *ReadModel) legacyPayments() ([]models.PaymentRecord, error) {
	legacyUTR, err := m.repo.GetString(storage.KeyPaymentUTR)
	if err != nil {
		return nil, err
	}
	legacyTxnID, err := m.repo.GetString(storage.KeyTransactionID)
	if err != nil {
		return nil, err
	}
	if legacyUTR == "" && legacyTxnID == "" {
		return []models.PaymentRecord{}, nil
	}

	profile, _, err := m.repo.Profile()
	if err != nil {
		return nil, err
	}
	screenshotName, err := m.repo.GetString(storage.KeyPaymentScreenshotName)
	if err != nil {
		return nil, err
	}

	// Route the synthesized shape through the normalizer so defaults are
	// applied in exactly one place.
	return normalize.Payments([]any{map[string]any{
		"utrNo":          legacyUTR,
		"transactionId":  legacyTxnID,
		"studentCode":    profile.StudentID,
		"studentName":    profile.Name,
		"email":          profile.Email,
		"department":     profile.Department,
		"year":           profile.Year,
		"screenshotName": screenshotName,
	}}), nil
}

// Filter narrows the payment table. Status is "all" or a PaymentStatus
// value; Search matches name, student code or UTR, case-insensitively.
type Filter struct {
	Search string
	Status string
}

// Apply returns the records matching the filter, preserving order.
func (f Filter) Apply(records []models.PaymentRecord) []models.PaymentRecord {
	needle := strings.ToLower(f.Search)
	var out []models.PaymentRecord
	for _, record := range records {
		if f.Status != "" && f.Status != "all" && string(record.Status) != f.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(record.StudentName), needle) &&
			!strings.Contains(strings.ToLower(record.StudentCode), needle) &&
			!strings.Contains(strings.ToLower(record.UTRNo), needle) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Summary is the revenue card data above the payment table.
type Summary struct {
	TotalRevenue   float64
	PendingAmount  float64
	CompletedCount int
	PendingCount   int
}

// Summarize computes the revenue summary over records.
func Summarize(records []models.PaymentRecord) Summary {
	var s Summary
	for _, record := range records {
		switch record.Status {
		case models.StatusCompleted:
			s.TotalRevenue += record.Amount
			s.CompletedCount++
		case models.StatusPending:
			s.PendingAmount += record.Amount
			s.PendingCount++
		}
	}
	return s
}

// DisplayAmount returns the amount to show for one student and event,
// honoring a super-admin override when present. The submission flow never
// consults this; it always charges the fixed fee.
func (m *ReadModel) DisplayAmount(studentCode, eventID string) (float64, error) {
	overrides, err := m.repo.AmountOverrides()
	if err != nil {
		return 0, err
	}
	if byEvent, ok := overrides[studentCode]; ok {
		if amount, ok := byEvent[eventID]; ok {
			return amount, nil
		}
	}
	return models.DefaultAmount, nil
}

// OverrideTotal sums a student's custom amounts across all events, the
// figure the super-admin amount panel displays.
func (m *ReadModel) OverrideTotal(studentCode string) (float64, error) {
	overrides, err := m.repo.AmountOverrides()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, amount := range overrides[studentCode] {
		total += amount
	}
	return total, nil
}

// Watch subscribes to both notification channels and re-runs the load on
// every event, exactly as a mounted admin table does. The returned stop
// function unsubscribes; forgetting it leaks the handler.
func (m *ReadModel) Watch(bus *notify.Bus, onChange func([]models.PaymentRecord)) func() {
	sub := bus.Subscribe(notify.TopicSubmissionsUpdated, notify.TopicStoreChanged)
	go func() {
		for event := range sub.C {
			metrics.NotifierEvents.WithLabelValues(event.Topic).Inc()
			records, err := m.Payments()
			if err != nil {
				slog.Warn("admin: refresh after change failed", "error", err)
				continue
			}
			onChange(records)
		}
	}()
	return sub.Unsubscribe
}
