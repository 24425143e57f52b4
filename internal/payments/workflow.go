// Package payments implements the payment-proof submission workflow and the
// UTR uniqueness registry.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skf-fest/refresko/internal/metrics"
	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/normalize"
	"github.com/skf-fest/refresko/internal/storage"
)

// MaxSubmissions caps the persisted submission list. Entries beyond the cap
// are the oldest and may be discarded; nothing inside the cap is ever lost
// silently.
const MaxSubmissions = 200

// utrPattern validates a normalized UTR: 8 to 30 characters, letters and
// digits only. Input is uppercased before validation.
var utrPattern = regexp.MustCompile(`^[A-Z0-9]{8,30}$`)

// SubmissionInput is what the payment form hands to Submit.
type SubmissionInput struct {
	Profile models.StudentProfile

	// UTR is the raw participant-supplied reference; Submit trims and
	// uppercases it before validating.
	UTR string

	// Screenshot is the raw proof image payload. Required.
	Screenshot []byte

	// ScreenshotName is the display name of the uploaded file.
	ScreenshotName string
}

// Receipt is the result of a committed submission. The durable writes are
// final once Submit returns; Settle only waits out the simulated processing
// latency before the success screen shows.
type Receipt struct {
	Record        models.PaymentRecord
	TransactionID string

	workflow *Workflow
	delay    time.Duration
	settled  bool
}

// Workflow orchestrates screenshot capture, UTR validation and dedup,
// record creation, and the registry/store updates.
type Workflow struct {
	repo     *storage.Repository
	registry *Registry

	// delay is the simulated processing latency between commit and the
	// success notification.
	delay time.Duration

	mu       sync.Mutex
	inFlight bool
}

// NewWorkflow creates a Workflow. delay may be zero in tests, which makes
// Settle return immediately.
func NewWorkflow(repo *storage.Repository, delay time.Duration) *Workflow {
	return &Workflow{
		repo:     repo,
		registry: NewRegistry(repo),
		delay:    delay,
	}
}

// Registry exposes the UTR registry, mainly for read views.
func (w *Workflow) Registry() *Registry { return w.registry }

// NormalizeUTR applies the canonical UTR normalization: trim, uppercase.
func NormalizeUTR(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Submit runs the submission gates in order and, if they all pass, commits
// the registry claim, the canonical record and the legacy compatibility keys.
// The first failing gate aborts with no partial writes.
//
// Submit is the synchronous commit phase; call Settle on the returned
// Receipt for the simulated processing latency. A second Submit before the
// prior receipt settles fails with ErrSubmissionInFlight.
func (w *Workflow) Submit(ctx context.Context, input SubmissionInput) (*Receipt, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		metrics.Submissions.WithLabelValues("in_flight").Inc()
		return nil, ErrSubmissionInFlight
	}
	w.inFlight = true
	w.mu.Unlock()

	receipt, err := w.submit(ctx, input)
	if err != nil {
		w.clearInFlight()
		return nil, err
	}
	return receipt, nil
}

func (w *Workflow) submit(ctx context.Context, input SubmissionInput) (*Receipt, error) {
	if len(input.Screenshot) == 0 {
		metrics.Submissions.WithLabelValues("missing_screenshot").Inc()
		return nil, ErrMissingScreenshot
	}

	utr := NormalizeUTR(input.UTR)
	if utr == "" {
		metrics.Submissions.WithLabelValues("missing_utr").Inc()
		return nil, ErrMissingUTR
	}
	if !utrPattern.MatchString(utr) {
		metrics.Submissions.WithLabelValues("invalid_utr").Inc()
		return nil, ErrInvalidUTRFormat
	}

	studentCode := input.Profile.StudentID
	if studentCode == "" {
		studentCode = models.UnknownField
	}

	if err := w.registry.Claim(utr, studentCode); err != nil {
		if errors.Is(err, ErrDuplicateUTR) {
			metrics.Submissions.WithLabelValues("duplicate_utr").Inc()
			return nil, err
		}
		metrics.Submissions.WithLabelValues("error").Inc()
		return nil, err
	}

	txnID := "TXN-" + strings.ToUpper(uuid.New().String())
	record := w.buildRecord(input, utr, studentCode, txnID)

	if err := w.appendRecord(record); err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		return nil, err
	}
	if err := w.writeLegacyKeys(record); err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		return nil, err
	}

	// Best effort: a store quota rejection loses only the image payload,
	// never the committed submission.
	if err := w.repo.SaveScreenshot(utr, input.Screenshot); err != nil {
		metrics.ScreenshotWritesSkipped.Inc()
		slog.Warn("payment screenshot skipped due to store size limit",
			"utr", utr, "error", err)
	}

	slog.Info("payment submitted",
		"utr", utr,
		"student_code", studentCode,
		"transaction_id", txnID,
	)
	metrics.Submissions.WithLabelValues("ok").Inc()

	return &Receipt{
		Record:        record,
		TransactionID: txnID,
		workflow:      w,
		delay:         w.delay,
	}, nil
}

func (w *Workflow) buildRecord(input SubmissionInput, utr, studentCode, txnID string) models.PaymentRecord {
	field := func(s string) string {
		if s == "" {
			return models.UnknownField
		}
		return s
	}
	return models.PaymentRecord{
		ID:             "PAY-" + strings.ToUpper(uuid.New().String()),
		UTRNo:          utr,
		StudentCode:    studentCode,
		StudentName:    field(input.Profile.Name),
		Email:          input.Profile.Email,
		College:        models.UnknownField,
		Department:     field(input.Profile.Department),
		Year:           field(input.Profile.Year),
		Event:          models.DefaultEvent,
		Amount:         models.DefaultAmount,
		Status:         models.StatusPending,
		Date:           time.Now().Format(time.RFC3339),
		TransactionID:  txnID,
		PaymentMethod:  models.DefaultPaymentMethod,
		ScreenshotName: input.ScreenshotName,
	}
}

// appendRecord prepends record to the persisted list, newest first, and
// truncates to the cap. Existing entries pass through the normalizer, so a
// list written by an old release comes out canonical.
func (w *Workflow) appendRecord(record models.PaymentRecord) error {
	raw, err := w.repo.SubmissionsRaw()
	if err != nil {
		return fmt.Errorf("load submissions: %w", err)
	}
	existing := normalize.Payments(raw)

	updated := make([]models.PaymentRecord, 0, len(existing)+1)
	updated = append(updated, record)
	updated = append(updated, existing...)
	if len(updated) > MaxSubmissions {
		updated = updated[:MaxSubmissions]
	}

	if err := w.repo.SaveSubmissions(updated); err != nil {
		return fmt.Errorf("save submissions: %w", err)
	}
	return nil
}

// writeLegacyKeys refreshes the scalar keys older views still read.
func (w *Workflow) writeLegacyKeys(record models.PaymentRecord) error {
	if err := w.repo.SetFlag(storage.KeyPaymentCompleted); err != nil {
		return err
	}
	if err := w.repo.SetString(storage.KeyTransactionID, record.TransactionID); err != nil {
		return err
	}
	if err := w.repo.SetString(storage.KeyPaymentUTR, record.UTRNo); err != nil {
		return err
	}
	return w.repo.SetString(storage.KeyPaymentScreenshotName, record.ScreenshotName)
}

func (w *Workflow) clearInFlight() {
	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()
}

// Settle waits out the simulated processing latency and releases the
// in-flight guard. The durable writes happened in Submit; cancellation here
// only abandons the wait, it cannot roll anything back.
func (r *Receipt) Settle(ctx context.Context) error {
	if r.settled {
		return nil
	}
	r.settled = true
	defer r.workflow.clearInFlight()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
