package payments

import (
	"fmt"

	"github.com/skf-fest/refresko/internal/storage"
)

// Registry enforces one unique UTR per student, backed by the persisted
// usedUtrRegistry map.
//
// The store has no transactions, so claim-then-persist is not atomic against
// a writer in another process. Claim narrows the window with a re-read after
// persisting, but two processes claiming the same unbound UTR at the same
// instant can still both succeed. That limitation is accepted and documented,
// not hidden.
type Registry struct {
	repo *storage.Repository
}

// NewRegistry creates a Registry over repo.
func NewRegistry(repo *storage.Repository) *Registry {
	return &Registry{repo: repo}
}

// Owner returns the student code bound to utr, if any.
func (r *Registry) Owner(utr string) (string, bool, error) {
	registry, err := r.repo.Registry()
	if err != nil {
		return "", false, err
	}
	owner, ok := registry[utr]
	return owner, ok, nil
}

// Claim binds utr to studentCode. Binding an unbound UTR succeeds; rebinding
// one the student already owns is an idempotent no-op; a UTR owned by another
// student fails with ErrDuplicateUTR.
func (r *Registry) Claim(utr, studentCode string) error {
	registry, err := r.repo.Registry()
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	if owner, ok := registry[utr]; ok {
		if owner != studentCode {
			return ErrDuplicateUTR
		}
		// Already self-owned, nothing to write.
		return nil
	}

	registry[utr] = studentCode
	if err := r.repo.SaveRegistry(registry); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}

	// Re-read to catch a racing writer that landed after our read. This
	// detects the common interleaving; it does not make the claim atomic.
	registry, err = r.repo.Registry()
	if err != nil {
		return fmt.Errorf("verify registry: %w", err)
	}
	if owner := registry[utr]; owner != studentCode {
		return ErrDuplicateUTR
	}
	return nil
}
