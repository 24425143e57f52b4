// Package session derives the current auth/navigation state from the
// persisted flag set and handles login against the provisioned admin
// accounts and the built-in participant credential pair.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skf-fest/refresko/internal/metrics"
	"github.com/skf-fest/refresko/internal/models"
	"github.com/skf-fest/refresko/internal/storage"
)

var (
	// ErrInvalidCredentials is deliberately generic: wrong email and wrong
	// password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLoginInFlight is returned when a login is attempted while a prior
	// one is still resolving.
	ErrLoginInFlight = errors.New("login already in progress")
)

// Built-in participant credentials. The festival site ships with a single
// demo student account; real credential management is out of scope.
const (
	studentEmail    = "student@skf.in"
	studentPassword = "Student@12345"
)

// Route is a navigation target derived from the persisted flags.
type Route string

const (
	// RouteLogin is the anonymous state: stay on the login form.
	RouteLogin Route = "login"

	RouteAdmin        Route = "admin"
	RouteProfileSetup Route = "profile-setup"
	RouteDashboard    Route = "dashboard"
)

// Flags is the persisted flag set a login-capable view reads on mount.
type Flags struct {
	AdminAuthenticated bool
	IsAuthenticated    bool
	ProfileCompleted   bool
}

// Resolve maps the flag set to a route. adminLoginMode corresponds to the
// ?role=admin query parameter: it keeps an authenticated participant on the
// login form so an admin can sign in, but never outranks an admin session.
//
// Precedence, first match wins:
//  1. admin flag set -> admin area, regardless of anything else
//  2. participant authenticated with a complete profile -> dashboard
//  3. participant authenticated otherwise -> profile setup
//  4. anonymous -> login form
func Resolve(flags Flags, adminLoginMode bool) Route {
	if flags.AdminAuthenticated {
		return RouteAdmin
	}
	if !adminLoginMode {
		if flags.IsAuthenticated && flags.ProfileCompleted {
			return RouteDashboard
		}
		if flags.IsAuthenticated {
			return RouteProfileSetup
		}
	}
	return RouteLogin
}

// Manager performs login, logout and flag reads against the repository.
type Manager struct {
	repo *storage.Repository

	// delay models the network round trip of a real auth call. The login
	// form stays disabled for its duration.
	delay time.Duration

	mu       sync.Mutex
	inFlight bool
}

// NewManager creates a Manager. delay may be zero in tests.
func NewManager(repo *storage.Repository, delay time.Duration) *Manager {
	return &Manager{repo: repo, delay: delay}
}

// Flags reads the current persisted flag set.
func (m *Manager) Flags() (Flags, error) {
	admin, err := m.repo.Flag(storage.KeyAdminAuthenticated)
	if err != nil {
		return Flags{}, err
	}
	authed, err := m.repo.Flag(storage.KeyIsAuthenticated)
	if err != nil {
		return Flags{}, err
	}
	complete, err := m.repo.Flag(storage.KeyProfileCompleted)
	if err != nil {
		return Flags{}, err
	}
	return Flags{
		AdminAuthenticated: admin,
		IsAuthenticated:    authed,
		ProfileCompleted:   complete,
	}, nil
}

// Route resolves the current route from the persisted flags.
func (m *Manager) Route(adminLoginMode bool) (Route, error) {
	flags, err := m.Flags()
	if err != nil {
		return RouteLogin, err
	}
	return Resolve(flags, adminLoginMode), nil
}

// Login verifies credentials and updates the persisted session state,
// returning the route to navigate to. Provisioned admin accounts are
// checked before the built-in participant pair. A second Login while one is
// resolving fails with ErrLoginInFlight.
func (m *Manager) Login(ctx context.Context, email, password string) (Route, error) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return RouteLogin, ErrLoginInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	// Simulated auth round trip.
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return RouteLogin, ctx.Err()
		}
	}

	if route, ok, err := m.loginAdmin(email, password); err != nil || ok {
		return route, err
	}

	if email == studentEmail && password == studentPassword {
		return m.loginStudent(email)
	}

	metrics.Logins.WithLabelValues("invalid").Inc()
	return RouteLogin, ErrInvalidCredentials
}

func (m *Manager) loginAdmin(email, password string) (Route, bool, error) {
	accounts, err := m.repo.AdminAccounts()
	if err != nil {
		return RouteLogin, false, err
	}

	submitted := strings.ToLower(email)
	for _, account := range accounts {
		if account.Email != submitted || account.Status != models.AdminAccountActive {
			continue
		}
		if !passwordMatches(account.Password, password) {
			continue
		}

		// The admin flag outranks any stale participant flags, so those
		// are left untouched.
		if err := m.repo.SetFlag(storage.KeyAdminAuthenticated); err != nil {
			return RouteLogin, false, err
		}
		if err := m.repo.SetString(storage.KeyAdminLoginEmail, account.Email); err != nil {
			return RouteLogin, false, err
		}
		slog.Info("admin login", "email", account.Email)
		metrics.Logins.WithLabelValues("admin").Inc()
		return RouteAdmin, true, nil
	}
	return RouteLogin, false, nil
}

func (m *Manager) loginStudent(email string) (Route, error) {
	// A student login revokes a stale admin session flag.
	if err := m.repo.ClearFlag(storage.KeyAdminAuthenticated); err != nil {
		return RouteLogin, err
	}
	if err := m.repo.SetFlag(storage.KeyIsAuthenticated); err != nil {
		return RouteLogin, err
	}
	if err := m.repo.SetString(storage.KeyLoginEmail, email); err != nil {
		return RouteLogin, err
	}
	slog.Info("student login", "email", email)
	metrics.Logins.WithLabelValues("student").Inc()

	complete, err := m.repo.Flag(storage.KeyProfileCompleted)
	if err != nil {
		return RouteLogin, err
	}
	if complete {
		return RouteDashboard, nil
	}
	return RouteProfileSetup, nil
}

// Logout clears every session flag and identity key.
func (m *Manager) Logout() error {
	for _, key := range []string{
		storage.KeyAdminAuthenticated,
		storage.KeyIsAuthenticated,
		storage.KeyAdminLoginEmail,
		storage.KeyLoginEmail,
	} {
		if err := m.repo.ClearFlag(key); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	return nil
}

// passwordMatches compares a stored password against the submitted one.
// Stored values may be bcrypt hashes or plain text from legacy seed data.
func passwordMatches(stored, submitted string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
	}
	return stored == submitted
}
