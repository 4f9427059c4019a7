package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	"github.com/baditaflorin/go_user_registry/internal/ports"
	"github.com/jonboulle/clockwork"
)

// Config holds configuration for the user registry.
type Config struct {
	// ConnectionTarget is an opaque storage locator. It is recorded and
	// logged at startup but never dialed.
	ConnectionTarget string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ConnectionTarget: "sqlite:///users.db",
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ConnectionTarget == "" {
		return errors.New("connection target must not be empty")
	}
	return nil
}

// Registry implements the username to record registry semantics.
type Registry struct {
	config Config
	store  ports.UserStore
	clock  clockwork.Clock
	logger ports.Logger
}

// NewRegistry creates a new registry core.
func NewRegistry(config Config, store ports.UserStore, clock clockwork.Clock, logger ports.Logger) (*Registry, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger.Info("registry initialized",
		"connection_target", config.ConnectionTarget,
	)

	return &Registry{
		config: config,
		store:  store,
		clock:  clock,
		logger: logger,
	}, nil
}

// Create registers username with the given email. It reports false and
// changes nothing when the username is already taken or empty. The email
// format is not checked on this path.
func (r *Registry) Create(ctx context.Context, username, email string) bool {
	select {
	case <-ctx.Done():
		r.logger.Warn("create cancelled", "error", ctx.Err())
		return false
	default:
	}

	if username == "" {
		r.logger.Debug("rejected empty username")
		return false
	}

	rec := domain.User{
		Email:     email,
		CreatedAt: r.clock.Now(),
	}
	if !r.store.Insert(username, rec) {
		r.logger.Debug("username already registered", "username", username)
		return false
	}

	r.logger.Info("user created",
		"username", username,
		"total_users", r.store.Len(),
	)
	return true
}

// Get returns the record stored under username.
func (r *Registry) Get(ctx context.Context, username string) (domain.User, bool) {
	rec, ok := r.store.Lookup(username)
	r.logger.Debug("user lookup",
		"username", username,
		"found", ok,
	)
	return rec, ok
}

// Count reports the number of registered users.
func (r *Registry) Count() int {
	return r.store.Len()
}

// ConnectionTarget returns the opaque storage locator the registry was
// constructed with.
func (r *Registry) ConnectionTarget() string {
	return r.config.ConnectionTarget
}

// isValidEmail reports whether email looks like an address. The check is a
// syntactic approximation (both '@' and '.' must appear) and is not wired
// into Create.
func isValidEmail(email string) bool {
	return strings.ContainsRune(email, '@') && strings.ContainsRune(email, '.')
}
