// Package user provides the public API for the in-memory user registry.
package user

import (
	"context"

	"github.com/baditaflorin/go_user_registry/internal/adapters/logger"
	"github.com/baditaflorin/go_user_registry/internal/adapters/store"
	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	coreregistry "github.com/baditaflorin/go_user_registry/internal/core/registry"
	"github.com/baditaflorin/go_user_registry/internal/ports"
	"github.com/baditaflorin/l"
	"github.com/jonboulle/clockwork"
)

// Record is the stored data for one username.
type Record = domain.User

// Registry owns an in-memory mapping from username to record and exposes
// the create/get operations. Both report outcomes as plain booleans; no
// errors are raised on the operation paths.
type Registry struct {
	core   *coreregistry.Registry
	logger ports.Logger
}

// Option defines a functional option for configuring the registry.
type Option func(*registryConfig)

type registryConfig struct {
	ConnectionTarget string
	Logger           ports.Logger
	Store            ports.UserStore
	Clock            clockwork.Clock
}

// WithConnectionTarget sets the opaque storage locator recorded by the
// registry. The target is logged once and never dialed.
func WithConnectionTarget(target string) Option {
	return func(cfg *registryConfig) {
		cfg.ConnectionTarget = target
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *registryConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithStore sets a custom user store.
func WithStore(s ports.UserStore) Option {
	return func(cfg *registryConfig) {
		cfg.Store = s
	}
}

// WithClock sets the clock used for record creation timestamps.
// Pass a fake clock in tests for deterministic timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(cfg *registryConfig) {
		cfg.Clock = clock
	}
}

// New creates a new Registry instance.
func New(opts ...Option) (*Registry, error) {
	defaultConfig := coreregistry.DefaultConfig()

	cfg := &registryConfig{
		ConnectionTarget: defaultConfig.ConnectionTarget,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	core, err := coreregistry.NewRegistry(
		coreregistry.Config{ConnectionTarget: cfg.ConnectionTarget},
		cfg.Store,
		cfg.Clock,
		cfg.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Registry{
		core:   core,
		logger: cfg.Logger,
	}, nil
}

// Create registers username with the given email. It reports false and
// changes nothing when the username is already taken. The email format is
// not validated on this path.
func (r *Registry) Create(ctx context.Context, username, email string) bool {
	return r.core.Create(ctx, username, email)
}

// Get returns the record stored under username, if any.
func (r *Registry) Get(ctx context.Context, username string) (Record, bool) {
	return r.core.Get(ctx, username)
}

// Count reports the number of registered users.
func (r *Registry) Count() int {
	return r.core.Count()
}

// ConnectionTarget returns the opaque storage locator.
func (r *Registry) ConnectionTarget() string {
	return r.core.ConnectionTarget()
}
