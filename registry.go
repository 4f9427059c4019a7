// registry.go
// Package userregistry provides an in-memory user registry and a text
// normalization helper.
//
// The registry maps usernames to records holding an email address and a
// creation timestamp. Create rejects duplicates with a plain false and Get
// is a comma-ok lookup; no errors are raised on either path. The normalizer
// upper-cases the leading elements of a string slice, dropping blank ones.
//
// This package is the convenience surface with defaults. The pkg/user,
// pkg/normalize and pkg/streaming packages expose the full options.
package userregistry

import (
	"context"

	"github.com/baditaflorin/go_user_registry/pkg/user"
	"github.com/baditaflorin/l"
)

// DefaultConnectionTarget is the placeholder storage locator used when none
// is configured. It is recorded and logged, never dialed.
const DefaultConnectionTarget = "sqlite:///users.db"

// UserRecord is the stored data for one username.
type UserRecord = user.Record

// Config holds configuration options for the registry.
type Config struct {
	ConnectionTarget string
	// Logger for tracing registry operations.
	Logger l.Logger
}

// Option defines a functional option for configuring the registry.
type Option func(*Config)

// WithConnectionTarget sets a custom storage locator.
func WithConnectionTarget(target string) Option {
	return func(cfg *Config) {
		cfg.ConnectionTarget = target
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// Registry owns the in-memory username to record mapping.
type Registry struct {
	inner *user.Registry
}

// New creates a new Registry with the provided functional options.
func New(opts ...Option) (*Registry, error) {
	cfg := Config{
		ConnectionTarget: DefaultConnectionTarget,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = logger
	}

	inner, err := user.New(
		user.WithConnectionTarget(cfg.ConnectionTarget),
		user.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{inner: inner}, nil
}

// Create registers username with the given email. It reports false and
// changes nothing when the username is already taken. The email format is
// not validated on this path.
func (r *Registry) Create(username, email string) bool {
	return r.inner.Create(context.Background(), username, email)
}

// Get returns the record stored under username, if any.
func (r *Registry) Get(username string) (UserRecord, bool) {
	return r.inner.Get(context.Background(), username)
}

// Count reports the number of registered users.
func (r *Registry) Count() int {
	return r.inner.Count()
}

// ConnectionTarget returns the opaque storage locator.
func (r *Registry) ConnectionTarget() string {
	return r.inner.ConnectionTarget()
}
