// Package normalize provides the public API for batch text normalization.
package normalize

import (
	"context"

	"github.com/baditaflorin/go_user_registry/internal/adapters/logger"
	"github.com/baditaflorin/go_user_registry/internal/adapters/normalizer"
	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	corenormalize "github.com/baditaflorin/go_user_registry/internal/core/normalize"
	"github.com/baditaflorin/go_user_registry/internal/ports"
	"github.com/baditaflorin/go_user_registry/internal/warmup"
	"github.com/baditaflorin/l"
)

// Result holds the detailed outcome of a batch normalization.
type Result = domain.NormalizeResult

// Normalizer applies the truncate, filter, upper-case pipeline to string
// slices: the first MaxItems elements are considered, blank elements are
// dropped, the rest are upper-cased in their original order.
type Normalizer struct {
	core   *corenormalize.Normalizer
	item   ports.ItemNormalizer
	logger ports.Logger
	warmed bool
}

// Option defines a functional option for configuring the normalizer.
type Option func(*normalizerConfig)

type normalizerConfig struct {
	MaxItems     int
	Logger       ports.Logger
	Item         ports.ItemNormalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithMaxItems sets a custom cap on considered elements.
func WithMaxItems(n int) Option {
	return func(cfg *normalizerConfig) {
		cfg.MaxItems = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *normalizerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithItemNormalizer sets a custom per-element strategy.
func WithItemNormalizer(item ports.ItemNormalizer) Option {
	return func(cfg *normalizerConfig) {
		cfg.Item = item
	}
}

// WithOptimizedNormalizer selects the ASCII-table normalizer with pooled buffers.
func WithOptimizedNormalizer() Option {
	return func(cfg *normalizerConfig) {
		cfg.Item = normalizer.NewFactory().Create(normalizer.OptimizedItemNormalizerType)
	}
}

// WithWarmUp enables pool warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *normalizerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.Config) Option {
	return func(cfg *normalizerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Normalizer instance.
func New(opts ...Option) (*Normalizer, error) {
	defaultConfig := corenormalize.DefaultConfig()

	cfg := &normalizerConfig{
		MaxItems:     defaultConfig.MaxItems,
		WarmUpConfig: warmup.DefaultConfig(),
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
	if cfg.Item == nil {
		cfg.Item = normalizer.NewDefaultItemNormalizer()
	}

	core, err := corenormalize.NewNormalizer(
		corenormalize.Config{MaxItems: cfg.MaxItems},
		cfg.Item,
		cfg.Logger,
	)
	if err != nil {
		return nil, err
	}

	n := &Normalizer{
		core:   core,
		item:   cfg.Item,
		logger: cfg.Logger,
	}

	if cfg.WarmUp {
		n.WarmUp(context.Background(), cfg.WarmUpConfig)
	}

	return n, nil
}

// Normalize applies the pipeline with the configured cap and returns the
// kept elements only.
func (n *Normalizer) Normalize(ctx context.Context, items []string) []string {
	return n.core.Normalize(ctx, items).Items
}

// NormalizeDetailed applies the pipeline with the configured cap and
// returns the full result including counts.
func (n *Normalizer) NormalizeDetailed(ctx context.Context, items []string) Result {
	return n.core.Normalize(ctx, items)
}

// NormalizeWithLimit applies the pipeline with an explicit cap. A cap of
// zero or less yields an empty result.
func (n *Normalizer) NormalizeWithLimit(ctx context.Context, items []string, maxItems int) Result {
	return n.core.NormalizeWithLimit(ctx, items, maxItems)
}

// WarmUp pre-faults the normalizer pools.
func (n *Normalizer) WarmUp(ctx context.Context, config warmup.Config) {
	if n.warmed {
		n.logger.Debug("already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(n.logger, config)
	mgr.RegisterItemNormalizer(n.item)
	mgr.WarmUp(ctx)
	n.warmed = true
}
