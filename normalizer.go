// normalizer.go
// TextNormalizer is the convenience surface for the batch normalization
// pipeline: take at most MaxItems leading elements, drop the blank ones,
// upper-case the rest in their original order.
package userregistry

import (
	"context"

	"github.com/baditaflorin/go_user_registry/pkg/normalize"
	"github.com/baditaflorin/l"
)

// DefaultMaxItems is the default cap on considered elements.
const DefaultMaxItems = 100

// NormalizerConfig holds configuration options for the text normalizer.
type NormalizerConfig struct {
	MaxItems int
	// Logger for tracing normalization steps.
	Logger l.Logger
}

// NormalizerOption defines a functional option for configuring the normalizer.
type NormalizerOption func(*NormalizerConfig)

// WithMaxItems sets a custom cap on considered elements.
func WithMaxItems(n int) NormalizerOption {
	return func(cfg *NormalizerConfig) {
		cfg.MaxItems = n
	}
}

// WithNormalizerLogger sets a custom logger.
func WithNormalizerLogger(logger l.Logger) NormalizerOption {
	return func(cfg *NormalizerConfig) {
		cfg.Logger = logger
	}
}

// TextNormalizer transforms a sequence of strings.
type TextNormalizer struct {
	inner *normalize.Normalizer
}

// NewTextNormalizer creates a new TextNormalizer with the provided options.
func NewTextNormalizer(opts ...NormalizerOption) (*TextNormalizer, error) {
	cfg := NormalizerConfig{
		MaxItems: DefaultMaxItems,
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

	inner, err := normalize.New(
		normalize.WithMaxItems(cfg.MaxItems),
		normalize.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, err
	}
	return &TextNormalizer{inner: inner}, nil
}

// Normalize applies the pipeline and returns the kept elements.
func (n *TextNormalizer) Normalize(items []string) []string {
	return n.inner.Normalize(context.Background(), items)
}
