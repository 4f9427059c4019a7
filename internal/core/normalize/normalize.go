package normalize

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// DefaultMaxItems caps how many leading source elements are considered
// per call when no explicit cap is configured.
const DefaultMaxItems = 100

// Config holds configuration for the batch normalizer.
type Config struct {
	// MaxItems caps how many leading elements of the input are considered.
	// Zero or negative yields an empty result.
	MaxItems int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		MaxItems: DefaultMaxItems,
	}
}

// Normalizer implements the truncate, filter, upper-case pipeline.
type Normalizer struct {
	config Config
	item   ports.ItemNormalizer
	logger ports.Logger
}

// NewNormalizer creates a new batch normalizer core.
func NewNormalizer(config Config, item ports.ItemNormalizer, logger ports.Logger) (*Normalizer, error) {
	if item == nil {
		return nil, errors.New("item normalizer must not be nil")
	}

	return &Normalizer{
		config: config,
		item:   item,
		logger: logger,
	}, nil
}

// Normalize applies the pipeline to items using the configured cap.
func (n *Normalizer) Normalize(ctx context.Context, items []string) domain.NormalizeResult {
	return n.NormalizeWithLimit(ctx, items, n.config.MaxItems)
}

// NormalizeWithLimit applies the pipeline with an explicit cap: the first
// maxItems elements are considered, blank elements are dropped, and the
// rest are upper-cased with their relative order preserved.
func (n *Normalizer) NormalizeWithLimit(ctx context.Context, items []string, maxItems int) domain.NormalizeResult {
	res := domain.NormalizeResult{
		Items:    []string{},
		MaxItems: maxItems,
	}

	if maxItems <= 0 || len(items) == 0 {
		return res
	}

	select {
	case <-ctx.Done():
		n.logger.Warn("normalization cancelled", "error", ctx.Err())
		return res
	default:
	}

	taken := items
	if len(taken) > maxItems {
		taken = taken[:maxItems]
	}
	res.Taken = len(taken)

	out := make([]string, 0, len(taken))
	for _, item := range taken {
		normalized, keep := n.item.NormalizeItem(item)
		if !keep {
			res.Dropped++
			continue
		}
		out = append(out, normalized)
	}
	res.Items = out

	n.logger.Debug("normalized batch",
		"input", len(items),
		"taken", res.Taken,
		"kept", len(out),
		"dropped", res.Dropped,
	)
	return res
}
