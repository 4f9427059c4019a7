// Package streaming provides normalization of newline-delimited text streams.
package streaming

import (
	"context"
	"io"
	"time"

	"github.com/baditaflorin/go_user_registry/internal/adapters/logger"
	"github.com/baditaflorin/go_user_registry/internal/adapters/normalizer"
	"github.com/baditaflorin/go_user_registry/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	"github.com/baditaflorin/go_user_registry/internal/ports"
	"github.com/baditaflorin/go_user_registry/internal/warmup"
	"github.com/baditaflorin/l"
)

// Result holds the outcome of a streaming normalization.
type Result = domain.StreamResult

// StreamNormalizer normalizes newline-delimited input: blank lines are
// dropped, every other line is upper-cased and written to the output.
type StreamNormalizer struct {
	processor ports.LineProcessor
	logger    ports.Logger
}

// Option defines a functional option for configuring the stream normalizer.
type Option func(*streamConfig)

type streamConfig struct {
	ChunkSize int
	MaxLines  int
	Logger    ports.Logger
	Item      ports.ItemNormalizer
}

// WithChunkSize sets a custom read chunk size.
func WithChunkSize(size int) Option {
	return func(cfg *streamConfig) {
		cfg.ChunkSize = size
	}
}

// WithMaxLines caps how many input lines are considered. Zero or negative
// means no cap.
func WithMaxLines(n int) Option {
	return func(cfg *streamConfig) {
		cfg.MaxLines = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *streamConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithItemNormalizer sets a custom per-line strategy.
func WithItemNormalizer(item ports.ItemNormalizer) Option {
	return func(cfg *streamConfig) {
		cfg.Item = item
	}
}

// WithOptimizedNormalizer selects the ASCII-table normalizer with pooled buffers.
func WithOptimizedNormalizer() Option {
	return func(cfg *streamConfig) {
		cfg.Item = normalizer.NewFactory().Create(normalizer.OptimizedItemNormalizerType)
	}
}

// New creates a new StreamNormalizer instance.
func New(opts ...Option) (*StreamNormalizer, error) {
	cfg := &streamConfig{}
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

	processor := lineprocessor.NewProcessor(cfg.Logger, cfg.Item, lineprocessor.Config{
		ChunkSize: cfg.ChunkSize,
		MaxLines:  cfg.MaxLines,
	})

	return &StreamNormalizer{
		processor: processor,
		logger:    cfg.Logger,
	}, nil
}

// NormalizeStream reads newline-delimited text from reader and writes the
// normalized lines to writer.
func (s *StreamNormalizer) NormalizeStream(ctx context.Context, reader io.Reader, writer io.Writer) Result {
	startTime := time.Now()
	details := make(map[string]interface{})

	stats, err := s.processor.ProcessLines(ctx, reader, writer)
	if err != nil {
		s.logger.Error("stream normalization failed", "error", err)
		details["error"] = err.Error()
	}

	result := Result{
		Name:           "stream_normalize",
		LinesKept:      stats.LinesKept,
		LinesDropped:   stats.LinesDropped,
		BytesProcessed: stats.BytesRead,
		ProcessingTime: time.Since(startTime),
		Details:        details,
	}

	s.logger.Debug("stream normalized",
		"lines_kept", result.LinesKept,
		"lines_dropped", result.LinesDropped,
		"bytes_processed", result.BytesProcessed,
		"processing_time", result.ProcessingTime,
	)
	return result
}

// WarmUp pre-faults the processor pools.
func (s *StreamNormalizer) WarmUp(ctx context.Context, config warmup.Config) {
	mgr := warmup.NewManager(s.logger, config)
	mgr.RegisterLineProcessor(s.processor)
	mgr.WarmUp(ctx)
}
