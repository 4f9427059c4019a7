package warmup

import (
	"context"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// Config defines configuration for warming up the system
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Number of sample items per iteration
	SampleItems int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		SampleItems: 64,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles warmup of normalizers and line processors so their
// internal pools are faulted in before real traffic arrives.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.ItemNormalizer
	processors  []ports.LineProcessor
	config      Config
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterItemNormalizer adds an item normalizer to be warmed up
func (m *Manager) RegisterItemNormalizer(n ports.ItemNormalizer) {
	m.normalizers = append(m.normalizers, n)
}

// RegisterLineProcessor adds a line processor to be warmed up
func (m *Manager) RegisterLineProcessor(p ports.LineProcessor) {
	m.processors = append(m.processors, p)
}

// WarmUp runs the warmup process for all registered components
func (m *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	m.logger.Info("starting warmup",
		"components", len(m.normalizers)+len(m.processors),
		"concurrency", m.config.Concurrency,
		"iterations", m.config.Iterations,
	)

	warmupCtx := ctx
	if m.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, m.config.Duration)
		defer cancel()
	}

	m.warmUpNormalizers(warmupCtx)
	m.warmUpProcessors(warmupCtx)

	if m.config.ForceGC {
		m.logger.Debug("forcing garbage collection after warmup")
		runtime.GC()
	}

	m.logger.Info("warmup completed",
		"duration", time.Since(startTime),
	)
}

func (m *Manager) warmUpNormalizers(ctx context.Context) {
	if len(m.normalizers) == 0 {
		return
	}

	m.logger.Debug("warming up item normalizers", "count", len(m.normalizers))
	items := generateSampleItems(m.config.SampleItems)

	var wg sync.WaitGroup
	for i := 0; i < m.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < m.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, n := range m.normalizers {
					for _, item := range items {
						_, _ = n.NormalizeItem(item)
					}
				}
			}
		}()
	}
	wg.Wait()
}

func (m *Manager) warmUpProcessors(ctx context.Context) {
	if len(m.processors) == 0 {
		return
	}

	m.logger.Debug("warming up line processors", "count", len(m.processors))
	sample := strings.Join(generateSampleItems(m.config.SampleItems), "\n")

	var wg sync.WaitGroup
	for i := 0; i < m.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Fewer iterations for streaming
			for j := 0; j < m.config.Iterations/10; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, p := range m.processors {
					_, _ = p.ProcessLines(ctx, strings.NewReader(sample), io.Discard)
				}
			}
		}()
	}
	wg.Wait()
}

// generateSampleItems creates a sample batch mixing regular, padded and
// blank elements so both pipeline branches are exercised.
func generateSampleItems(count int) []string {
	words := []string{
		"alpha", "beta", "gamma", "delta", "epsilon", "zeta",
		"user", "registry", "record", "email", "lorem", "ipsum",
	}

	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		switch i % 4 {
		case 0:
			items = append(items, words[i%len(words)])
		case 1:
			items = append(items, "  "+words[i%len(words)]+"  ")
		case 2:
			items = append(items, words[i%len(words)]+" "+words[(i+1)%len(words)])
		default:
			items = append(items, "   ")
		}
	}
	return items
}
