package lineprocessor

import (
	"bytes"
	"context"
	"io"

	"github.com/baditaflorin/go_user_registry/internal/pool"
	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// Constants for line processing
const (
	// DefaultChunkSize defines the default size of each read chunk
	DefaultChunkSize = 64 * 1024 // 64KB

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // lines

	// Common newline characters
	CR = '\r'
	LF = '\n'
)

// Config defines configuration for line processing.
type Config struct {
	// ChunkSize is the read size per chunk; zero or negative selects the default.
	ChunkSize int
	// MaxLines caps how many input lines are considered. Zero or negative
	// means no cap.
	MaxLines int
}

// Processor implements line-by-line streaming normalization: blank lines
// are dropped, every other line is replaced by its normalized form.
type Processor struct {
	logger ports.Logger
	item   ports.ItemNormalizer

	chunkBufferPool *pool.BufferPool
	lineBufferPool  *pool.BufferPool

	chunkSize int
	maxLines  int
}

// NewProcessor creates a new line processor.
func NewProcessor(logger ports.Logger, item ports.ItemNormalizer, config Config) *Processor {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}

	return &Processor{
		logger:          logger,
		item:            item,
		chunkBufferPool: pool.NewBufferPool(config.ChunkSize),
		lineBufferPool:  pool.NewBufferPool(256),
		chunkSize:       config.ChunkSize,
		maxLines:        config.MaxLines,
	}
}

// ProcessLines reads reader line by line, writes each kept normalized line
// followed by LF to writer, and returns the pass statistics. A trailing line
// without a final newline still counts as a line.
func (p *Processor) ProcessLines(ctx context.Context, reader io.Reader, writer io.Writer) (ports.LineStats, error) {
	var stats ports.LineStats

	chunkBuffer := p.chunkBufferPool.Get()
	defer p.chunkBufferPool.Put(chunkBuffer)
	if cap(*chunkBuffer) < p.chunkSize {
		*chunkBuffer = make([]byte, 0, p.chunkSize)
	}
	chunk := (*chunkBuffer)[:p.chunkSize]

	lineBuffer := p.lineBufferPool.Get()
	defer p.lineBufferPool.Put(lineBuffer)

	linesSeen := 0
	contextCheckCounter := 0
	newline := []byte{LF}

	handleLine := func(raw []byte) error {
		linesSeen++

		// Strip a trailing CR so CRLF input behaves like LF input.
		if len(raw) > 0 && raw[len(raw)-1] == CR {
			raw = raw[:len(raw)-1]
		}

		normalized, keep := p.item.NormalizeItem(string(raw))
		if !keep {
			stats.LinesDropped++
			return nil
		}

		if _, err := io.WriteString(writer, normalized); err != nil {
			return err
		}
		if _, err := writer.Write(newline); err != nil {
			return err
		}
		stats.LinesKept++
		return nil
	}

	for {
		n, readErr := reader.Read(chunk)
		if n > 0 {
			stats.BytesRead += int64(n)
			data := chunk[:n]

			for len(data) > 0 {
				idx := bytes.IndexByte(data, LF)
				if idx < 0 {
					*lineBuffer = append(*lineBuffer, data...)
					break
				}

				*lineBuffer = append(*lineBuffer, data[:idx]...)
				data = data[idx+1:]

				if err := handleLine(*lineBuffer); err != nil {
					return stats, err
				}
				*lineBuffer = (*lineBuffer)[:0]

				if p.maxLines > 0 && linesSeen >= p.maxLines {
					p.logger.Debug("line cap reached", "max_lines", p.maxLines)
					return stats, nil
				}

				contextCheckCounter++
				if contextCheckCounter >= ContextCheckFrequency {
					contextCheckCounter = 0
					select {
					case <-ctx.Done():
						p.logger.Warn("processing cancelled by context", "error", ctx.Err())
						return stats, ctx.Err()
					default:
					}
				}
			}
		}

		if readErr == io.EOF {
			if len(*lineBuffer) > 0 {
				if err := handleLine(*lineBuffer); err != nil {
					return stats, err
				}
				*lineBuffer = (*lineBuffer)[:0]
			}
			return stats, nil
		}
		if readErr != nil {
			p.logger.Error("read failed during line processing", "error", readErr)
			return stats, readErr
		}
	}
}
