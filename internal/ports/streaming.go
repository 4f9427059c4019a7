package ports

import (
	"context"
	"io"
)

// LineStats summarizes one streaming normalization pass.
type LineStats struct {
	// LinesKept is the number of lines written to the output.
	LinesKept int
	// LinesDropped is the number of blank lines removed.
	LinesDropped int
	// BytesRead is the number of input bytes consumed.
	BytesRead int64
}

// LineProcessor defines the interface for normalizing newline-delimited streams.
type LineProcessor interface {
	// ProcessLines reads reader line by line, writes each kept normalized
	// line followed by a newline to writer, and returns the pass statistics.
	ProcessLines(ctx context.Context, reader io.Reader, writer io.Writer) (LineStats, error)
}
