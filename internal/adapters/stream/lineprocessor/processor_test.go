package lineprocessor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/baditaflorin/go_user_registry/internal/adapters/normalizer"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Close() error                                   { return nil }

func newTestProcessor(config Config) *Processor {
	return NewProcessor(nopLogger{}, normalizer.NewDefaultItemNormalizer(), config)
}

func TestProcessLines(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		input       string
		expected    string
		wantKept    int
		wantDropped int
	}{
		{
			name:        "Blank lines dropped",
			input:       "one\n\n   \ntwo\n",
			expected:    "ONE\nTWO\n",
			wantKept:    2,
			wantDropped: 2,
		},
		{
			name:        "CRLF input",
			input:       "one\r\ntwo\r\n",
			expected:    "ONE\nTWO\n",
			wantKept:    2,
			wantDropped: 0,
		},
		{
			name:        "Trailing line without newline",
			input:       "one\ntwo",
			expected:    "ONE\nTWO\n",
			wantKept:    2,
			wantDropped: 0,
		},
		{
			name:        "Line cap stops early",
			config:      Config{MaxLines: 2},
			input:       "a\nb\nc\nd\n",
			expected:    "A\nB\n",
			wantKept:    2,
			wantDropped: 0,
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
		{
			name:      "Line spanning chunks",
			config:    Config{ChunkSize: 4},
			input:     "a long line crossing many chunks\nshort\n",
			expected:  "A LONG LINE CROSSING MANY CHUNKS\nSHORT\n",
			wantKept:  2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestProcessor(tc.config)

			var out bytes.Buffer
			stats, err := p.ProcessLines(context.Background(), strings.NewReader(tc.input), &out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.String() != tc.expected {
				t.Errorf("expected output %q, got %q", tc.expected, out.String())
			}
			if stats.LinesKept != tc.wantKept {
				t.Errorf("expected %d kept lines, got %d", tc.wantKept, stats.LinesKept)
			}
			if stats.LinesDropped != tc.wantDropped {
				t.Errorf("expected %d dropped lines, got %d", tc.wantDropped, stats.LinesDropped)
			}
			if stats.BytesRead != int64(len(tc.input)) {
				t.Errorf("expected %d bytes read, got %d", len(tc.input), stats.BytesRead)
			}
		})
	}
}

func TestProcessLinesPropagatesReadError(t *testing.T) {
	p := newTestProcessor(Config{})
	readErr := errors.New("boom")

	var out bytes.Buffer
	_, err := p.ProcessLines(context.Background(), iotest.ErrReader(readErr), &out)
	if !errors.Is(err, readErr) {
		t.Errorf("expected read error to propagate, got %v", err)
	}
}
