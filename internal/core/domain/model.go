package domain

import "time"

// User is the record stored for one username. Records are created on a
// successful registration and never mutated or deleted afterwards.
type User struct {
	Email     string
	CreatedAt time.Time
}

// NormalizeResult holds the outcome of a batch normalization.
type NormalizeResult struct {
	// Items are the kept, upper-cased elements in their original order.
	Items []string
	// Taken is the number of source elements considered after the cap.
	Taken int
	// Dropped is the number of blank elements removed.
	Dropped int
	// MaxItems is the cap that was applied.
	MaxItems int
}

// StreamResult holds the outcome of a streaming normalization.
type StreamResult struct {
	Name           string
	LinesKept      int
	LinesDropped   int
	BytesProcessed int64
	ProcessingTime time.Duration
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}
