package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// DefaultItemNormalizer implements the default per-element strategy:
// blank elements are dropped, everything else is upper-cased as-is,
// with inner whitespace preserved.
type DefaultItemNormalizer struct{}

// NewDefaultItemNormalizer creates a new default item normalizer.
func NewDefaultItemNormalizer() ports.ItemNormalizer {
	return &DefaultItemNormalizer{}
}

// NormalizeItem upper-cases item and reports whether it should be kept.
func (n *DefaultItemNormalizer) NormalizeItem(item string) (string, bool) {
	if strings.TrimSpace(item) == "" {
		return "", false
	}
	return strings.ToUpper(item), true
}
