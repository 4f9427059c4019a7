package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_user_registry/internal/pool"
	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// OptimizedItemNormalizer implements the per-element strategy with a
// pre-computed ASCII decision table and pooled buffers.
type OptimizedItemNormalizer struct {
	// Pre-computed upper-case mapping for ASCII characters (0-127)
	asciiUpper [128]byte
	// Pre-computed whitespace classification for ASCII characters
	asciiSpace [128]bool

	bytePool    *pool.BufferPool
	builderPool *pool.StringBuilderPool
}

// NewOptimizedItemNormalizer creates a new optimized item normalizer.
func NewOptimizedItemNormalizer() ports.ItemNormalizer {
	n := &OptimizedItemNormalizer{
		bytePool:    pool.NewBufferPool(4096),
		builderPool: pool.NewStringBuilderPool(),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		b := byte(i)
		if b >= 'a' && b <= 'z' {
			n.asciiUpper[i] = b - ('a' - 'A')
		} else {
			n.asciiUpper[i] = b
		}
		n.asciiSpace[i] = unicode.IsSpace(r)
	}

	return n
}

// NormalizeItem upper-cases item using the ASCII fast path when possible.
// Blank elements report false.
func (n *OptimizedItemNormalizer) NormalizeItem(item string) (string, bool) {
	if len(item) == 0 {
		return "", false
	}

	asciiOnly := true
	for i := 0; i < len(item); i++ {
		if item[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	if asciiOnly {
		return n.normalizeASCII(item)
	}
	return n.normalizeUnicode(item)
}

// normalizeASCII is the fast path: byte-wise table lookups, no rune decoding.
func (n *OptimizedItemNormalizer) normalizeASCII(item string) (string, bool) {
	blank := true
	for i := 0; i < len(item); i++ {
		if !n.asciiSpace[item[i]] {
			blank = false
			break
		}
	}
	if blank {
		return "", false
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(item) {
		*buffer = make([]byte, 0, len(item))
	}
	*buffer = (*buffer)[:0]

	for i := 0; i < len(item); i++ {
		*buffer = append(*buffer, n.asciiUpper[item[i]])
	}
	return string(*buffer), true
}

// normalizeUnicode handles mixed ASCII/Unicode elements rune by rune.
func (n *OptimizedItemNormalizer) normalizeUnicode(item string) (string, bool) {
	blank := true
	for _, r := range item {
		if !unicode.IsSpace(r) {
			blank = false
			break
		}
	}
	if blank {
		return "", false
	}

	sb := n.builderPool.Get()
	defer n.builderPool.Put(sb)
	sb.Grow(len(item))

	for _, r := range item {
		if r < 128 {
			sb.WriteByte(n.asciiUpper[r])
		} else {
			sb.WriteRune(unicode.ToUpper(r))
		}
	}
	return sb.String(), true
}

// ItemNormalizerType selects an item normalizer implementation.
type ItemNormalizerType int

const (
	// DefaultItemNormalizerType is the portable strings-based normalizer
	DefaultItemNormalizerType ItemNormalizerType = iota
	// OptimizedItemNormalizerType uses ASCII tables and buffer pooling
	OptimizedItemNormalizerType
)

// Factory creates item normalizers.
type Factory struct{}

// NewFactory creates a new item normalizer factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns an item normalizer of the specified type.
func (f *Factory) Create(t ItemNormalizerType) ports.ItemNormalizer {
	switch t {
	case OptimizedItemNormalizerType:
		return NewOptimizedItemNormalizer()
	default:
		return NewDefaultItemNormalizer()
	}
}
