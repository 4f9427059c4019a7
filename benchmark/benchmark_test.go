package benchmark

import (
	"fmt"
	"testing"

	"github.com/baditaflorin/go_user_registry/internal/adapters/normalizer"
	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// sink prevents the compiler from eliminating the benchmarked calls.
var sink string

func sampleItems(count int) []string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		switch i % 4 {
		case 0:
			items = append(items, fmt.Sprintf("plain item %d", i))
		case 1:
			items = append(items, "  padded item  ")
		case 2:
			items = append(items, "   ")
		default:
			items = append(items, fmt.Sprintf("héllo wörld %d", i))
		}
	}
	return items
}

func benchmarkItemNormalizer(b *testing.B, n ports.ItemNormalizer) {
	items := sampleItems(256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range items {
			out, keep := n.NormalizeItem(item)
			if keep {
				sink = out
			}
		}
	}
}

func BenchmarkDefaultItemNormalizer(b *testing.B) {
	benchmarkItemNormalizer(b, normalizer.NewDefaultItemNormalizer())
}

func BenchmarkOptimizedItemNormalizer(b *testing.B) {
	benchmarkItemNormalizer(b, normalizer.NewOptimizedItemNormalizer())
}

func BenchmarkOptimizedItemNormalizerASCIIOnly(b *testing.B) {
	n := normalizer.NewOptimizedItemNormalizer()
	items := make([]string, 256)
	for i := range items {
		items[i] = fmt.Sprintf("ascii only item %d", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range items {
			_, _ = n.NormalizeItem(item)
		}
	}
}
