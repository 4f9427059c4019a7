package ports

// ItemNormalizer defines the per-element normalization strategy.
type ItemNormalizer interface {
	// NormalizeItem returns the normalized form of item and whether the
	// item should be kept. Elements that are empty or all-whitespace
	// report false.
	NormalizeItem(item string) (string, bool)
}
