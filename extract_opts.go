package sfxzip

// extractConfig holds configuration for one Extract call.
type extractConfig struct {
	sizeLimit int64
}

// ExtractOption configures a single Extract call.
type ExtractOption func(*extractConfig)

// ExtractWithSizeLimit caps the declared compressed and uncompressed size
// of each entry. Zero or negative keeps [DefaultSizeLimit].
func ExtractWithSizeLimit(n int64) ExtractOption {
	return func(cfg *extractConfig) {
		if n > 0 {
			cfg.sizeLimit = n
		}
	}
}
