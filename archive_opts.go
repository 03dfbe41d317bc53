package sfxzip

import (
	"log/slog"
	"time"
)

// Option configures a new Archive.
type Option func(*Archive)

// WithSizeLimit caps per-entry content size, uncompressed and compressed.
// Zero or negative keeps [DefaultSizeLimit]. The limit applies to entries
// added after the Archive is constructed.
func WithSizeLimit(n int64) Option {
	return func(a *Archive) {
		if n > 0 {
			a.sizeLimit = n
		}
	}
}

// WithLogger sets the logger used for progress output. The default
// discards all logs.
func WithLogger(l *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = l
	}
}

// addConfig holds per-add overrides.
type addConfig struct {
	modTime    time.Time
	modTimeSet bool
	source     string
}

// AddOption configures a single Add call.
type AddOption func(*addConfig)

// AddWithModTime overrides the modification time recorded for the entry.
// Without it the source's own time is used when available, else the
// current time.
func AddWithModTime(t time.Time) AddOption {
	return func(cfg *addConfig) {
		cfg.modTime = t
		cfg.modTimeSet = true
	}
}

// AddWithSource overrides the provenance label used in diagnostics and
// duplicate detection.
func AddWithSource(s string) AddOption {
	return func(cfg *addConfig) {
		cfg.source = s
	}
}
