package sfxzip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/meigma/sfxzip/internal/zipcomp"
)

// Compression selects how Build compresses entry content.
// [CompressionStore] writes content unchanged, values 1 through 9 run raw
// deflate at that level, and [CompressionBzip2] runs the block-sort
// compressor. The default is maximum deflate.
type Compression = zipcomp.Policy

// Supported compression policies. Deflate levels are the integers 1-9.
const (
	CompressionStore   = zipcomp.PolicyStore
	CompressionDefault = zipcomp.PolicyDefault
	CompressionBzip2   = zipcomp.PolicyBzip2
)

// DefaultSizeLimit bounds per-entry content, uncompressed and compressed.
// Archives are decoded entirely in memory at run time, so the limit is
// deliberately modest.
const DefaultSizeLimit int64 = 64 << 20

// Archive accumulates named entries and serializes them into a ZIP byte
// buffer. Entries are kept in insertion order, which is the serialization
// order; names must be unique.
//
// An Archive is not safe for concurrent use. Build itself may compress
// entries in parallel, see [BuildWithConcurrency].
type Archive struct {
	entries   []*Entry
	index     map[string]*Entry
	sizeLimit int64
	logger    *slog.Logger
}

// New creates an empty Archive.
func New(opts ...Option) *Archive {
	a := &Archive{
		index:     make(map[string]*Entry),
		sizeLimit: DefaultSizeLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.logger
}

// Add resolves src and appends an entry named name.
//
// The name is trusted as given: uniqueness is enforced here, but path
// canonicalization is the caller's job. Adding a name that is already
// present succeeds as a no-op when the new source label matches the
// existing entry's, and fails with [ErrDuplicateName] otherwise.
//
// At most sizeLimit+1 bytes are read from the source; content larger than
// the configured limit fails with [ErrTooLarge] before compression.
func (a *Archive) Add(name string, src ContentSource, opts ...AddOption) error {
	if name == "" {
		return errors.New("sfxzip: empty entry name")
	}
	if len(name) > math.MaxUint16 {
		return fmt.Errorf("sfxzip: entry name too long (%d bytes)", len(name))
	}
	cfg := addConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	res, err := src.resolve(a.sizeLimit)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if cfg.source != "" {
		res.label = cfg.source
	}

	if existing, ok := a.index[name]; ok {
		if existing.source == res.label {
			a.log().Debug("skipped duplicate add", "name", name, "source", res.label)
			return nil
		}
		return fmt.Errorf("add %s from %s, already added from %s: %w",
			name, res.label, existing.source, ErrDuplicateName)
	}

	mod := time.Now()
	switch {
	case cfg.modTimeSet:
		mod = cfg.modTime
	case res.hasTime:
		mod = res.modTime
	}

	e := &Entry{
		name:    name,
		content: res.data,
		modTime: mod,
		source:  res.label,
	}
	a.entries = append(a.entries, e)
	a.index[name] = e
	a.log().Debug("added entry", "name", name, "size", len(res.data), "source", res.label)
	return nil
}

// Len returns the number of entries.
func (a *Archive) Len() int { return len(a.entries) }

// Contains reports whether an entry named name is present.
func (a *Archive) Contains(name string) bool {
	_, ok := a.index[name]
	return ok
}

// Entry returns the entry named name.
func (a *Archive) Entry(name string) (*Entry, bool) {
	e, ok := a.index[name]
	return e, ok
}

// Entries returns the entries in insertion order. The returned slice is a
// snapshot; mutating it does not affect the Archive.
func (a *Archive) Entries() []*Entry {
	return slices.Clone(a.entries)
}
