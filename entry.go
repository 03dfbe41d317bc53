package sfxzip

import (
	"fmt"
	"hash/crc32"
	"time"

	"github.com/meigma/sfxzip/internal/zipcomp"
)

// Entry is one logical file to be archived: a name, fully materialized
// content bytes, a modification time, and a provenance label.
//
// Entries are created by [Archive.Add] and live as long as the owning
// Archive. The compressed form is computed during Build and memoized per
// compression policy.
type Entry struct {
	name    string
	content []byte
	modTime time.Time
	source  string

	// Compression memo, keyed by the last-used policy. A Build with a
	// different policy recomputes and replaces it.
	policy zipcomp.Policy
	form   *zipcomp.Form
	crc    uint32
}

// Name returns the entry's archive path.
func (e *Entry) Name() string { return e.name }

// Content returns the uncompressed content. The returned slice is the
// entry's backing store and must be treated as immutable.
func (e *Entry) Content() []byte { return e.content }

// ModTime returns the modification time recorded for the entry.
func (e *Entry) ModTime() time.Time { return e.modTime }

// Source returns the provenance label, typically the originating file
// path. It is diagnostic only and never serialized.
func (e *Entry) Source() string { return e.source }

// Size returns the uncompressed content length.
func (e *Entry) Size() int { return len(e.content) }

// EntryInfo reports the wire metadata of an entry's compressed form. It
// is what launcher templating layers need for verification: the method
// actually chosen (which may be store after the shrink check), the
// version and flag fields, and the sizes and CRC recorded in headers.
type EntryInfo struct {
	Method           uint16
	MinVersion       uint16
	FlagBits         uint16
	CompressedSize   int
	UncompressedSize int
	CRC32            uint32
}

// Info returns the wire metadata from the entry's cached compressed form.
// ok is false until a Build has compressed the entry.
func (e *Entry) Info() (info EntryInfo, ok bool) {
	if e.form == nil {
		return EntryInfo{}, false
	}
	return EntryInfo{
		Method:           e.form.Method,
		MinVersion:       e.form.MinVersion,
		FlagBits:         e.form.Flags,
		CompressedSize:   len(e.form.Bytes),
		UncompressedSize: len(e.content),
		CRC32:            e.crc,
	}, true
}

// compress runs the policy engine over the entry content, memoizing the
// result. Calling again with the cached policy is a no-op.
func (e *Entry) compress(policy Compression, limit int64) error {
	if e.form != nil && e.policy == policy {
		return nil
	}
	form, err := zipcomp.Compress(e.content, policy)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCompression, e.name, err)
	}
	if int64(len(e.content)) > limit || int64(len(form.Bytes)) > limit {
		return fmt.Errorf("%w: %s", ErrTooLarge, e.name)
	}
	e.policy = policy
	e.form = &form
	e.crc = crc32.ChecksumIEEE(e.content)
	return nil
}
