package sfxzip

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"
)

// ContentSource supplies entry content to [Archive.Add]. A source is
// resolved exactly once at Add time; the Archive never re-inspects it.
type ContentSource interface {
	resolve(limit int64) (resolved, error)
}

// resolved is the outcome of draining a ContentSource: the content bytes,
// the provenance label used for diagnostics and duplicate detection, and
// the source's modification time when it has one.
type resolved struct {
	data    []byte
	label   string
	modTime time.Time
	hasTime bool
}

// FromPath reads the file at path. The entry inherits the file's
// modification time unless overridden with [AddWithModTime].
func FromPath(path string) ContentSource { return pathSource(path) }

// FromReader drains r. If the concrete type exposes Stat (as *os.File
// does), the entry inherits its modification time and name; otherwise the
// current time and an opaque label are used.
func FromReader(r io.Reader) ContentSource { return readerSource{r: r} }

// FromBytes copies b.
func FromBytes(b []byte) ContentSource { return bytesSource(b) }

type pathSource string

func (p pathSource) resolve(limit int64) (resolved, error) {
	f, err := os.Open(string(p))
	if err != nil {
		return resolved{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	res, err := readBounded(f, limit)
	if err != nil {
		return resolved{}, err
	}
	res.label = string(p)
	if info, err := f.Stat(); err == nil {
		res.modTime, res.hasTime = info.ModTime(), true
	}
	return res, nil
}

type readerSource struct {
	r io.Reader
}

func (s readerSource) resolve(limit int64) (resolved, error) {
	res, err := readBounded(s.r, limit)
	if err != nil {
		return resolved{}, err
	}
	res.label = "(stream)"
	if n, ok := s.r.(interface{ Name() string }); ok {
		res.label = n.Name()
	}
	if st, ok := s.r.(interface{ Stat() (fs.FileInfo, error) }); ok {
		if info, err := st.Stat(); err == nil {
			res.modTime, res.hasTime = info.ModTime(), true
		}
	}
	return res, nil
}

type bytesSource []byte

func (b bytesSource) resolve(limit int64) (resolved, error) {
	if int64(len(b)) > limit {
		return resolved{}, ErrTooLarge
	}
	return resolved{data: slices.Clone(b), label: "(data)"}, nil
}

// readBounded reads at most limit+1 bytes so an over-limit source fails
// before it is fully materialized.
func readBounded(r io.Reader, limit int64) (resolved, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return resolved{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if int64(len(data)) > limit {
		return resolved{}, ErrTooLarge
	}
	return resolved{data: data}, nil
}
