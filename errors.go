package sfxzip

import "errors"

// Sentinel errors returned by Archive operations.
var (
	// ErrDuplicateName is returned when an entry name is already present
	// with a different source.
	ErrDuplicateName = errors.New("sfxzip: duplicate entry name")

	// ErrTooLarge is returned when entry content exceeds the size limit,
	// before or after compression.
	ErrTooLarge = errors.New("sfxzip: entry too large")

	// ErrUnreadable is returned when a content source cannot be opened or
	// read.
	ErrUnreadable = errors.New("sfxzip: unreadable source")

	// ErrCompression is returned when a compressor fails. It indicates a
	// broken codec rather than bad input.
	ErrCompression = errors.New("sfxzip: compression failure")
)

// Sentinel errors returned by Extract.
var (
	// ErrMalformed is returned when archive bytes do not parse: bad
	// signature, truncation, size or CRC disagreement.
	ErrMalformed = errors.New("sfxzip: malformed archive")

	// ErrUnsupported is returned when an archive uses a ZIP feature
	// outside the supported subset: zip64 sizes, deferred lengths, or a
	// compression method other than store, deflate and bzip2.
	ErrUnsupported = errors.New("sfxzip: unsupported archive feature")
)
