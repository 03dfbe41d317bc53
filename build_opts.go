package sfxzip

// buildConfig holds configuration for one Build call.
type buildConfig struct {
	compression Compression
	header      []byte
	offsetBase  int64
	comment     []byte
	concurrency int
}

// BuildOption configures a single Build call.
type BuildOption func(*buildConfig)

// BuildWithCompression sets the compression policy. The default is
// maximum deflate; the compressor still falls back to store per entry
// when compression does not shrink the content.
func BuildWithCompression(c Compression) BuildOption {
	return func(cfg *buildConfig) {
		cfg.compression = c
	}
}

// BuildWithHeader prepends raw bytes to the output, typically an
// executable launcher stub. Central directory offsets account for the
// header automatically.
func BuildWithHeader(header []byte) BuildOption {
	return func(cfg *buildConfig) {
		cfg.header = header
	}
}

// BuildWithOffsetBase adds base to every recorded offset, for archives
// whose prefix is written by a separate process and therefore does not
// appear in Build's own output.
func BuildWithOffsetBase(base int64) BuildOption {
	return func(cfg *buildConfig) {
		if base > 0 {
			cfg.offsetBase = base
		}
	}
}

// BuildWithTrailerComment appends comment bytes after the end record.
// The comment must fit the record's 16-bit length field (65535 bytes).
func BuildWithTrailerComment(comment []byte) BuildOption {
	return func(cfg *buildConfig) {
		cfg.comment = comment
	}
}

// BuildWithConcurrency compresses up to n entries in parallel. Emission
// order is unaffected. Values below two keep compression serial.
func BuildWithConcurrency(n int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.concurrency = n
	}
}
