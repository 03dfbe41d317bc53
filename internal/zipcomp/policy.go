// Package zipcomp implements the compression side of sfxzip archives:
// the policy that picks a ZIP method for entry content, the encoders for
// raw deflate and bzip2, and the matching decoders used by the reader.
package zipcomp

import "strconv"

// Policy selects how entry content is compressed. Zero stores content
// unchanged, 1 through 9 run raw deflate at that level, and PolicyBzip2
// runs the block-sort compressor (ZIP method 12).
type Policy int

const (
	// PolicyStore writes content uncompressed (ZIP method 0).
	PolicyStore Policy = 0

	// PolicyDefault is maximum deflate.
	PolicyDefault Policy = 9

	// PolicyBzip2 selects the bzip2 block-sort compressor.
	PolicyBzip2 Policy = 10
)

// Valid reports whether p names a supported policy.
func (p Policy) Valid() bool {
	return p >= PolicyStore && p <= PolicyBzip2
}

func (p Policy) String() string {
	switch {
	case p == PolicyStore:
		return "store"
	case p == PolicyBzip2:
		return "bzip2"
	case p.Valid():
		return "deflate-" + strconv.Itoa(int(p))
	default:
		return "invalid"
	}
}
