package zipcomp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/flate"

	"github.com/meigma/sfxzip/internal/zipwire"
)

// Decompress reverses the wire form of an entry payload for one of the
// supported methods. Stored payloads are returned as a copy.
//
// Reading is capped at expect+1 bytes so a stream that inflates past its
// declared size fails without being materialized; the caller still
// verifies that the result length equals the declared size exactly.
func Decompress(method uint16, payload []byte, expect uint32) ([]byte, error) {
	var r io.Reader
	switch method {
	case zipwire.MethodStore:
		return bytes.Clone(payload), nil
	case zipwire.MethodDeflate:
		fr := flate.NewReader(bytes.NewReader(payload))
		defer fr.Close()
		r = fr
	case zipwire.MethodBzip2:
		br, err := bzip2.NewReader(bytes.NewReader(payload), nil)
		if err != nil {
			return nil, fmt.Errorf("bzip2: %w", err)
		}
		defer br.Close()
		r = br
	default:
		return nil, fmt.Errorf("unsupported compression method %d", method)
	}

	out, err := io.ReadAll(io.LimitReader(r, int64(expect)+1))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return out, nil
}
