package zipcomp

import (
	"bytes"
	"fmt"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/flate"

	"github.com/meigma/sfxzip/internal/zipwire"
)

// Form is the wire-ready result of compressing entry content.
type Form struct {
	Method     uint16
	MinVersion uint16
	Flags      uint16 // deflate level tier hint, cosmetic only
	Bytes      []byte
}

// Store returns the pass-through form for content.
func Store(content []byte) Form {
	return Form{
		Method:     zipwire.MethodStore,
		MinVersion: zipwire.VersionStore,
		Bytes:      content,
	}
}

// Compress produces the wire form for content under the given policy.
//
// Compressed output at least as large as the input is discarded and the
// content stored instead, so the result never carries compressed-format
// overhead for incompressible or tiny inputs: len(Bytes) <= len(content)
// always holds. An encoder failure indicates a broken codec, not bad
// input; callers treat it as fatal.
func Compress(content []byte, policy Policy) (Form, error) {
	switch {
	case policy == PolicyStore:
		return Store(content), nil

	case policy == PolicyBzip2:
		out, err := runBzip2(content)
		if err != nil {
			return Form{}, fmt.Errorf("bzip2: %w", err)
		}
		if len(out) >= len(content) {
			return Store(content), nil
		}
		return Form{
			Method:     zipwire.MethodBzip2,
			MinVersion: zipwire.VersionBzip2,
			Bytes:      out,
		}, nil

	case policy.Valid():
		out, err := runDeflate(content, int(policy))
		if err != nil {
			return Form{}, fmt.Errorf("deflate: %w", err)
		}
		if len(out) >= len(content) {
			return Store(content), nil
		}
		return Form{
			Method:     zipwire.MethodDeflate,
			MinVersion: zipwire.VersionDeflate,
			Flags:      levelFlags(int(policy)),
			Bytes:      out,
		}, nil

	default:
		return Form{}, fmt.Errorf("invalid compression policy %d", policy)
	}
}

// levelFlags maps a deflate level to the generic flag hint recorded in
// headers: 1 ("maximum") above level 7, 2 ("fast") at level 2 and below.
// Extractors ignore it.
func levelFlags(level int) uint16 {
	switch {
	case level > 7:
		return 1
	case level <= 2:
		return 2
	default:
		return 0
	}
}

// runDeflate compresses content as a raw deflate stream, without zlib or
// gzip framing.
func runDeflate(content []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func runBzip2(content []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, err
	}
	if _, err := bw.Write(content); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
