package sfxzip

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/meigma/sfxzip/internal/zipcomp"
	"github.com/meigma/sfxzip/internal/zipwire"
)

// Extract parses archive as a sequence of ZIP local file records and
// decompresses every entry into an in-memory name-to-content map.
//
// This is the run-time counterpart of [Archive.Build], the parse a
// launcher stub performs against its own embedded archive bytes. It
// trusts only local headers: parsing stops at the first central directory
// or end record signature and everything after it is ignored. The archive
// must start directly at the first local header; any launcher prefix has
// to be stripped by the caller.
//
// Any malformed or unsupported record is fatal; there is no partial
// result. A truncated archive never yields a partially populated map.
func Extract(archive []byte, opts ...ExtractOption) (map[string][]byte, error) {
	cfg := extractConfig{sizeLimit: DefaultSizeLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	files := make(map[string][]byte)
	pos := 0
	for {
		if len(archive)-pos < 4 {
			return nil, fmt.Errorf("%w: malformed or empty archive", ErrMalformed)
		}
		switch sig := binary.LittleEndian.Uint32(archive[pos:]); sig {
		case zipwire.SigCentralDir, zipwire.SigEndCentral:
			return files, nil
		case zipwire.SigLocalFile:
		default:
			return nil, fmt.Errorf("%w: bad record signature 0x%08x", ErrMalformed, sig)
		}
		pos += 4

		if len(archive)-pos < zipwire.LocalHeaderLen-4 {
			return nil, fmt.Errorf("%w: truncated local header", ErrMalformed)
		}
		rec := zipwire.DecodeLocalFields(archive[pos : pos+zipwire.LocalHeaderLen-4])
		pos += zipwire.LocalHeaderLen - 4

		if rec.Flags&zipwire.FlagDeferredLengths != 0 {
			return nil, fmt.Errorf("%w: deferred length flag", ErrUnsupported)
		}
		if rec.CompressedSize == zipwire.Zip64SizeSentinel ||
			rec.UncompressedSize == zipwire.Zip64SizeSentinel {
			return nil, fmt.Errorf("%w: zip64 size", ErrUnsupported)
		}
		if int64(rec.CompressedSize) > cfg.sizeLimit || int64(rec.UncompressedSize) > cfg.sizeLimit {
			return nil, fmt.Errorf("%w: entry exceeds size limit", ErrMalformed)
		}

		nameLen, extraLen := int(rec.NameLen), int(rec.ExtraLen)
		if len(archive)-pos < nameLen+extraLen {
			return nil, fmt.Errorf("%w: truncated entry name", ErrMalformed)
		}
		name := string(archive[pos : pos+nameLen])
		pos += nameLen + extraLen // extra field is discarded

		csize := int(rec.CompressedSize)
		if len(archive)-pos < csize {
			return nil, fmt.Errorf("%w: %s: truncated entry data", ErrMalformed, name)
		}
		payload := archive[pos : pos+csize]
		pos += csize

		switch rec.Method {
		case zipwire.MethodStore, zipwire.MethodDeflate, zipwire.MethodBzip2:
		default:
			return nil, fmt.Errorf("%w: %s: compression method %d", ErrUnsupported, name, rec.Method)
		}
		data, err := zipcomp.Decompress(rec.Method, payload, rec.UncompressedSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		if len(data) != int(rec.UncompressedSize) {
			return nil, fmt.Errorf("%w: %s: decompressed to %d bytes, header says %d",
				ErrMalformed, name, len(data), rec.UncompressedSize)
		}
		if sum := crc32.ChecksumIEEE(data); sum != rec.CRC32 {
			return nil, fmt.Errorf("%w: %s: CRC mismatch", ErrMalformed, name)
		}
		files[name] = data
	}
}
