package sfxzip

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/sfxzip/internal/zipwire"
)

// Build serializes the archive: the optional header bytes, each entry's
// local file header and compressed payload in insertion order, the
// central directory, and the end record with the trailer comment.
//
// Build is a pure function of the entries and options; it may be called
// repeatedly with different options on the same Archive. The only state
// it touches is each entry's policy-keyed compression memo, so rebuilding
// with an unchanged policy does not recompress.
//
// Central directory offsets are relative to offsetBase, for archives
// whose true prefix is written by a separate process (see
// [BuildWithOffsetBase]).
func (a *Archive) Build(ctx context.Context, opts ...BuildOption) ([]byte, error) {
	cfg := buildConfig{compression: CompressionDefault, concurrency: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.compression.Valid() {
		return nil, fmt.Errorf("sfxzip: invalid compression policy %d", cfg.compression)
	}
	if len(cfg.comment) > math.MaxUint16 {
		return nil, fmt.Errorf("sfxzip: trailer comment too long (%d bytes)", len(cfg.comment))
	}
	if len(a.entries) > math.MaxUint16 {
		return nil, fmt.Errorf("sfxzip: too many entries (%d)", len(a.entries))
	}

	a.log().Info("building archive",
		"entries", len(a.entries),
		"compression", cfg.compression.String(),
		"header", len(cfg.header),
	)

	if err := a.compressEntries(ctx, &cfg); err != nil {
		return nil, err
	}

	out := append([]byte(nil), cfg.header...)
	var central []byte

	for _, e := range a.entries {
		offset := cfg.offsetBase + int64(len(out))
		if offset > math.MaxUint32 {
			return nil, fmt.Errorf("sfxzip: %s: offset exceeds 32-bit range", e.name)
		}
		hdr := zipwire.FileHeader{
			Name:             e.name,
			MinVersion:       e.form.MinVersion,
			Flags:            (e.form.Flags << 1) & 0x06,
			Method:           e.form.Method,
			ModTime:          zipwire.DosDateTime(e.modTime),
			CRC32:            e.crc,
			CompressedSize:   uint32(len(e.form.Bytes)),
			UncompressedSize: uint32(len(e.content)),
			Offset:           uint32(offset),
		}
		out = hdr.AppendLocal(out)
		out = append(out, e.form.Bytes...)
		central = hdr.AppendCentral(central)
		a.log().Debug("wrote entry",
			"name", e.name,
			"method", hdr.Method,
			"compressed", hdr.CompressedSize,
			"size", hdr.UncompressedSize,
		)
	}

	centralOffset := cfg.offsetBase + int64(len(out))
	if centralOffset > math.MaxUint32 {
		return nil, fmt.Errorf("sfxzip: central directory offset exceeds 32-bit range")
	}
	out = append(out, central...)
	end := zipwire.EndRecord{
		Entries:       uint16(len(a.entries)),
		CentralSize:   uint32(len(central)),
		CentralOffset: uint32(centralOffset),
		Comment:       cfg.comment,
	}
	return end.Append(out), nil
}

// compressEntries runs the policy engine over every entry. With
// concurrency above one, entries compress in parallel under a bounded
// errgroup; emission stays sequential in insertion order either way, since
// central directory offsets depend on it.
func (a *Archive) compressEntries(ctx context.Context, cfg *buildConfig) error {
	if cfg.concurrency <= 1 {
		for _, e := range a.entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.compress(cfg.compression, a.sizeLimit); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for _, e := range a.entries {
		e := e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return e.compress(cfg.compression, a.sizeLimit)
		})
	}
	return g.Wait()
}
