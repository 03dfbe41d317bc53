// Package sfxzip packages named byte streams into a single self-contained
// ZIP archive, optionally prefixed with an executable launcher stub so the
// output is simultaneously a runnable program and a conformant archive.
//
// An [Archive] collects entries in insertion order; [Archive.Build]
// compresses each entry and serializes standard ZIP local file records, a
// central directory and an end record, restricted to the store, raw
// deflate and bzip2 methods. [Extract] is the matching run-time reader: it
// walks local records sequentially, ignoring the central directory, and
// returns the decoded name-to-content map. A launcher stub runs Extract
// against its own trailing archive bytes to recover the packaged entries.
//
// # Quick start
//
//	a := sfxzip.New()
//	if err := a.Add("main.pl", sfxzip.FromPath("src/main.pl")); err != nil {
//	    return err
//	}
//	data, err := a.Build(ctx,
//	    sfxzip.BuildWithHeader(stub),
//	    sfxzip.BuildWithTrailerComment([]byte("v1")),
//	)
//
// Everything is held in memory: entries are fully read at Add time and the
// whole archive is decoded up front by Extract. The design targets
// packaging program sources and assets, not bulk data; entry sizes are
// bounded (default 64 MiB).
package sfxzip
