// Command sfxzip packs named files into a single ZIP archive, optionally
// prefixed with an executable launcher stub, and can list the entries of
// an existing archive by replaying the run-time reader over it.
//
// Packing:
//
//	sfxzip -o app.zip [-c level | -bzip2] [-stub stub.sh] [-comment s] file...
//
// Listing:
//
//	sfxzip -list [-skip n] app.zip
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/meigma/sfxzip"
)

type config struct {
	out     string
	level   int
	bzip2   bool
	stub    string
	comment string
	limit   int64
	list    bool
	skip    int
	verbose bool
}

func main() {
	cfg := parseFlags()

	var err error
	if cfg.list {
		err = runList(cfg, flag.Args())
	} else {
		err = runPack(cfg, flag.Args())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "sfxzip:", err)
		os.Exit(1)
	}
}

func parseFlags() *config {
	cfg := &config{}
	flag.StringVar(&cfg.out, "o", "", "output file (default stdout)")
	flag.IntVar(&cfg.level, "c", 9, "deflate level 1-9, or 0 to store")
	flag.BoolVar(&cfg.bzip2, "bzip2", false, "compress with bzip2 instead of deflate")
	flag.StringVar(&cfg.stub, "stub", "", "launcher stub file to prepend")
	flag.StringVar(&cfg.comment, "comment", "", "trailer comment")
	flag.Int64Var(&cfg.limit, "limit", 0, "per-entry size limit in bytes")
	flag.BoolVar(&cfg.list, "list", false, "list entries of an existing archive")
	flag.IntVar(&cfg.skip, "skip", 0, "bytes of prefix to skip before the archive (list mode)")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging to stderr")
	flag.Parse()
	return cfg
}

func logger(cfg *config) *slog.Logger {
	if !cfg.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func runPack(cfg *config, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("no input files")
	}

	opts := []sfxzip.Option{}
	if cfg.limit > 0 {
		opts = append(opts, sfxzip.WithSizeLimit(cfg.limit))
	}
	if l := logger(cfg); l != nil {
		opts = append(opts, sfxzip.WithLogger(l))
	}
	a := sfxzip.New(opts...)

	for _, path := range files {
		name := filepath.ToSlash(filepath.Clean(path))
		if err := a.Add(name, sfxzip.FromPath(path)); err != nil {
			return err
		}
	}

	compression := sfxzip.Compression(cfg.level)
	if cfg.bzip2 {
		compression = sfxzip.CompressionBzip2
	}
	buildOpts := []sfxzip.BuildOption{sfxzip.BuildWithCompression(compression)}
	if cfg.comment != "" {
		buildOpts = append(buildOpts, sfxzip.BuildWithTrailerComment([]byte(cfg.comment)))
	}
	var stub []byte
	if cfg.stub != "" {
		var err error
		stub, err = os.ReadFile(cfg.stub)
		if err != nil {
			return fmt.Errorf("read stub: %w", err)
		}
		buildOpts = append(buildOpts, sfxzip.BuildWithHeader(stub))
	}

	data, err := a.Build(context.Background(), buildOpts...)
	if err != nil {
		return err
	}

	if cfg.out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	perm := os.FileMode(0o644)
	if len(stub) > 0 {
		perm = 0o755
	}
	return os.WriteFile(cfg.out, data, perm)
}

func runList(cfg *config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("list mode takes exactly one archive")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if cfg.skip < 0 || cfg.skip > len(data) {
		return fmt.Errorf("skip %d out of range", cfg.skip)
	}

	var opts []sfxzip.ExtractOption
	if cfg.limit > 0 {
		opts = append(opts, sfxzip.ExtractWithSizeLimit(cfg.limit))
	}
	files, err := sfxzip.Extract(data[cfg.skip:], opts...)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("%10d  %s\n", len(files[name]), name)
	}
	return nil
}
