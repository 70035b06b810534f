package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/fs"
)

// Run executes the local command.
func (c *LocalCmd) Run(deps *Dependencies) error {
	source, err := docindex.ParseSource(c.Source)
	if err != nil {
		return err
	}
	exclude, err := parseSources(c.Exclude)
	if err != nil {
		return err
	}
	if slices.Contains(exclude, source) {
		return docindex.Errorf(docindex.EINVALID, "source %s is both indexed and excluded", source)
	}
	ignore, err := docindex.NewURLFilter(c.Ignore...)
	if err != nil {
		return err
	}

	builder := newBuilder(deps, source, c.ChunkSize, exclude)
	scanner := &fs.Scanner{
		Root:      c.Root,
		Extractor: deps.Extractor,
		MaxPages:  c.MaxPages,
		Exclude:   ignore,
		OnError: func(locator string, err error) {
			deps.Logger.Warn("page failed", "path", locator, "err", err)
		},
	}

	result, err := scanner.Scan(deps.Ctx, builder.Add)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	committed, err := builder.Commit(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d files processed, %d extracted, %d skipped, %d failed\n",
		source, result.Processed, result.Extracted, result.Skipped, result.Failed)
	printCommit(deps, source, builder.Stats(), committed)
	return nil
}
