package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	n, err := deps.Search.Load(deps.Ctx, c.Corpus)
	if err != nil {
		if docindex.ErrorCode(err) == docindex.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: build the corpus with 'docindex crawl' or 'docindex local'")
		}
		return err
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No matching documentation found in %d items.\n", n)
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. [%.3f] %s\n", i+1, r.Score, r.Item.Title)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprint(deps.Stdout, docindex.FormatResults(results))
	fmt.Fprintln(deps.Stdout)
	return nil
}
