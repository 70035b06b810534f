package main

import (
	"github.com/fwojciec/docindex/mcp"
)

// Run executes the serve command. It blocks until the client disconnects or
// the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Preload {
		n, err := deps.Search.Load(deps.Ctx, "")
		if err != nil {
			return err
		}
		deps.Logger.Info("corpus preloaded", "items", n)
	}

	server := mcp.NewServer(deps.Search, deps.Version, deps.Logger)
	return server.Run(deps.Ctx)
}
