// Package mcp exposes the search service as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/docindex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolSearch  = "search_documentation"
	ToolLoad    = "load_documentation"
	ToolListAll = "get_all_documents"
)

// SearchInput is the input of the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"what to look up in the Blender and After Effects documentation"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, 5 if omitted"`
}

// SearchOutput is the structured result of the search tool.
type SearchOutput struct {
	Results []Hit `json:"results"`
}

// Hit is one ranked documentation item.
type Hit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Path    string  `json:"path"`
	Score   float32 `json:"score"`
}

// Document is an item without its embedding.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
	Path    string `json:"path"`
}

// LoadInput is the input of the load tool.
type LoadInput struct {
	Path string `json:"path,omitempty" jsonschema:"corpus file to load, the default corpus if omitted"`
}

// LoadOutput is the structured result of the load tool.
type LoadOutput struct {
	Count int `json:"count"`
}

// ListInput is the input of the list tool.
type ListInput struct {
	Source string `json:"source,omitempty" jsonschema:"only return documents of this source: blender or afterEffects"`
}

// ListOutput is the structured result of the list tool.
type ListOutput struct {
	Documents []Document `json:"documents"`
}

// Server serves documentation search over MCP.
type Server struct {
	search docindex.SearchService
	logger *slog.Logger
	server *mcp.Server
}

// NewServer creates a Server with all tools registered. A nil logger
// discards tool failures.
func NewServer(search docindex.SearchService, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		search: search,
		logger: logger,
		server: mcp.NewServer(&mcp.Implementation{Name: "docindex", Version: version}, nil),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolSearch,
		Description: "Search Blender and After Effects documentation by semantic similarity",
	}, s.Search)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolLoad,
		Description: "Load or reload the documentation corpus and return the number of items",
	}, s.Load)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListAll,
		Description: "Return every document of the loaded corpus",
	}, s.ListAll)

	return s
}

// Run serves over stdin and stdout until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over t.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

// Search handles the search tool.
func (s *Server) Search(ctx context.Context, req *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	limit := in.Limit
	if limit == 0 {
		limit = docindex.DefaultSearchLimit
	}

	results, err := s.search.Search(ctx, in.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, s.toolError(ToolSearch, err)
	}

	out := SearchOutput{Results: make([]Hit, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, Hit{
			ID:      r.Item.ID,
			Title:   r.Item.Title,
			Content: r.Item.Content,
			Source:  string(r.Item.Source),
			Path:    r.Item.Path,
			Score:   r.Score,
		})
	}

	text := docindex.FormatResults(results)
	if text == "" {
		text = "No matching documentation found."
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, out, nil
}

// Load handles the load tool.
func (s *Server) Load(ctx context.Context, req *mcp.CallToolRequest, in LoadInput) (*mcp.CallToolResult, LoadOutput, error) {
	n, err := s.search.Load(ctx, in.Path)
	if err != nil {
		return nil, LoadOutput{}, s.toolError(ToolLoad, err)
	}
	return nil, LoadOutput{Count: n}, nil
}

// ListAll handles the list tool.
func (s *Server) ListAll(ctx context.Context, req *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, ListOutput, error) {
	var source docindex.Source
	if in.Source != "" {
		var err error
		if source, err = docindex.ParseSource(in.Source); err != nil {
			return nil, ListOutput{}, s.toolError(ToolListAll, err)
		}
	}

	items, err := s.search.All()
	if err != nil {
		return nil, ListOutput{}, s.toolError(ToolListAll, err)
	}

	out := ListOutput{Documents: make([]Document, 0, len(items))}
	for _, item := range items {
		if source != "" && item.Source != source {
			continue
		}
		out.Documents = append(out.Documents, document(item))
	}
	return nil, out, nil
}

// toolError logs err and returns the message safe to show the client.
func (s *Server) toolError(tool string, err error) error {
	s.logger.Error("tool failed", "tool", tool, "code", docindex.ErrorCode(err), "err", err)
	return errors.New(docindex.ErrorMessage(err))
}

func document(item *docindex.Item) Document {
	return Document{
		ID:      item.ID,
		Title:   item.Title,
		Content: item.Content,
		Source:  string(item.Source),
		Path:    item.Path,
	}
}
