package mcp_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docindex"
	dimcp "github.com/fwojciec/docindex/mcp"
	"github.com/fwojciec/docindex/mock"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []*docindex.Item {
	return []*docindex.Item{
		{ID: "1", Title: "Array Modifier", Content: "Repeats geometry.", Source: docindex.SourceBlender, Path: "https://docs.blender.org/array.html", Embedding: []float32{1, 0}},
		{ID: "2", Title: "Layer object", Content: "Base layer class.", Source: docindex.SourceAfterEffects, Path: "https://ae-scripting.docsforadobe.dev/layer/layer/", Embedding: []float32{0, 1}},
	}
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns ranked hits and formatted text", func(t *testing.T) {
		t.Parallel()

		items := testItems()
		var gotLimit int
		svc := &mock.SearchService{SearchFn: func(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
			gotLimit = limit
			return []docindex.SearchResult{{Item: items[0], Score: 0.9}}, nil
		}}
		s := dimcp.NewServer(svc, "test", nil)

		res, out, err := s.Search(context.Background(), nil, dimcp.SearchInput{Query: "array"})

		require.NoError(t, err)
		assert.Equal(t, docindex.DefaultSearchLimit, gotLimit)
		require.Len(t, out.Results, 1)
		assert.Equal(t, "Array Modifier", out.Results[0].Title)
		assert.Equal(t, "blender", out.Results[0].Source)
		assert.InDelta(t, 0.9, out.Results[0].Score, 1e-6)
		require.Len(t, res.Content, 1)
		assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "## Array Modifier (blender)")
	})

	t.Run("passes explicit limit", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		svc := &mock.SearchService{SearchFn: func(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
			gotLimit = limit
			return nil, nil
		}}
		s := dimcp.NewServer(svc, "test", nil)

		res, out, err := s.Search(context.Background(), nil, dimcp.SearchInput{Query: "array", Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, gotLimit)
		assert.NotNil(t, out.Results)
		assert.Empty(t, out.Results)
		assert.Equal(t, "No matching documentation found.", res.Content[0].(*mcp.TextContent).Text)
	})

	t.Run("reports domain error message", func(t *testing.T) {
		t.Parallel()

		svc := &mock.SearchService{SearchFn: func(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
			return nil, docindex.Errorf(docindex.ENOTLOADED, "no corpus loaded")
		}}
		s := dimcp.NewServer(svc, "test", nil)

		_, _, err := s.Search(context.Background(), nil, dimcp.SearchInput{Query: "array"})

		require.Error(t, err)
		assert.Equal(t, "no corpus loaded", err.Error())
	})
}

func TestServer_Load(t *testing.T) {
	t.Parallel()

	var gotPath string
	svc := &mock.SearchService{LoadFn: func(ctx context.Context, path string) (int, error) {
		gotPath = path
		return 42, nil
	}}
	s := dimcp.NewServer(svc, "test", nil)

	_, out, err := s.Load(context.Background(), nil, dimcp.LoadInput{Path: "/data/docs.json"})

	require.NoError(t, err)
	assert.Equal(t, 42, out.Count)
	assert.Equal(t, "/data/docs.json", gotPath)
}

func TestServer_ListAll(t *testing.T) {
	t.Parallel()

	svc := &mock.SearchService{AllFn: func() ([]*docindex.Item, error) {
		return testItems(), nil
	}}
	s := dimcp.NewServer(svc, "test", nil)

	t.Run("returns every document", func(t *testing.T) {
		t.Parallel()

		_, out, err := s.ListAll(context.Background(), nil, dimcp.ListInput{})

		require.NoError(t, err)
		require.Len(t, out.Documents, 2)
		assert.Equal(t, "1", out.Documents[0].ID)
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		_, out, err := s.ListAll(context.Background(), nil, dimcp.ListInput{Source: "afterEffects"})

		require.NoError(t, err)
		require.Len(t, out.Documents, 1)
		assert.Equal(t, "Layer object", out.Documents[0].Title)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		t.Parallel()

		_, _, err := s.ListAll(context.Background(), nil, dimcp.ListInput{Source: "maya"})

		assert.Error(t, err)
	})
}

func TestServer_Session(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &mock.SearchService{
		SearchFn: func(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
			return []docindex.SearchResult{{Item: testItems()[1], Score: 0.7}}, nil
		},
		LoadFn: func(ctx context.Context, path string) (int, error) {
			return 0, docindex.Errorf(docindex.ENOTFOUND, "corpus not found")
		},
		AllFn: func() ([]*docindex.Item, error) { return testItems(), nil },
	}
	s := dimcp.NewServer(svc, "test", nil)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	t.Run("lists tools", func(t *testing.T) {
		tools, err := cs.ListTools(ctx, nil)
		require.NoError(t, err)

		var names []string
		for _, tool := range tools.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, []string{dimcp.ToolSearch, dimcp.ToolLoad, dimcp.ToolListAll}, names)
	})

	t.Run("calls search tool", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{
			Name:      dimcp.ToolSearch,
			Arguments: map[string]any{"query": "layer", "limit": 3},
		})
		require.NoError(t, err)

		assert.False(t, res.IsError)
		require.NotEmpty(t, res.Content)
		assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "Layer object")
	})

	t.Run("tool failure is reported as tool error", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{
			Name:      dimcp.ToolLoad,
			Arguments: map[string]any{},
		})
		require.NoError(t, err)

		assert.True(t, res.IsError)
		assert.Equal(t, "corpus not found", res.Content[0].(*mcp.TextContent).Text)
	})
}
