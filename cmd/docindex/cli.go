package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Version   string
	Store     docindex.CorpusStore
	Embedder  docindex.Embedder
	Tokens    docindex.TokenCounter
	Search    docindex.SearchService
	Crawler   *crawl.Crawler
	Sitemaps  docindex.SitemapService
	Extractor docindex.PageExtractor

	// Pace overrides the builder's interval between embedding calls.
	Pace time.Duration
}

const (
	providerOpenAI = "openai"
	providerGemini = "gemini"

	storeJSON   = "json"
	storeSQLite = "sqlite"

	sqliteFile = "docs.db"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	APIKey   string `name:"api-key" env:"DOCINDEX_API_KEY,OPENAI_API_KEY" help:"Embedding provider API key"`
	Provider string `enum:"openai,gemini" default:"openai" env:"DOCINDEX_PROVIDER" help:"Embedding provider (${enum})"`
	Model    string `help:"Embedding model, provider default if empty"`
	BaseURL  string `name:"base-url" env:"DOCINDEX_BASE_URL" help:"Override the provider API endpoint"`
	Dir      string `default:"embeddings" env:"DOCINDEX_DIR" type:"path" help:"Corpus directory"`
	Store    string `enum:"json,sqlite" default:"json" help:"Corpus storage format (${enum})"`
	Verbose  bool   `short:"v" help:"Log debug output"`

	CountTokens bool `name:"count-tokens" help:"Report token counts of built items; fetches the Gemini tokenizer on first use"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl documentation sites and rebuild their corpus partitions"`
	Local   LocalCmd   `cmd:"" help:"Index a local HTML build of the documentation"`
	Search  SearchCmd  `cmd:"" help:"Search the corpus"`
	Serve   ServeCmd   `cmd:"" help:"Serve the corpus as MCP tools over stdio"`
	Sources SourcesCmd `cmd:"" help:"List documentation sources and their seed URLs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Blender      bool          `negatable:"" default:"true" help:"Crawl the Blender manual"`
	AfterEffects bool          `name:"after-effects" negatable:"" default:"true" help:"Crawl the After Effects guides"`
	MaxPages     int           `short:"n" default:"100" help:"Maximum pages per source"`
	MaxDepth     int           `default:"4" help:"Maximum link hops from a seed"`
	MaxErrors    int           `default:"5" help:"Stop a source after this many failed pages"`
	Delay        time.Duration `default:"1s" help:"Minimum interval between requests to one host"`
	Timeout      time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Concurrency  int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	MinLength    int           `default:"100" help:"Minimum page content length in characters"`
	ChunkSize    int           `default:"8000" help:"Maximum item content length"`
	Render       bool          `help:"Render pages in headless Chrome"`
	Sitemap      bool          `help:"Add sitemap URLs under each seed to the seeds"`
	Ignore       []string      `short:"i" help:"Regex rejecting discovered URLs (repeatable)"`
	Exclude      []string      `help:"Source dropped from the merged corpus (repeatable)"`
}

// LocalCmd is the "local" subcommand.
type LocalCmd struct {
	Root      string   `arg:"" help:"Root of the HTML documentation build"`
	Source    string   `enum:"blender,afterEffects" default:"blender" help:"Source the pages belong to (${enum})"`
	MaxPages  int      `short:"n" default:"1000" help:"Maximum files to process"`
	ChunkSize int      `default:"8000" help:"Maximum item content length"`
	MinLength int      `default:"100" help:"Minimum page content length in characters"`
	AllDirs   bool     `name:"all-dirs" help:"Index every manual section, not only the essential ones"`
	Ignore    []string `short:"i" help:"Regex rejecting files by path relative to the root (repeatable)"`
	Exclude   []string `help:"Source dropped from the merged corpus (repeatable)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Limit  int    `short:"l" default:"5" help:"Maximum number of results"`
	Corpus string `help:"Corpus file or directory to search instead of --dir"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Preload bool `help:"Load the corpus before accepting requests"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
