package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/crawl"
	"github.com/fwojciec/docindex/embed"
	"github.com/fwojciec/docindex/extract"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/gemini"
	"github.com/fwojciec/docindex/goquery"
	dihttp "github.com/fwojciec/docindex/http"
	"github.com/fwojciec/docindex/openai"
	"github.com/fwojciec/docindex/rod"
	"github.com/fwojciec/docindex/search"
	dislog "github.com/fwojciec/docindex/slog"
	"github.com/fwojciec/docindex/sqlite"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the corpus when --store=sqlite.
	DB *sqlite.DB

	// Fetcher used by the crawl command, closed by Close.
	Fetcher docindex.Fetcher

	// Embedders memoizes one provider client per API key.
	Embedders *embed.Cache
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Fetcher != nil {
		err = m.Fetcher.Close()
	}
	if m.DB != nil {
		if cerr := m.DB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docindex"),
		kong.Description("Build and search the Blender and After Effects documentation corpus"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docindex --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger
	deps.Version = version

	if cmd == "sources" {
		return kongCtx.Run(deps)
	}

	if cli.APIKey == "" {
		fmt.Fprintln(stderr, "Hint: pass --api-key or set DOCINDEX_API_KEY")
		return docindex.Errorf(docindex.EINVALID, "API key required")
	}

	store, err := m.openStore(cli, cmd)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Store = dislog.NewLoggingCorpusStore(store, logger)

	if m.Embedders == nil {
		m.Embedders = embed.NewCache(m.providerFactory(ctx, cli, logger))
	}
	provider, err := m.Embedders.Get(cli.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create %s embedder: %w", cli.Provider, err)
	}
	client := embed.NewClient(provider)
	client.Logger = logger
	deps.Embedder = client

	switch cmd {
	case "crawl", "local":
		// Token statistics are best effort.
		if cli.CountTokens {
			if tc, err := gemini.NewTokenCounter(gemini.TokenizerModel); err != nil {
				logger.Warn("token counter unavailable", "err", err)
			} else {
				deps.Tokens = tc
			}
		}
	case "search", "serve":
		engine := search.NewEngine(client, deps.Store)
		engine.OpenStore = func(path string) docindex.CorpusStore {
			return dislog.NewLoggingCorpusStore(openCorpusPath(path), logger)
		}
		engine.LazyLoad = cmd == "serve"
		engine.Logger = logger
		deps.Search = dislog.NewLoggingSearchService(engine, logger)
	}

	switch cmd {
	case "crawl":
		if err := m.wireCrawl(cli, deps); err != nil {
			return err
		}
	case "local":
		deps.Extractor = dislog.NewLoggingPageExtractor(newPipeline(cli.Local.MinLength, localSkipPolicy(cli.Local.AllDirs)), logger)
	}

	return kongCtx.Run(deps)
}

// openStore opens the corpus store selected by --store in --dir.
func (m *Main) openStore(cli *CLI, cmd string) (docindex.CorpusStore, error) {
	if cmd == "crawl" || cmd == "local" || cli.Store == storeSQLite {
		if err := os.MkdirAll(cli.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create corpus directory %q: %w", cli.Dir, err)
		}
	}

	if cli.Store != storeSQLite {
		return fs.NewCorpusStore(cli.Dir), nil
	}

	path := filepath.Join(cli.Dir, sqliteFile)
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewCorpusStore(m.DB), nil
}

// providerFactory returns a factory building the embedding provider
// selected by --provider for an API key. Provider calls are logged
// individually, below the retry loop.
func (m *Main) providerFactory(ctx context.Context, cli *CLI, logger *slog.Logger) embed.Factory {
	return func(apiKey string) (docindex.Embedder, error) {
		var provider docindex.Embedder
		switch cli.Provider {
		case providerGemini:
			client, err := gemini.NewClient(ctx, apiKey, cli.BaseURL)
			if err != nil {
				return nil, err
			}
			provider = gemini.NewEmbedder(client, cli.Model, gemini.DefaultDimensions)
		default:
			e, err := openai.NewEmbedder(openai.Config{
				APIKey:  apiKey,
				BaseURL: cli.BaseURL,
				Model:   cli.Model,
			})
			if err != nil {
				return nil, err
			}
			provider = e
		}
		return dislog.NewLoggingEmbedder(provider, logger), nil
	}
}

// wireCrawl builds the crawler and the fetcher it uses.
func (m *Main) wireCrawl(cli *CLI, deps *Dependencies) error {
	logger := deps.Logger
	c := &cli.Crawl

	if c.Render {
		fetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(c.Timeout),
			rod.WithUserAgent(dihttp.DefaultUserAgent),
			rod.WithManagerOptions(rod.WithLogger(logger)),
		)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Fetcher = fetcher
	} else {
		m.Fetcher = dihttp.NewFetcher(dihttp.WithTimeout(c.Timeout))
	}

	detector := goquery.NewDetector()
	registry := goquery.NewDefaultRegistry(detector)

	deps.Crawler = &crawl.Crawler{
		Fetcher:       dislog.NewLoggingFetcher(m.Fetcher, logger),
		Extractor:     dislog.NewLoggingPageExtractor(newPipeline(c.MinLength, docindex.DefaultSkipPolicy()), logger),
		LinkSelectors: dislog.NewLoggingRegistry(registry, detector, logger),
		RateLimiter:   crawl.NewDomainLimiter(c.Delay),
		Concurrency:   c.Concurrency,
		MaxPages:      c.MaxPages,
		MaxDepth:      c.MaxDepth,
		MaxErrors:     c.MaxErrors,
	}
	if c.Sitemap {
		deps.Sitemaps = dislog.NewLoggingSitemapService(dihttp.NewSitemapService(nil), logger)
	}
	return nil
}

func newPipeline(minLength int, skip *docindex.SkipPolicy) *extract.Pipeline {
	p := extract.NewPipeline(skip)
	if minLength > 0 {
		p.MinContentLength = minLength
	}
	return p
}

// openCorpusPath returns a store for an explicit corpus location: a JSON
// file, or a directory holding one.
func openCorpusPath(path string) docindex.CorpusStore {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return fs.NewCorpusFile(path)
	}
	return fs.NewCorpusStore(path)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
