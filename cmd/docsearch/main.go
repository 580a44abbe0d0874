// Command docsearch drives the documentation search dropdown from a terminal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/jonwraymond/docsearch/catalog"
	"github.com/jonwraymond/docsearch/config"
	"github.com/jonwraymond/docsearch/dropdown"
	"github.com/jonwraymond/docsearch/logging"
	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/widget"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "docsearch",
		Usage: "Search the documentation catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to a YAML document catalog (overrides config)",
			},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "Maximum results per query, 0 for unlimited (overrides config)",
			},
			&cli.Float64Flag{
				Name:  "min-score",
				Usage: "Drop results scoring below this value (overrides config)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Print the results for a search",
				ArgsUsage: "<terms...>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "html",
						Usage: "Print the dropdown markup instead of title and URL",
					},
				},
			},
			{
				Name:   "catalog",
				Usage:  "List the documents in the catalog",
				Action: catalogCommand,
			},
			{
				Name:   "interactive",
				Usage:  "Drive the dropdown from standard input",
				Action: interactiveCommand,
			},
		},
	}
}

// setup loads the configuration, applies flag overrides, and configures
// logging.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("catalog") {
		cfg.Catalog.Path = c.String("catalog")
	}
	if c.IsSet("max-results") {
		cfg.Search.MaxResults = c.Int("max-results")
	}
	if c.IsSet("min-score") {
		cfg.Search.MinScore = c.Float64("min-score")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func loadedConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func queryCommand(c *cli.Context) error {
	terms := strings.Join(c.Args().Slice(), " ")
	if terms == "" {
		return fmt.Errorf("query terms are required")
	}

	w, err := widget.FromConfig(loadedConfig(c), nil, slog.Default())
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Open(c.Context); err != nil {
		return fmt.Errorf("opening search: %w", err)
	}
	w.Type(terms)

	out := c.App.Writer
	if c.Bool("html") {
		return w.Panel().WriteHTML(out)
	}
	printItems(out, w.Panel().Items())
	return nil
}

func catalogCommand(c *cli.Context) error {
	cat := catalog.Default()
	if path := loadedConfig(c).Catalog.Path; path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			return err
		}
		cat = loaded
	}

	out := c.App.Writer
	for _, doc := range cat.Docs() {
		fmt.Fprintf(out, "%s\t%s\n", doc.Title, doc.URL)
	}
	fmt.Fprintf(out, "%d documents, fingerprint %s\n", cat.Len(), cat.Fingerprint())
	return nil
}

func interactiveCommand(c *cli.Context) error {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	w, err := widget.FromConfig(loadedConfig(c), m, slog.Default())
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	s := &session{widget: w, registry: reg, out: c.App.Writer}
	return s.run(c.Context, c.App.Reader)
}

// session reads commands line by line. Lines starting with ':' are actions;
// any other line replaces the search input.
type session struct {
	widget   *widget.Widget
	registry *prometheus.Registry
	out      io.Writer
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		quit, err := s.handle(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (s *session) handle(ctx context.Context, line string) (bool, error) {
	w := s.widget

	switch strings.TrimSpace(line) {
	case ":quit", ":q":
		return true, nil
	case ":open":
		if err := w.Open(ctx); err != nil {
			return false, err
		}
	case ":outside":
		if _, err := w.Click(ctx, dropdown.Outside()); err != nil {
			return false, err
		}
	case ":down":
		w.Key(dropdown.KeyArrowDown)
	case ":up":
		w.Key(dropdown.KeyArrowUp)
	case ":esc":
		w.Key(dropdown.KeyEscape)
	case ":html":
		return false, w.Panel().WriteHTML(s.out)
	case ":stats":
		return false, s.writeStats()
	default:
		w.Type(line)
	}

	s.writeStatus()
	return false, nil
}

func (s *session) writeStatus() {
	w := s.widget
	fmt.Fprintf(s.out, "[%s] focus=%s\n", w.State(), w.Focus())
	if w.State() == dropdown.StateOpen {
		printItems(s.out, w.Panel().Items())
	}
}

func (s *session) writeStats() error {
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(s.out, mf); err != nil {
			return err
		}
	}
	return nil
}

func printItems(out io.Writer, items []dropdown.ResultItem) {
	for _, item := range items {
		fmt.Fprintf(out, "%d. %s\t%s\n", item.Index+1, item.Title, item.URL)
	}
}
