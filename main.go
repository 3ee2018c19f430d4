package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cnosuke/seo-analyzer/analyzer"
	"github.com/cnosuke/seo-analyzer/config"
	"github.com/cnosuke/seo-analyzer/fetcher"
	"github.com/cnosuke/seo-analyzer/logger"
	"github.com/cnosuke/seo-analyzer/render"
	"github.com/cnosuke/seo-analyzer/server"
	"github.com/cnosuke/seo-analyzer/web"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	// Version and Revision are replaced when building.
	Version  = "0.0.1"
	Revision = "xxx"

	Name  = "seo-analyzer"
	Usage = "Check on-page SEO signals of a single web page"
)

const promptText = "Enter the URL to analyze (e.g., https://example.com): "

func main() {
	app := &cli.App{
		Name:    Name,
		Usage:   Usage,
		Version: fmt.Sprintf("%s (%s)", Version, Revision),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yml",
				Usage:   "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Analyze a page and print the report",
				ArgsUsage: "[URL]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   string(render.FormatText),
						Usage:   "output format: text, json, html or markdown",
					},
					&cli.BoolFlag{
						Name:  "no-color",
						Usage: "disable coloured text output",
					},
				},
				Action: analyzeAction,
			},
			{
				Name:   "web",
				Usage:  "Serve the interactive report page",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "addr", Usage: "listen address (overrides web.addr)"}},
				Action: webAction,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the analyze_seo tool over MCP stdio",
				Action: mcpAction,
			},
		},
		DefaultCommand: "analyze",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", Name, err)
		os.Exit(1)
	}
}

// setup - Load config, install the logger and build the analyzer
func setup(c *cli.Context) (*config.Config, *analyzer.Analyzer, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if _, err := logger.Init(cfg.Log.Level, cfg.Log.Path); err != nil {
		return nil, nil, err
	}

	pageTimeout := time.Duration(cfg.Fetch.Timeout) * time.Second
	subresourceTimeout := time.Duration(cfg.Fetch.SubresourceTimeout) * time.Second

	f := fetcher.NewHTTPFetcher(&fetcher.Config{
		// Per-request deadlines come from the analyzer; the client timeout
		// only caps the longest of them.
		Timeout:      max(pageTimeout, subresourceTimeout),
		UserAgent:    cfg.Fetch.UserAgent,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	})

	a := analyzer.New(f, analyzer.Options{
		PageTimeout:          pageTimeout,
		SubresourceTimeout:   subresourceTimeout,
		UserAgent:            cfg.Fetch.UserAgent,
		TitleMaxLength:       cfg.Checks.TitleMaxLength,
		DescriptionMaxLength: cfg.Checks.DescriptionMaxLength,
		SnippetLength:        cfg.Checks.SnippetLength,
	})

	return cfg, a, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func analyzeAction(c *cli.Context) error {
	format, err := render.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	_, a, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	targetURL := strings.TrimSpace(c.Args().First())
	if targetURL == "" {
		targetURL, err = promptURL(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
	}

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " analyzing " + targetURL
	s.Start()
	report := a.Analyze(ctx, targetURL)
	s.Stop()

	if format == render.FormatText {
		fmt.Fprintln(os.Stdout)
	}
	if err := render.Render(os.Stdout, report, format, render.Options{Color: !c.Bool("no-color")}); err != nil {
		return err
	}

	if report.Failed() {
		return cli.Exit("", 1)
	}
	return nil
}

// promptURL asks for the target URL on out and reads one line from in.
func promptURL(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, promptText)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errors.Wrap(err, "failed to read URL")
		}
		return "", errors.New("no URL given")
	}

	targetURL := strings.TrimSpace(scanner.Text())
	if targetURL == "" {
		return "", errors.New("no URL given")
	}
	return targetURL, nil
}

func webAction(c *cli.Context) error {
	cfg, a, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	addr := cfg.Web.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Serving on http://%s\n", addr)
	return web.Serve(ctx, addr, a)
}

func mcpAction(c *cli.Context) error {
	_, a, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	return server.Run(ctx, a, Name, Version, Revision)
}
