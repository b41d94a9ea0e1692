// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Command cinegraph-cli runs one algorithm variant against the Algorithm
// Service and prints the result.
//
//	cinegraph-cli -list
//	cinegraph-cli -variant bfs -movie 12
//	cinegraph-cli -variant dijkstra-path -start 3 -end 40
//	cinegraph-cli -variant greedy-marathon -minutes 300 -json
//	cinegraph-cli -genre Drama
//
// Configuration (service URLs, defaults) comes from the same sources as the
// server: config.yaml and environment variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/algoapi"
	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/dispatch"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
	"github.com/tomtom215/cinegraph/internal/results"
	"github.com/tomtom215/cinegraph/internal/status"
)

type cliOptions struct {
	variant    string
	movie      int64
	start      int64
	end        int64
	minutes    int
	minutesSet bool
	genres     string
	genre      string
	list       bool
	json       bool
}

// errUsage marks flag errors already reported by the FlagSet.
var errUsage = errors.New("usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "cinegraph-cli: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("cinegraph-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.variant, "variant", "", "Algorithm variant to run (see -list)")
	fs.Int64Var(&opts.movie, "movie", 0, "Selected movie id")
	fs.Int64Var(&opts.start, "start", 0, "Start movie id for path variants")
	fs.Int64Var(&opts.end, "end", 0, "End movie id for path variants")
	fs.IntVar(&opts.minutes, "minutes", 0, "Time budget in minutes for marathon and knapsack variants")
	fs.StringVar(&opts.genres, "genres", "", "Comma-separated genre mix")
	fs.StringVar(&opts.genre, "genre", "", "Genre to filter by")
	fs.BoolVar(&opts.list, "list", false, "List the available variants and exit")
	fs.BoolVar(&opts.json, "json", false, "Print the result as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: cinegraph-cli -variant NAME [options] | -genre NAME | -list\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, errUsage
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "minutes" {
			opts.minutesSet = true
		}
	})

	opts.variant = strings.TrimSpace(opts.variant)
	if !opts.list && opts.variant == "" && strings.TrimSpace(opts.genre) == "" {
		fs.Usage()
		return opts, errUsage
	}
	return opts, nil
}

// selection maps the flags onto a Selection; flags left out take the
// configured defaults.
func (o cliOptions) selection() models.Selection {
	sel := models.Selection{
		MovieID: o.movie,
		StartID: o.start,
		EndID:   o.end,
		Genre:   o.genre,
	}
	if o.minutesSet {
		sel.MarathonMinutes = models.Int(o.minutes)
		sel.ExactMinutes = models.Int(o.minutes)
		sel.DPMinutes = models.Int(o.minutes)
		sel.BBMinutes = models.Int(o.minutes)
	}
	for _, g := range strings.Split(o.genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			sel.Genres = append(sel.Genres, g)
		}
	}
	return sel
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logCfg := cfg.LoggingSettings()
	logCfg.Format = "console"
	logCfg.Output = stderr
	if cfg.Logging.Level == "info" {
		logCfg.Level = "warn"
	}
	logging.Init(logCfg)

	reg := registry.New(registry.Endpoints{
		CatalogURL:    cfg.API.CatalogURL,
		AlgorithmsURL: cfg.API.AlgorithmsURL,
	})
	if opts.list {
		return printVariants(stdout, reg.Summaries())
	}

	var service algoapi.Service = algoapi.NewClient(cfg.ClientConfig())
	if cfg.API.Breaker.Enabled {
		service = algoapi.NewCircuitBreakerClient(service, cfg.BreakerSettings())
	}
	projection := results.New()
	slot := status.New(cfg.Status.TTL)
	defer slot.Stop()
	slot.Subscribe(func(n *models.Notification) {
		if n != nil {
			fmt.Fprintf(stderr, "[%s] %s\n", n.Kind, n.Message)
		}
	})

	// Titles such as `BFS desde "Alien"` come from the catalog.
	store := catalog.NewStore(cfg.API.CatalogURL, service, slot, projection)
	if err := store.LoadAll(ctx); err != nil {
		return err
	}
	dispatcher := dispatch.New(reg, service, store, slot, projection, cfg.SelectionDefaults())

	var outcome *dispatch.Outcome
	if opts.variant == "" || registry.Variant(opts.variant) == registry.VariantGenreFilter {
		outcome, err = dispatcher.FilterByGenre(ctx, opts.genre)
	} else {
		outcome, err = dispatcher.Dispatch(ctx, registry.Variant(opts.variant), opts.selection())
	}
	if err != nil {
		return err
	}
	if outcome == nil {
		return errors.New("nothing to run: genre is blank")
	}

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Result)
	}
	return printResult(stdout, outcome.Result)
}

func printVariants(w io.Writer, summaries []registry.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tALGORITHM\tROUTE\tREQUIRES")
	for _, s := range summaries {
		requires := make([]string, len(s.Requires))
		for i, f := range s.Requires {
			requires[i] = string(f)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n", s.Variant, s.Algorithm, s.Method, s.Route, strings.Join(requires, ","))
	}
	return tw.Flush()
}

func printResult(w io.Writer, r *models.AlgorithmResult) error {
	fmt.Fprintf(w, "%s (%s, %d películas)\n", r.Title, r.Algorithm, len(r.Movies))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range r.Movies {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d min\t%.1f\t%s\n", m.ID, m.Title, m.Year, m.Duration, m.Rating, strings.Join(m.Genres, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, k := range sortedKeys(r.Metadata) {
		fmt.Fprintf(w, "%s: %v\n", k, r.Metadata[k])
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
