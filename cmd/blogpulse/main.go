package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"blogpulse/internal/config"
	"blogpulse/internal/metrics"
	"blogpulse/internal/pipeline"
	"blogpulse/internal/report"
	"blogpulse/internal/scrape"
	"blogpulse/internal/store"
	"blogpulse/internal/theme"
	"blogpulse/internal/xclient"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "run":
		cmdRun()
	case "report":
		cmdReport()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: blogpulse <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init      Create a config file at ./blogpulse.yaml")
	fmt.Println("  run       Fetch the timeline, scrape authors, clean, score, persist")
	fmt.Println("  report    Print summaries from the snapshot; -html writes the full report")
}

func fatal(err error) {
	fmt.Println("error:", err)
	os.Exit(1)
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./blogpulse.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		fatal(err)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdRun() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "./blogpulse.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	// Bad credentials are a configuration error; refuse to start.
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	metrics.StartServer(cfg.Metrics.Addr)

	base := xclient.NewHTTPClient(cfg.Fetch.RPS, cfg.Fetch.Burst)
	client := xclient.NewV1Client(base,
		cfg.Credentials.ConsumerKey, cfg.Credentials.ConsumerSecret,
		cfg.Credentials.AccessToken, cfg.Credentials.AccessSecret)
	if cfg.Fetch.PageSize > 0 {
		client.PageSize = cfg.Fetch.PageSize
	}
	scraper := scrape.NewDefault(cfg.Scrape.RPS, cfg.Scrape.Burst,
		time.Duration(cfg.Scrape.TimeoutSeconds)*time.Second, cfg.Scrape.UserAgent)
	db, err := store.Open(cfg.Output.DBPath)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = db.Close() }()

	if err := pipeline.Run(context.Background(), cfg, client, scraper, db); err != nil {
		fatal(err)
	}
}

func cmdReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	cfgPath := fs.String("config", "./blogpulse.yaml", "config path")
	htmlPath := fs.String("html", "", "write the full HTML report to this path")
	words := fs.Int("words", 20, "title words to print")
	_ = fs.Parse(os.Args[2:])
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	db, err := store.Open(cfg.Output.DBPath)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = db.Close() }()
	records, err := db.Load(context.Background())
	if err != nil {
		fatal(err)
	}
	if len(records) == 0 {
		fmt.Println("snapshot is empty; run `blogpulse run` first")
		return
	}

	authors := report.ByAuthor(records)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "author\tnum_tweets\tavg_favorites\tavg_retweets\tavg_score")
	for _, a := range authors {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\n", a.Author, a.NumTweets, a.AvgFavorites, a.AvgRetweets, a.AvgScore)
	}
	_ = w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "day\tnum_tweets\tavg_favorites\tavg_retweets\tavg_score")
	for _, d := range report.ByWeekday(records) {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\n", d.Day, d.NumTweets, d.AvgFavorites, d.AvgRetweets, d.AvgScore)
	}
	_ = w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "word\tcount")
	for _, wc := range report.WordFrequency(records, *words) {
		fmt.Fprintf(w, "%s\t%d\n", wc.Word, wc.Count)
	}
	_ = w.Flush()

	if *htmlPath != "" {
		if err := report.WriteHTML(*htmlPath, records); err != nil {
			fatal(err)
		}
		abs, _ := filepath.Abs(*htmlPath)
		fmt.Println("\nReport written to:", abs)
	}
}
