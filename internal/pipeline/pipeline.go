// Package pipeline runs the batch: fetch → scrape → clean → score → persist.
// Strictly sequential, single pass; a run either completes or is re-invoked
// whole by the operator.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"blogpulse/internal/clean"
	"blogpulse/internal/config"
	"blogpulse/internal/logging"
	"blogpulse/internal/metrics"
	"blogpulse/internal/model"
	"blogpulse/internal/store"
	"blogpulse/internal/xclient"
)

// AuthorScraper resolves a post URL to an author name ("" for none).
type AuthorScraper interface {
	Author(ctx context.Context, url string) string
}

// Run executes one full pipeline pass and persists both artifacts.
func Run(ctx context.Context, cfg config.Config, client xclient.TimelineClient, scraper AuthorScraper, db *store.DB) error {
	start := time.Now()
	metrics.PipelineRuns.Inc()
	err := run(ctx, cfg, client, scraper, db)
	if err != nil {
		metrics.PipelineErrors.Inc()
		return err
	}
	metrics.ObservePipelineDuration(start)
	return nil
}

func run(ctx context.Context, cfg config.Config, client xclient.TimelineClient, scraper AuthorScraper, db *store.DB) error {
	tweets, err := client.GetUserTimeline(ctx, cfg.Account.Username, cfg.Fetch.MaxTweets)
	if err != nil {
		return fmt.Errorf("fetch timeline: %w", err)
	}
	metrics.TweetsFetched.Add(float64(len(tweets)))
	logging.Info("timeline_fetched", map[string]any{"account": cfg.Account.Username, "tweets": len(tweets)})

	records := make([]model.Record, 0, len(tweets))
	for i, t := range tweets {
		if err := ctx.Err(); err != nil {
			return err
		}
		author := scraper.Author(ctx, t.LastURL)
		metrics.IncScrape(author != "")
		records = append(records, model.Record{
			ID:        t.ID,
			Date:      t.CreatedAt,
			Favorites: t.Favorites,
			Retweets:  t.Retweets,
			Title:     t.Text,
			URL:       t.LastURL,
			Author:    author,
		})
		if (i+1)%100 == 0 {
			logging.Info("scrape_progress", map[string]any{"done": i + 1, "total": len(tweets)})
		}
	}

	records = clean.Clean(records, clean.Options{Hashtag: cfg.Clean.Hashtag, NameLimit: cfg.Clean.NameLimit})
	for i := range records {
		records[i].Score = model.Score(records[i].Favorites, records[i].Retweets)
	}
	logging.Info("records_cleaned", map[string]any{"kept": len(records), "fetched": len(tweets)})

	if err := db.Save(ctx, records); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := store.WriteCSV(cfg.Output.CSVPath, records); err != nil {
		return err
	}
	logging.Info("pipeline_ok", map[string]any{"records": len(records), "csv": cfg.Output.CSVPath, "db": cfg.Output.DBPath})
	return nil
}
