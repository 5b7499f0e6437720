package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PipelineRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blogpulse_pipeline_runs_total",
		Help: "Total pipeline runs",
	})
	PipelineErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blogpulse_pipeline_errors_total",
		Help: "Total pipeline failures",
	})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "blogpulse_pipeline_duration_seconds",
		Help:    "Pipeline duration seconds",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
	TweetsFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blogpulse_tweets_fetched_total",
		Help: "Total tweets fetched from the timeline",
	})
	PagesScraped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blogpulse_pages_scraped_total",
		Help: "Total post pages scraped for an author",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(PipelineRuns, PipelineErrors, PipelineDuration, TweetsFetched, PagesScraped)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
// Empty addr disables it.
func StartServer(addr string) {
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

// ObservePipelineDuration records a run duration.
func ObservePipelineDuration(start time.Time) {
	PipelineDuration.Observe(time.Since(start).Seconds())
}

// IncScrape counts one scraped page by outcome.
func IncScrape(found bool) {
	result := "author"
	if !found {
		result = "no_author"
	}
	PagesScraped.WithLabelValues(result).Inc()
}
