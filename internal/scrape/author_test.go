package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestScraper(client HTTPClient) *Scraper {
	return New(client, 1000, 1000, "blogpulse-test/1.0")
}

func TestAuthor(t *testing.T) {
	obfuscated := `document.write('` + strings.Repeat("x61x62x63", 20) + `')`
	mux := http.NewServeMux()
	mux.HandleFunc("/post", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>A post.</p><a rel="author" href="/about">Jane Doe</a></body></html>`))
	})
	mux.HandleFunc("/messy", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a rel="author" href="/about">  Jane
			Doe </a></body></html>`))
	})
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Senior Data Scientist wanted</h1></body></html>`))
	})
	mux.HandleFunc("/two-authors", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a rel="author">One</a><a rel="author">Two</a></body></html>`))
	})
	mux.HandleFunc("/obfuscated", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a rel="author" title="Hidden Author"><script>` + obfuscated + `</script></a></body></html>`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	s := newTestScraper(ts.Client())
	tests := []struct {
		name, path, want string
	}{
		{"single author anchor", "/post", "Jane Doe"},
		{"whitespace normalized", "/messy", "Jane Doe"},
		{"no anchor on non-post page", "/job", ""},
		{"multiple anchors are ambiguous", "/two-authors", ""},
		{"obfuscated name from title attribute", "/obfuscated", "Hidden Author"},
		{"server error absorbed", "/broken", ""},
		{"missing page absorbed", "/definitely-404", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Author(context.Background(), ts.URL+tt.path); got != tt.want {
				t.Errorf("Author(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestAuthorNetworkFailureAbsorbed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close() // connection refused from here on

	s := newTestScraper(http.DefaultClient)
	if got := s.Author(context.Background(), url+"/post"); got != "" {
		t.Errorf("Author after close = %q, want empty", got)
	}
}

func TestAuthorEmptyURL(t *testing.T) {
	s := newTestScraper(http.DefaultClient)
	if got := s.Author(context.Background(), ""); got != "" {
		t.Errorf("Author(\"\") = %q", got)
	}
}

func TestObfuscationThreshold(t *testing.T) {
	// Short anchor text containing the marker is taken literally; the
	// fallback only kicks in above the length threshold.
	short := `<html><body><a rel="author" title="T">document.write hi</a></body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(short))
	}))
	defer ts.Close()
	s := newTestScraper(ts.Client())
	if got := s.Author(context.Background(), ts.URL); got != "document.write hi" {
		t.Errorf("got %q", got)
	}
}
