package xclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestV1(baseURL string) *V1Client {
	base := NewHTTPClient(1000, 1000)
	base.baseURL = baseURL
	return NewV1Client(base, "ck", "cs", "at", "as")
}

const timelinePage = `[
  {"id_str":"300","created_at":"Thu Jan 01 10:30:00 +0000 2015",
   "full_text":"Intro to X https://t.co/abc #rstats","favorite_count":5,"retweet_count":2,
   "entities":{"urls":[{"url":"https://t.co/abc","expanded_url":"https://blog.example.com/post-a"}]}},
  {"id_str":"299","created_at":"Thu Jan 01 11:00:00 +0000 2015",
   "full_text":"@someone a reply","in_reply_to_status_id_str":"42",
   "entities":{"urls":[]}},
  {"id_str":"298","created_at":"Thu Jan 01 12:00:00 +0000 2015",
   "full_text":"RT someone","retweeted_status":{"id_str":"41"},
   "entities":{"urls":[]}}
]`

func TestGetUserTimelineFiltersAndMaps(t *testing.T) {
	var maxIDs []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Error("missing Authorization header")
		}
		q := r.URL.Query()
		if q.Get("include_rts") != "false" || q.Get("exclude_replies") != "true" {
			t.Errorf("missing exclusion params: %s", r.URL.RawQuery)
		}
		maxIDs = append(maxIDs, q.Get("max_id"))
		w.Header().Set("Content-Type", "application/json")
		if q.Get("max_id") == "" {
			fmt.Fprint(w, timelinePage)
			return
		}
		fmt.Fprint(w, "[]")
	}))
	defer ts.Close()

	c := newTestV1(ts.URL)
	tweets, err := c.GetUserTimeline(context.Background(), "someblog", 3200)
	if err != nil {
		t.Fatalf("GetUserTimeline: %v", err)
	}
	// The reply and the retweet never make it through.
	if len(tweets) != 1 {
		t.Fatalf("got %d tweets, want 1", len(tweets))
	}
	tw := tweets[0]
	if tw.ID != "300" || tw.Favorites != 5 || tw.Retweets != 2 {
		t.Errorf("bad mapping: %+v", tw)
	}
	if tw.LastURL != "https://blog.example.com/post-a" {
		t.Errorf("LastURL = %q", tw.LastURL)
	}
	wantDate := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	if !tw.CreatedAt.Equal(wantDate) {
		t.Errorf("CreatedAt = %v, want date-truncated %v", tw.CreatedAt, wantDate)
	}
	// Second page requested below the last seen id.
	if len(maxIDs) != 2 || maxIDs[1] != "297" {
		t.Errorf("max_id walk = %v", maxIDs)
	}
}

func TestGetUserTimelineRespectsLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always a full-looking page; the client must stop on its own.
		fmt.Fprintf(w, `[{"id_str":"%d","created_at":"Thu Jan 01 10:30:00 +0000 2015","full_text":"t","entities":{"urls":[]}}]`, 1000-len(r.URL.Query().Get("max_id")))
	}))
	defer ts.Close()

	c := newTestV1(ts.URL)
	tweets, err := c.GetUserTimeline(context.Background(), "someblog", 2)
	if err != nil {
		t.Fatalf("GetUserTimeline: %v", err)
	}
	if len(tweets) != 2 {
		t.Fatalf("got %d tweets, want 2", len(tweets))
	}
}

func TestGetUserTimelineErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthentication},
		{http.StatusForbidden, ErrAuthentication},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := newTestV1(ts.URL)
		_, err := c.GetUserTimeline(context.Background(), "someblog", 10)
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
		ts.Close()
	}
}

func TestGetUserTimelineEmptyScreenName(t *testing.T) {
	c := newTestV1("http://127.0.0.1:0")
	if _, err := c.GetUserTimeline(context.Background(), "", 10); err == nil {
		t.Fatal("expected error for empty screen name")
	}
}

func TestOAuth1SigningAddsHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			t.Error("missing Authorization header")
		}
		if len(auth) < 6 || auth[:6] != "OAuth " {
			t.Errorf("not an OAuth header: %q", auth)
		}
		fmt.Fprint(w, "[]")
	}))
	defer ts.Close()
	c := newTestV1(ts.URL)
	if _, err := c.GetUserTimeline(context.Background(), "someblog", 5); err != nil {
		t.Fatalf("GetUserTimeline: %v", err)
	}
}

func TestPrevID(t *testing.T) {
	if got := prevID("300"); got != "299" {
		t.Errorf("prevID(300) = %q", got)
	}
	if got := prevID("0"); got != "" {
		t.Errorf("prevID(0) = %q", got)
	}
	if got := prevID("nope"); got != "" {
		t.Errorf("prevID(nope) = %q", got)
	}
}
