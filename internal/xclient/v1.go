package xclient

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"blogpulse/internal/model"
)

// TimelineClient is the fetcher interface the pipeline depends on.
type TimelineClient interface {
	GetUserTimeline(ctx context.Context, screenName string, limit int) ([]model.Tweet, error)
}

// V1Client fetches user timelines from API v1.1 via OAuth 1.0a.
type V1Client struct {
	Base           *HTTPClient
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
	PageSize       int
	nowFn          func() time.Time
	nonceFn        func() string
}

func NewV1Client(base *HTTPClient, ck, cs, at, as string) *V1Client {
	return &V1Client{
		Base:           base,
		ConsumerKey:    ck,
		ConsumerSecret: cs,
		AccessToken:    at,
		AccessSecret:   as,
		PageSize:       200,
		nowFn:          time.Now,
		nonceFn:        func() string { return strconv.FormatInt(rand.Int63(), 36) },
	}
}

type rawStatus struct {
	IDStr         string `json:"id_str"`
	CreatedAt     string `json:"created_at"`
	FullText      string `json:"full_text"`
	Text          string `json:"text"`
	FavoriteCount int    `json:"favorite_count"`
	RetweetCount  int    `json:"retweet_count"`
	InReplyToID   string `json:"in_reply_to_status_id_str"`
	Retweeted     *struct {
		IDStr string `json:"id_str"`
	} `json:"retweeted_status"`
	Entities struct {
		URLs []struct {
			URL         string `json:"url"`
			ExpandedURL string `json:"expanded_url"`
		} `json:"urls"`
	} `json:"entities"`
}

// GetUserTimeline walks statuses/user_timeline pages via max_id until limit
// original tweets are collected or the timeline is exhausted. Retweets and
// replies are excluded server-side and skipped again during mapping, so the
// result never contains either.
func (c *V1Client) GetUserTimeline(ctx context.Context, screenName string, limit int) ([]model.Tweet, error) {
	if screenName == "" {
		return nil, fmt.Errorf("empty screen name")
	}
	if limit <= 0 {
		limit = 3200
	}
	endpoint := c.Base.baseURL + "/statuses/user_timeline.json"
	var out []model.Tweet
	maxID := ""
	for len(out) < limit {
		params := map[string]string{
			"screen_name":     screenName,
			"count":           strconv.Itoa(clamp(c.PageSize, 1, 200)),
			"include_rts":     "false",
			"exclude_replies": "true",
			"tweet_mode":      "extended",
			"trim_user":       "true",
		}
		if maxID != "" {
			params["max_id"] = maxID
		}
		reqURL := endpoint + "?" + encodeQuery(params)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		c.oauth1Sign(req, params)
		resp, err := c.Base.do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("timeline fetch: %w", err)
		}
		var page []rawStatus
		decErr := json.NewDecoder(resp.Body).Decode(&page)
		_ = resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, statusErr(resp.StatusCode)
		}
		if decErr != nil {
			return nil, fmt.Errorf("decode timeline: %w", decErr)
		}
		if len(page) == 0 {
			break
		}
		for _, s := range page {
			if t, ok := mapStatus(s); ok && len(out) < limit {
				out = append(out, t)
			}
		}
		last := page[len(page)-1].IDStr
		next := prevID(last)
		if next == "" || next == maxID {
			break
		}
		maxID = next
	}
	return out, nil
}

// mapStatus converts one status into a Tweet, reporting ok=false for
// retweets and replies.
func mapStatus(s rawStatus) (model.Tweet, bool) {
	if s.Retweeted != nil || s.InReplyToID != "" {
		return model.Tweet{}, false
	}
	ts, err := time.Parse(time.RubyDate, s.CreatedAt)
	if err != nil {
		return model.Tweet{}, false
	}
	text := s.FullText
	if text == "" {
		text = s.Text
	}
	last := ""
	if n := len(s.Entities.URLs); n > 0 {
		// The canonical post link is placed last among the URL entities.
		last = s.Entities.URLs[n-1].ExpandedURL
		if last == "" {
			last = s.Entities.URLs[n-1].URL
		}
	}
	ts = ts.UTC()
	return model.Tweet{
		ID:        s.IDStr,
		Text:      text,
		CreatedAt: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Favorites: s.FavoriteCount,
		Retweets:  s.RetweetCount,
		LastURL:   last,
	}, true
}

// prevID returns id-1 as a decimal string, the max_id for the next page.
func prevID(id string) string {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return ""
	}
	return strconv.FormatUint(n-1, 10)
}

func (c *V1Client) oauth1Sign(req *http.Request, queryParams map[string]string) {
	oauth := map[string]string{
		"oauth_consumer_key":     c.ConsumerKey,
		"oauth_nonce":            c.nonceFn(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(c.nowFn().Unix(), 10),
		"oauth_token":            c.AccessToken,
		"oauth_version":          "1.0",
	}
	all := map[string]string{}
	for k, v := range oauth {
		all[k] = v
	}
	for k, v := range queryParams {
		all[k] = v
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paramParts := make([]string, 0, len(keys))
	for _, k := range keys {
		paramParts = append(paramParts, rfc3986(k)+"="+rfc3986(all[k]))
	}
	paramStr := strings.Join(paramParts, "&")
	baseURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path
	base := "GET&" + rfc3986(baseURL) + "&" + rfc3986(paramStr)
	signingKey := rfc3986(c.ConsumerSecret) + "&" + rfc3986(c.AccessSecret)
	mac := hmac.New(sha1.New, []byte(signingKey))
	_, _ = mac.Write([]byte(base))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	oauth["oauth_signature"] = sig
	hdrKeys := make([]string, 0, len(oauth))
	for k := range oauth {
		hdrKeys = append(hdrKeys, k)
	}
	sort.Strings(hdrKeys)
	authParts := make([]string, 0, len(hdrKeys))
	for _, k := range hdrKeys {
		authParts = append(authParts, fmt.Sprintf("%s=\"%s\"", rfc3986(k), rfc3986(oauth[k])))
	}
	req.Header.Set("Authorization", "OAuth "+strings.Join(authParts, ", "))
	req.Header.Set("Accept", "application/json")
}

func encodeQuery(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(m[k]))
	}
	return strings.Join(parts, "&")
}

// RFC 3986 percent-encoding for OAuth.
func rfc3986(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(url.QueryEscape(s), "+", "%20"), "*", "%2A")
}
