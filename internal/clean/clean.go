// Package clean holds the ordered record-cleaning pipeline.
package clean

import (
	"sort"
	"strings"
	"time"

	"blogpulse/internal/model"
	"blogpulse/internal/util"
)

// boilerplateMarker starts the syndication suffix some posts carry; the
// suffix runs from the marker to end of title.
const boilerplateMarker = "This article was originally posted on"

// mergeWindow is the maximum span between the earliest and latest date of
// a duplicate (author, title) group for it to collapse into one record.
const mergeWindow = 7 * 24 * time.Hour

// Options are the cleaning constants that come from configuration.
type Options struct {
	// Hashtag stripped from title tails alongside the post URL.
	Hashtag string
	// NameLimit is the display length cap for author names.
	NameLimit int
}

// Clean runs the full pipeline over records whose Author field has been
// populated: drop authorless records, strip title noise, derive weekdays,
// merge near-duplicates, truncate author names for display, and sort by
// date descending. Merging runs before truncation so that two distinct
// authors sharing a truncated display form never collapse together.
func Clean(records []model.Record, opts Options) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Author == "" {
			continue
		}
		r.Title = CleanTitle(r.Title, r.URL, opts.Hashtag)
		r.Day = model.WeekdayOf(r.Date)
		out = append(out, r)
	}
	out = Merge(out)
	for i := range out {
		out[i].Author = TruncateName(out[i].Author, opts.NameLimit)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// CleanTitle strips the trailing link/hashtag noise a tweet carries after
// the post title, then any syndication boilerplate suffix.
func CleanTitle(title, url, hashtag string) string {
	title = stripTail(title, url, hashtag)
	if i := strings.Index(title, boilerplateMarker); i >= 0 {
		title = title[:i]
	}
	return util.NormalizeWhitespace(title)
}

// stripTail removes trailing occurrences of the record's own URL, t.co
// short links, and the fixed hashtag token.
func stripTail(title, url, hashtag string) string {
	for {
		t := strings.TrimSpace(title)
		switch {
		case url != "" && strings.HasSuffix(t, url):
			title = strings.TrimSuffix(t, url)
		case hashtag != "" && strings.HasSuffix(t, hashtag):
			title = strings.TrimSuffix(t, hashtag)
		case hasShortLinkSuffix(t):
			title = trimShortLinkSuffix(t)
		default:
			return t
		}
	}
}

const shortLinkPrefix = "https://t.co/"

func hasShortLinkSuffix(s string) bool {
	i := strings.LastIndex(s, shortLinkPrefix)
	if i < 0 {
		return false
	}
	rest := s[i+len(shortLinkPrefix):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func trimShortLinkSuffix(s string) string {
	return s[:strings.LastIndex(s, shortLinkPrefix)]
}

// TruncateName caps a display name at limit characters. Truncated names
// are exactly limit long and end in "...". Cosmetic only; callers must
// not use truncated names as identity.
func TruncateName(name string, limit int) string {
	if limit < 4 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit-3]) + "..."
}

// Merge collapses duplicate (author, title) groups posted within the merge
// window into one record: earliest date, summed favorite and retweet
// counts, remaining fields from the earliest member. Groups spanning more
// than the window are left untouched. Merging an already-merged set is a
// no-op.
func Merge(records []model.Record) []model.Record {
	type group struct {
		idx []int // positions in input order
	}
	groups := make(map[string]*group)
	order := make([]string, 0, len(records))
	for i, r := range records {
		key := r.Author + "\x00" + r.Title
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.idx = append(g.idx, i)
	}
	out := make([]model.Record, 0, len(records))
	for _, key := range order {
		g := groups[key]
		if len(g.idx) == 1 || !withinWindow(records, g.idx) {
			for _, i := range g.idx {
				out = append(out, records[i])
			}
			continue
		}
		merged := records[g.idx[0]]
		for _, i := range g.idx[1:] {
			r := records[i]
			if r.Date.Before(merged.Date) {
				fav, rt := merged.Favorites, merged.Retweets
				merged = r
				merged.Favorites, merged.Retweets = fav, rt
			}
			merged.Favorites += r.Favorites
			merged.Retweets += r.Retweets
		}
		merged.Day = model.WeekdayOf(merged.Date)
		out = append(out, merged)
	}
	return out
}

func withinWindow(records []model.Record, idx []int) bool {
	min, max := records[idx[0]].Date, records[idx[0]].Date
	for _, i := range idx[1:] {
		d := records[i].Date
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return max.Sub(min) <= mergeWindow
}
