// Package report derives the summary views from a final record set. Every
// derivation is a pure grouping pass; records are never mutated.
package report

import (
	"math"
	"sort"

	"github.com/kljensen/snowball/english"

	"blogpulse/internal/model"
	"blogpulse/internal/util"
)

// TopAuthorCount is how many authors the highlighted subset keeps.
const TopAuthorCount = 10

// WordTableSize caps the word-frequency table.
const WordTableSize = 100

// ByAuthor returns one summary per distinct author, sorted by mean score
// descending. Ties keep first-seen author order (stable).
func ByAuthor(records []model.Record) []model.AuthorSummary {
	type acc struct {
		n, fav, rt, score int
	}
	accs := make(map[string]*acc)
	var order []string
	for _, r := range records {
		a, ok := accs[r.Author]
		if !ok {
			a = &acc{}
			accs[r.Author] = a
			order = append(order, r.Author)
		}
		a.n++
		a.fav += r.Favorites
		a.rt += r.Retweets
		a.score += r.Score
	}
	out := make([]model.AuthorSummary, 0, len(order))
	for _, name := range order {
		a := accs[name]
		out = append(out, model.AuthorSummary{
			Author:       name,
			NumTweets:    a.n,
			AvgFavorites: round1(float64(a.fav) / float64(a.n)),
			AvgRetweets:  round1(float64(a.rt) / float64(a.n)),
			AvgScore:     round1(float64(a.score) / float64(a.n)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgScore > out[j].AvgScore })
	return out
}

// ByWeekday returns one summary per weekday in fixed Monday-first order.
// Days with no posts appear with zero counts.
func ByWeekday(records []model.Record) []model.WeekdaySummary {
	type acc struct {
		n, fav, rt, score int
	}
	var accs [7]acc
	for _, r := range records {
		a := &accs[r.Day]
		a.n++
		a.fav += r.Favorites
		a.rt += r.Retweets
		a.score += r.Score
	}
	out := make([]model.WeekdaySummary, 0, 7)
	for _, d := range model.Weekdays() {
		a := accs[d]
		s := model.WeekdaySummary{Day: d, NumTweets: a.n}
		if a.n > 0 {
			s.AvgFavorites = round1(float64(a.fav) / float64(a.n))
			s.AvgRetweets = round1(float64(a.rt) / float64(a.n))
			s.AvgScore = round1(float64(a.score) / float64(a.n))
		}
		out = append(out, s)
	}
	return out
}

// TopAuthors returns the first n author names from an already-ranked
// summary list.
func TopAuthors(summaries []model.AuthorSummary, n int) []string {
	if n > len(summaries) {
		n = len(summaries)
	}
	out := make([]string, 0, n)
	for _, s := range summaries[:n] {
		out = append(out, s.Author)
	}
	return out
}

// FilterByAuthors keeps the records whose author is in the given set.
func FilterByAuthors(records []model.Record, authors []string) []model.Record {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	var out []model.Record
	for _, r := range records {
		if _, ok := set[r.Author]; ok {
			out = append(out, r)
		}
	}
	return out
}

// WordFrequency tokenizes all titles, drops English stopwords, stems the
// rest, discards empties and the bare language token "r", and returns the
// topN stems by count (ties broken alphabetically).
func WordFrequency(records []model.Record, topN int) []model.WordCount {
	counts := make(map[string]int)
	for _, r := range records {
		for _, tok := range util.Tokenize(r.Title) {
			if _, stop := stopwords[tok]; stop {
				continue
			}
			stem := english.Stem(tok, true)
			if stem == "" || stem == "r" {
				continue
			}
			counts[stem]++
		}
	}
	out := make([]model.WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, model.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
