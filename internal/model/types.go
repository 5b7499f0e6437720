package model

import "time"

// Tweet represents a subset of timeline fields used by the tool.
type Tweet struct {
	ID        string
	Text      string
	CreatedAt time.Time
	Favorites int
	Retweets  int
	// LastURL is the last URL entity attached to the tweet. The source
	// account places the canonical post link last among shortened URLs.
	LastURL string
}

// Record is one cleaned, scored post entry.
type Record struct {
	ID        string
	Date      time.Time // calendar date, midnight UTC
	Day       Weekday
	Favorites int
	Retweets  int
	Title     string
	URL       string
	Author    string
	Score     int
}

// AuthorSummary aggregates records for one author.
type AuthorSummary struct {
	Author       string
	NumTweets    int
	AvgFavorites float64
	AvgRetweets  float64
	AvgScore     float64
}

// WeekdaySummary aggregates records posted on one weekday.
type WeekdaySummary struct {
	Day          Weekday
	NumTweets    int
	AvgFavorites float64
	AvgRetweets  float64
	AvgScore     float64
}

// WordCount is one entry of the title word-frequency table.
type WordCount struct {
	Word  string
	Count int
}

// Weekday is a Monday-first day of week, unlike time.Weekday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "Unknown"
	}
	return weekdayNames[d]
}

// WeekdayOf maps a time to the Monday-first enumeration regardless of locale.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-first
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// Weekdays returns all days in fixed Monday-first order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseWeekday returns the Weekday with the given name.
func ParseWeekday(s string) (Weekday, bool) {
	for i, n := range weekdayNames {
		if n == s {
			return Weekday(i), true
		}
	}
	return 0, false
}
