package model

import (
	"testing"
	"time"
)

func TestScore(t *testing.T) {
	tests := []struct {
		favorites, retweets, want int
	}{
		{0, 0, 0},
		{5, 0, 5},
		{0, 3, 6},
		{8, 3, 14},
		{100, 50, 200},
	}
	for _, tt := range tests {
		if got := Score(tt.favorites, tt.retweets); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.favorites, tt.retweets, got, tt.want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2015-01-05 is a Monday.
	monday := time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		d := WeekdayOf(monday.AddDate(0, 0, i))
		if d != Weekday(i) {
			t.Errorf("day %d: got %s, want %s", i, d, Weekday(i))
		}
	}
}

func TestWeekdaysOrder(t *testing.T) {
	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	days := Weekdays()
	if len(days) != 7 {
		t.Fatalf("got %d days", len(days))
	}
	for i, d := range days {
		if d.String() != want[i] {
			t.Errorf("position %d: got %s, want %s", i, d, want[i])
		}
	}
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday("Thursday")
	if !ok || d != Thursday {
		t.Fatalf("ParseWeekday(Thursday) = %v, %v", d, ok)
	}
	if _, ok := ParseWeekday("Funday"); ok {
		t.Fatal("expected Funday to fail")
	}
}
