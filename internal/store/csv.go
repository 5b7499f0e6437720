package store

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"blogpulse/internal/model"
)

var csvHeader = []string{"id", "date", "day", "favorites", "retweets", "title", "url", "author", "score"}

// WriteCSV writes the record table to path, overwriting any prior file.
// Every field is quoted, including numerics, so the file round-trips
// through spreadsheet tools without type guessing.
func WriteCSV(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	w := bufio.NewWriter(f)
	writeRow(w, csvHeader)
	for _, r := range records {
		writeRow(w, []string{
			r.ID,
			r.Date.Format("2006-01-02"),
			r.Day.String(),
			strconv.Itoa(r.Favorites),
			strconv.Itoa(r.Retweets),
			r.Title,
			r.URL,
			r.Author,
			strconv.Itoa(r.Score),
		})
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_ = w.WriteByte('"')
		_, _ = w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('\n')
}
