// Package store persists the final record set: a SQLite snapshot for fast
// reloads and a CSV table for human inspection. Both writes are full
// overwrites; there is no append path and no versioning.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"blogpulse/internal/model"
)

// DB wraps the SQLite snapshot database.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = d.Close()
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS records (
	  pos INTEGER PRIMARY KEY,
	  id TEXT NOT NULL,
	  date INTEGER NOT NULL,
	  day TEXT NOT NULL,
	  favorites INTEGER NOT NULL,
	  retweets INTEGER NOT NULL,
	  title TEXT NOT NULL,
	  url TEXT NOT NULL,
	  author TEXT NOT NULL,
	  score INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);
	`)
	return err
}

// Save replaces the snapshot contents with records, preserving slice order.
func (d *DB) Save(ctx context.Context, records []model.Record) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records(pos, id, date, day, favorites, retweets, title, url, author, score) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.Date.Unix(), r.Day.String(), r.Favorites, r.Retweets, r.Title, r.URL, r.Author, r.Score); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load returns the snapshot contents in saved order.
func (d *DB) Load(ctx context.Context) ([]model.Record, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT id, date, day, favorites, retweets, title, url, author, score FROM records ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Record
	for rows.Next() {
		var r model.Record
		var ts int64
		var day string
		if err := rows.Scan(&r.ID, &ts, &day, &r.Favorites, &r.Retweets, &r.Title, &r.URL, &r.Author, &r.Score); err != nil {
			return nil, err
		}
		r.Date = time.Unix(ts, 0).UTC()
		wd, ok := model.ParseWeekday(day)
		if !ok {
			return nil, fmt.Errorf("snapshot: bad weekday %q", day)
		}
		r.Day = wd
		out = append(out, r)
	}
	return out, rows.Err()
}
