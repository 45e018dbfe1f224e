package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the day format records are stored and filtered with.
const DateLayout = "2006-01-02"

// Record is one persisted score. Records are append-only.
type Record struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	Kind   string `json:"kind,omitempty"`
	FScore int    `json:"f_score"`
	PScore int    `json:"p_score"`
	RScore int    `json:"r_score"`
	Lyric  string `json:"lyric"`
}

// Averages summarises the records in a window. The means are zero when Count
// is zero.
type Averages struct {
	Count  int     `json:"count"`
	FScore float64 `json:"f_score"`
	PScore float64 `json:"p_score"`
	RScore float64 `json:"r_score"`
}

// Store is the sqlite progress store.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

func NewStore(path string) (*Store, error) {
	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)
	return &Store{conn: conn, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Append stores rec in its own transaction. A missing ID or date is filled in
// and scores are clamped to [0,100]. The stored record is returned.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = uuid.NewString()
	}
	if strings.TrimSpace(rec.Date) == "" {
		rec.Date = s.now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, rec.Date); err != nil {
		return Record{}, fmt.Errorf("record date %q: %w", rec.Date, err)
	}
	rec.FScore = clamp100(rec.FScore)
	rec.PScore = clamp100(rec.PScore)
	rec.RScore = clamp100(rec.RScore)

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO records(id, date, title, kind, f_score, p_score, r_score, lyric) VALUES(?,?,?,?,?,?,?,?)`,
		rec.ID,
		rec.Date,
		rec.Title,
		rec.Kind,
		rec.FScore,
		rec.PScore,
		rec.RScore,
		rec.Lyric,
	); err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit tx: %w", err)
	}
	return rec, nil
}

// List returns the records dated on or after since, oldest first. A zero since
// returns every record.
func (s *Store) List(ctx context.Context, since time.Time) ([]Record, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, date, title, kind, f_score, p_score, r_score, lyric FROM records WHERE date >= ? ORDER BY date, seq`,
		sinceKey(since),
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Date, &r.Title, &r.Kind, &r.FScore, &r.PScore, &r.RScore, &r.Lyric); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Averages computes mean scores over the records dated on or after since.
func (s *Store) Averages(ctx context.Context, since time.Time) (Averages, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(f_score), 0), COALESCE(AVG(p_score), 0), COALESCE(AVG(r_score), 0) FROM records WHERE date >= ?`,
		sinceKey(since),
	)
	var avg Averages
	if err := row.Scan(&avg.Count, &avg.FScore, &avg.PScore, &avg.RScore); err != nil {
		return Averages{}, fmt.Errorf("scan averages: %w", err)
	}
	return avg, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}

// WindowStart is the first day included in a window of the last days days,
// today counting as one. Zero or negative days means no window.
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))
}

func sinceKey(since time.Time) string {
	if since.IsZero() {
		return ""
	}
	return since.Format(DateLayout)
}

func clamp100(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
