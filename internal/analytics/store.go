// Package analytics records privacy-conscious visitor statistics and contact
// outcomes in SQLite. Raw IP addresses are never stored; they are hashed
// with a per-process salt before they reach the database. Contact outcomes
// carry a status only, never the visitor's message.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

// VisitorMetric is one recorded page view.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactStats counts contact outcomes.
type ContactStats struct {
	Attempts int64 `json:"attempts"`
	Sent     int64 `json:"sent"`
	Failed   int64 `json:"failed"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TopPaths         []PathStat      `json:"top_paths"`
	Contact          ContactStats    `json:"contact"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// PathStat counts views of one path.
type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Store is the SQLite-backed analytics store.
type Store struct {
	db     *sql.DB
	salt   string
	logger zerolog.Logger
	now    func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE TABLE IF NOT EXISTS contact_outcomes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	status TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);`

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate analytics database: %w", err)
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger = logger.With().Str("component", "analytics").Logger()
	logger.Info().Msg("visitor tracking enabled with hashed IP addresses")

	return &Store{db: db, salt: salt, logger: logger, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP hashes ip with the store's salt. The result is stable for the
// lifetime of the process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordContact stores one contact status transition.
func (s *Store) RecordContact(ctx context.Context, status string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_outcomes (status, timestamp) VALUES (?, ?)`,
		status, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record contact outcome: %w", err)
	}
	return nil
}

// Cleanup deletes visits and outcomes older than retention.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)

	var total int64
	for _, table := range []string{"visitors", "contact_outcomes"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if total > 0 {
		s.logger.Info().Int64("rows", total).Dur("retention", retention).Msg("privacy cleanup removed old records")
	}
	return total, nil
}

// RecentVisitors returns the latest visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// Stats computes the dashboard summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM contact_outcomes WHERE status = 'sending'`, nil, &stats.Contact.Attempts},
		{`SELECT COUNT(*) FROM contact_outcomes WHERE status = 'sent'`, nil, &stats.Contact.Sent},
		{`SELECT COUNT(*) FROM contact_outcomes WHERE status = 'failed'`, nil, &stats.Contact.Failed},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(path, ''), COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query top paths: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
