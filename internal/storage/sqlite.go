// Package storage caches fetched profile statistics in SQLite, so repeated
// renders within the cache TTL skip the network round trip. Uses the
// pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/fynn9563/bootgif/internal/github"
)

// ErrNotFound reports that no cached row exists for the requested login.
var ErrNotFound = errors.New("storage: stats not found")

// Store manages the SQLite connection backing the stats cache.
type Store struct {
	db *sql.DB
}

// CachedStats is one cache row: the stats plus when they were fetched.
type CachedStats struct {
	Stats     github.UserStats
	FetchedAt time.Time
}

// Fresh reports whether the row is younger than ttl.
func (c *CachedStats) Fresh(ttl time.Duration) bool {
	return time.Since(c.FetchedAt) < ttl
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS stats_cache (
			login TEXT PRIMARY KEY,
			account_name TEXT NOT NULL,
			total_followers INTEGER NOT NULL DEFAULT 0,
			total_stars INTEGER NOT NULL DEFAULT 0,
			total_issues INTEGER NOT NULL DEFAULT 0,
			commits_last_year INTEGER NOT NULL DEFAULT 0,
			reviews_last_year INTEGER NOT NULL DEFAULT 0,
			pull_requests_made INTEGER NOT NULL DEFAULT 0,
			pull_requests_merged INTEGER NOT NULL DEFAULT 0,
			merged_percentage REAL NOT NULL DEFAULT 0,
			repo_contributions INTEGER NOT NULL DEFAULT 0,
			languages TEXT NOT NULL DEFAULT '[]',
			rank_level TEXT NOT NULL DEFAULT '',
			rank_percentile REAL NOT NULL DEFAULT 0,
			fetched_at DATETIME NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save upserts the stats row for login, stamping it with the current time.
func (s *Store) Save(login string, stats *github.UserStats) error {
	languages, err := json.Marshal(stats.Languages)
	if err != nil {
		return fmt.Errorf("storage: cannot encode languages: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO stats_cache
		 (login, account_name, total_followers, total_stars, total_issues,
		  commits_last_year, reviews_last_year, pull_requests_made,
		  pull_requests_merged, merged_percentage, repo_contributions,
		  languages, rank_level, rank_percentile, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(login) DO UPDATE SET
		  account_name = excluded.account_name,
		  total_followers = excluded.total_followers,
		  total_stars = excluded.total_stars,
		  total_issues = excluded.total_issues,
		  commits_last_year = excluded.commits_last_year,
		  reviews_last_year = excluded.reviews_last_year,
		  pull_requests_made = excluded.pull_requests_made,
		  pull_requests_merged = excluded.pull_requests_merged,
		  merged_percentage = excluded.merged_percentage,
		  repo_contributions = excluded.repo_contributions,
		  languages = excluded.languages,
		  rank_level = excluded.rank_level,
		  rank_percentile = excluded.rank_percentile,
		  fetched_at = excluded.fetched_at`,
		login,
		stats.AccountName,
		stats.TotalFollowers,
		stats.TotalStars,
		stats.TotalIssues,
		stats.CommitsLastYear,
		stats.ReviewsLastYear,
		stats.PullRequestsMade,
		stats.PullRequestsMerged,
		stats.MergedPercentage,
		stats.RepoContributions,
		string(languages),
		stats.Rank.Level,
		stats.Rank.Percentile,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// Get retrieves the cached stats row for login.
func (s *Store) Get(login string) (*CachedStats, error) {
	var (
		cached    CachedStats
		languages string
		fetchedAt any
	)
	err := s.db.QueryRow(
		`SELECT account_name, total_followers, total_stars, total_issues,
		        commits_last_year, reviews_last_year, pull_requests_made,
		        pull_requests_merged, merged_percentage, repo_contributions,
		        languages, rank_level, rank_percentile, fetched_at
		 FROM stats_cache
		 WHERE login = ?`,
		login,
	).Scan(
		&cached.Stats.AccountName,
		&cached.Stats.TotalFollowers,
		&cached.Stats.TotalStars,
		&cached.Stats.TotalIssues,
		&cached.Stats.CommitsLastYear,
		&cached.Stats.ReviewsLastYear,
		&cached.Stats.PullRequestsMade,
		&cached.Stats.PullRequestsMerged,
		&cached.Stats.MergedPercentage,
		&cached.Stats.RepoContributions,
		&languages,
		&cached.Stats.Rank.Level,
		&cached.Stats.Rank.Percentile,
		&fetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if err := json.Unmarshal([]byte(languages), &cached.Stats.Languages); err != nil {
		return nil, fmt.Errorf("storage: cannot decode languages: %w", err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := fetchedAt.(type) {
	case time.Time:
		cached.FetchedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			cached.FetchedAt = parsed
		}
	}

	return &cached, nil
}

// Delete removes the cached row for login, forcing the next render to hit
// the network.
func (s *Store) Delete(login string) error {
	_, err := s.db.Exec("DELETE FROM stats_cache WHERE login = ?", login)
	if err != nil {
		return fmt.Errorf("storage: cannot delete stats: %w", err)
	}
	return nil
}
