package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thesavant42/pawsome/internal/models"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createKVTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create kv schema: %w", err)
	}

	if _, err := conn.Exec(createMatchHistoryTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create match history schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Get returns the value stored under key; found is false if there is none
func (db *DB) Get(key string) (value string, found bool, err error) {
	err = db.conn.QueryRow(selectKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value
func (db *DB) Put(key, value string) error {
	if _, err := db.conn.Exec(upsertKV, key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key
func (db *DB) Delete(key string) error {
	if _, err := db.conn.Exec(deleteKV, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// RecordMatch appends a resolved match to the history
func (db *DB) RecordMatch(m models.MatchResult) error {
	_, err := db.conn.Exec(insertMatch, m.ID, m.Dog.Name, m.Dog.Breed)
	if err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	return nil
}

// RecentMatches returns up to limit matches, newest first
func (db *DB) RecentMatches(limit int) ([]models.MatchRecord, error) {
	rows, err := db.conn.Query(selectRecentMatches, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match history: %w", err)
	}
	defer rows.Close()

	var records []models.MatchRecord
	for rows.Next() {
		var r models.MatchRecord
		var matchedAt string
		if err := rows.Scan(&r.DogID, &r.Name, &r.Breed, &matchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		r.MatchedAt, _ = parseTimestamp(matchedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match history: %w", err)
	}
	return records, nil
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
