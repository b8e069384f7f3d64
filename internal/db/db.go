// Package db provides PostgreSQL database access for session storage.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateSession creates a new planning session record. The ID is supplied by
// the caller so that live sessions and their stored records share one
// identifier.
func (db *DB) CreateSession(ctx context.Context, id uuid.UUID, destination, strategy string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO planning_sessions (id, destination, strategy, status)
		 VALUES ($1, $2, $3, 'running')`,
		id, destination, strategy,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// CompleteSession marks a planning session as completed
func (db *DB) CompleteSession(ctx context.Context, sessionID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE planning_sessions SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// SavePass stores a JSON artifact for a session pass. One row per
// session and pass number; re-running a pass overwrites it.
func (db *DB) SavePass(ctx context.Context, sessionID uuid.UUID, pass int, kind string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal pass artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO session_passes (session_id, pass, kind, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, pass, kind) DO UPDATE SET content = $4, created_at = NOW()`,
		sessionID, pass, kind, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save pass %d artifact %s: %w", pass, kind, err)
	}
	return nil
}

// GetPass retrieves a pass artifact by session ID, pass number, and kind
func (db *DB) GetPass(ctx context.Context, sessionID uuid.UUID, pass int, kind string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM session_passes WHERE session_id = $1 AND pass = $2 AND kind = $3`,
		sessionID, pass, kind,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pass %d artifact %s: %w", pass, kind, err)
	}
	return content, nil
}

// GetLatestPass retrieves the most recent artifact of a kind for a session
func (db *DB) GetLatestPass(ctx context.Context, sessionID uuid.UUID, kind string) ([]byte, int, error) {
	var content []byte
	var pass int
	err := db.pool.QueryRow(ctx,
		`SELECT content, pass FROM session_passes
		 WHERE session_id = $1 AND kind = $2
		 ORDER BY pass DESC LIMIT 1`,
		sessionID, kind,
	).Scan(&content, &pass)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to get latest %s artifact: %w", kind, err)
	}
	return content, pass, nil
}

// GetSession retrieves a planning session by ID
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*SessionRecord, error) {
	var rec SessionRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, destination, strategy, status, created_at, completed_at
		 FROM planning_sessions WHERE id = $1`,
		sessionID,
	).Scan(&rec.ID, &rec.Destination, &rec.Strategy, &rec.Status, &rec.CreatedAt, &rec.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &rec, nil
}

// SessionFilters holds optional filters for listing sessions
type SessionFilters struct {
	Destination string
	Status      string
	Limit       int
}

// ListSessions retrieves sessions with optional filters
func (db *DB) ListSessions(ctx context.Context, filters SessionFilters) ([]SessionRecord, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, destination, strategy, status, created_at, completed_at
		FROM planning_sessions WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Destination != "" {
		query += fmt.Sprintf(" AND destination ILIKE $%d", argNum)
		args = append(args, "%"+filters.Destination+"%")
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.Destination, &rec.Strategy, &rec.Status, &rec.CreatedAt, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeleteSession deletes a planning session and all its pass artifacts (via cascade)
func (db *DB) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM planning_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}
