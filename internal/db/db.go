// Package db provides PostgreSQL storage for completed profile drafts.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talenthq/onboarding-engine/internal/types"
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

// ProfileRecord is a stored completed profile.
type ProfileRecord struct {
	SessionID uuid.UUID          `json:"session_id"`
	Draft     types.ProfileDraft `json:"draft"`
	CreatedAt time.Time          `json:"created_at"`
}

// SaveProfile stores a completed draft keyed by session ID. Re-saving the
// same session replaces the stored draft.
func (db *DB) SaveProfile(ctx context.Context, sessionID uuid.UUID, draft types.ProfileDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal profile draft: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (session_id, draft)
		 VALUES ($1, $2)
		 ON CONFLICT (session_id) DO UPDATE SET draft = $2, created_at = NOW()`,
		sessionID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", sessionID, err)
	}
	return nil
}

// GetProfile retrieves a stored profile by session ID. Returns nil when no
// profile exists for the session.
func (db *DB) GetProfile(ctx context.Context, sessionID uuid.UUID) (*ProfileRecord, error) {
	var (
		payload   []byte
		createdAt time.Time
	)
	err := db.pool.QueryRow(ctx,
		`SELECT draft, created_at FROM profiles WHERE session_id = $1`,
		sessionID,
	).Scan(&payload, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", sessionID, err)
	}

	var draft types.ProfileDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", sessionID, err)
	}

	return &ProfileRecord{SessionID: sessionID, Draft: draft, CreatedAt: createdAt}, nil
}

// ListProfiles returns stored profiles, newest first, up to limit.
func (db *DB) ListProfiles(ctx context.Context, limit int) ([]ProfileRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT session_id, draft, created_at FROM profiles ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var records []ProfileRecord
	for rows.Next() {
		var (
			rec     ProfileRecord
			payload []byte
		)
		if err := rows.Scan(&rec.SessionID, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Draft); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile %s: %w", rec.SessionID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profile rows: %w", err)
	}
	return records, nil
}
