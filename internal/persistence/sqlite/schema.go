package sqlite

import (
	"context"
	"fmt"
)

// schemaStatements creates the catalog tables. The schedules table carries
// no foreign keys on purpose: reference validity is never enforced at write
// time, and a schedule may keep pointing at a deleted record.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS high_schools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id TEXT PRIMARY KEY,
		last_name TEXT NOT NULL,
		first_name TEXT NOT NULL,
		address TEXT NOT NULL,
		email TEXT NOT NULL,
		high_school_id TEXT NOT NULL,
		registered_at TEXT NOT NULL,
		participant_type TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS presenters (
		id TEXT PRIMARY KEY,
		last_name TEXT NOT NULL,
		first_name TEXT NOT NULL,
		occupation TEXT NOT NULL,
		main_phone TEXT NOT NULL DEFAULT '',
		mobile_phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		room_number INTEGER NOT NULL,
		building TEXT NOT NULL,
		capacity INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS topics (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		room_id TEXT NOT NULL,
		topic_id TEXT NOT NULL,
		presenter_id TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_session ON schedules (session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_room ON schedules (room_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_topic ON schedules (topic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_presenter ON schedules (presenter_id)`,
}

// CreateSchema applies the catalog schema. Statements are idempotent, so the
// call is safe at every process start.
func (cp *ConnectionPool) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := cp.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
