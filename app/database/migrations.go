package database

import (
	"context"
	"fmt"
	"log"
)

type migration struct {
	name string
	sql  string
}

// Statements stick to the subset of DDL shared by Postgres and SQLite.
// Timestamps are unix milliseconds.
var migrations = []migration{
	{"create users", `
		CREATE TABLE IF NOT EXISTS users (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL UNIQUE,
			password     TEXT NOT NULL DEFAULT '',
			firebase_uid TEXT,
			role         TEXT NOT NULL DEFAULT 'user',
			created_at   BIGINT NOT NULL,
			updated_at   BIGINT NOT NULL
		)`},
	{"index users firebase uid", `
		CREATE UNIQUE INDEX IF NOT EXISTS users_firebase_uid_idx ON users (firebase_uid)`},
	{"create events", `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			date        BIGINT NOT NULL,
			end_date    BIGINT,
			image       TEXT NOT NULL,
			type        TEXT NOT NULL,
			status      TEXT NOT NULL,
			created_by  TEXT NOT NULL REFERENCES users (id),
			created_at  BIGINT NOT NULL
		)`},
	{"create teams", `
		CREATE TABLE IF NOT EXISTS teams (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL UNIQUE,
			event_id     TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
			leader_id    TEXT NOT NULL REFERENCES users (id),
			project_idea TEXT NOT NULL DEFAULT '',
			created_at   BIGINT NOT NULL
		)`},
	{"create team members", `
		CREATE TABLE IF NOT EXISTS team_members (
			team_id TEXT NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users (id),
			ord     INTEGER NOT NULL,
			PRIMARY KEY (team_id, user_id)
		)`},
	{"create submissions", `
		CREATE TABLE IF NOT EXISTS submissions (
			id             TEXT PRIMARY KEY,
			event_id       TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
			team_id        TEXT NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
			project_title  TEXT NOT NULL,
			description    TEXT NOT NULL,
			repo_link      TEXT NOT NULL,
			demo_link      TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL,
			submitted_by   TEXT NOT NULL REFERENCES users (id),
			grade_score    INTEGER,
			grade_feedback TEXT,
			graded_by      TEXT,
			graded_at      BIGINT,
			submitted_at   BIGINT NOT NULL,
			updated_at     BIGINT NOT NULL
		)`},
	{"index submissions event team", `
		CREATE UNIQUE INDEX IF NOT EXISTS submissions_event_team_idx ON submissions (event_id, team_id)`},
	{"create submission attachments", `
		CREATE TABLE IF NOT EXISTS submission_attachments (
			submission_id TEXT NOT NULL REFERENCES submissions (id) ON DELETE CASCADE,
			ord           INTEGER NOT NULL,
			name          TEXT NOT NULL,
			url           TEXT NOT NULL,
			type          TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (submission_id, ord)
		)`},
	{"create grade history", `
		CREATE TABLE IF NOT EXISTS grade_history (
			id            TEXT PRIMARY KEY,
			submission_id TEXT NOT NULL REFERENCES submissions (id) ON DELETE CASCADE,
			score         INTEGER NOT NULL,
			feedback      TEXT NOT NULL,
			graded_by     TEXT NOT NULL REFERENCES users (id),
			graded_at     BIGINT NOT NULL
		)`},
	{"create attendance", `
		CREATE TABLE IF NOT EXISTS attendance (
			id        TEXT PRIMARY KEY,
			event_id  TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
			user_id   TEXT NOT NULL REFERENCES users (id),
			status    TEXT NOT NULL,
			marked_at BIGINT NOT NULL
		)`},
	{"index attendance event user", `
		CREATE UNIQUE INDEX IF NOT EXISTS attendance_event_user_idx ON attendance (event_id, user_id)`},
}

// RunMigrations applies the schema. Every statement is idempotent, so it is
// safe to run at each startup.
func (s *Store) RunMigrations(ctx context.Context) error {
	log.Println("[database] running migrations...")

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			log.Printf("[database] migration %q failed: %v", m.name, err)
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
	}

	log.Println("[database] migrations completed successfully")
	return nil
}
