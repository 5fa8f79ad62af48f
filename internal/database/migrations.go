package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is a named, ordered set of schema statements. Migrations
// are embedded rather than read from disk so a fresh deployment needs
// nothing beyond the binary.
type migration struct {
	version    string
	statements []string
}

var migrations = []migration{
	{
		version: "001_topics_quizzes",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS topics (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				summary TEXT NOT NULL DEFAULT '',
				content TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				difficulty INT NOT NULL DEFAULT 1,
				reading_time_minutes INT NOT NULL DEFAULT 5,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS quizzes (
				id TEXT PRIMARY KEY,
				topic_id TEXT NOT NULL,
				title TEXT NOT NULL,
				questions JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS quiz_attempts (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				quiz_id TEXT NOT NULL,
				score INT NOT NULL,
				total INT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
	{
		version: "002_scenarios",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS scenarios (
				id TEXT PRIMARY KEY,
				seq BIGSERIAL,
				title TEXT NOT NULL,
				description TEXT NOT NULL,
				category TEXT NOT NULL,
				difficulty INT NOT NULL,
				descriptor JSONB NOT NULL,
				impacts JSONB NOT NULL,
				popularity INT NOT NULL DEFAULT 0,
				related_topic_ids TEXT[] NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_scenarios_category ON scenarios (category)`,
			`CREATE INDEX IF NOT EXISTS idx_scenarios_popularity ON scenarios (popularity DESC, id ASC)`,
			`CREATE TABLE IF NOT EXISTS user_scenarios (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				scenario_id TEXT NOT NULL,
				notes TEXT NOT NULL DEFAULT '',
				favorite BOOLEAN NOT NULL DEFAULT FALSE,
				overrides JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_user_scenarios_user ON user_scenarios (user_id)`,
		},
	},
	{
		version: "003_users_chat",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS chat_messages (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL DEFAULT '',
				question TEXT NOT NULL,
				answer TEXT NOT NULL,
				fallback BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
	{
		version: "004_inference_logs",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS inference_logs (
				id TEXT PRIMARY KEY,
				provider TEXT NOT NULL,
				model TEXT NOT NULL,
				operation TEXT NOT NULL,
				tokens_used INT NOT NULL DEFAULT 0,
				latency_ms INT NOT NULL DEFAULT 0,
				status TEXT NOT NULL,
				error_message TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_inference_logs_created ON inference_logs (created_at)`,
		},
	},
}

// RunMigrations applies all pending migrations in order.
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	logger.Info("checking for pending database migrations")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	pending := 0
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %s: %w", m.version, err)
		}

		for _, stmt := range m.statements {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migration %s failed: %w", m.version, err)
			}
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.version, err)
		}

		logger.Info("applied migration", "version", m.version)
		pending++
	}

	if pending == 0 {
		logger.Info("database schema up to date")
	}

	return nil
}
