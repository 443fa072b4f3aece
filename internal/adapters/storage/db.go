package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		confirmed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS past_papers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		subject TEXT NOT NULL,
		year INTEGER NOT NULL,
		session TEXT NOT NULL,
		paper_type TEXT NOT NULL,
		question_paper_url TEXT,
		mark_scheme_url TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS video_lessons (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		topic TEXT NOT NULL,
		unit TEXT NOT NULL,
		description TEXT,
		duration TEXT,
		youtube_url TEXT NOT NULL,
		notes_url TEXT,
		thumbnail_url TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		resource_type TEXT NOT NULL,
		subject TEXT,
		file_url TEXT NOT NULL,
		file_size TEXT,
		downloads INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS blog_posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		excerpt TEXT,
		content TEXT NOT NULL,
		category TEXT,
		tags TEXT,
		read_time TEXT,
		published INTEGER NOT NULL DEFAULT 0,
		published_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS testimonials (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		quote TEXT NOT NULL,
		image_url TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		replied INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_past_papers_year ON past_papers(year);
	CREATE INDEX IF NOT EXISTS idx_blog_posts_published ON blog_posts(published);
	CREATE INDEX IF NOT EXISTS idx_contact_messages_is_read ON contact_messages(is_read);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
