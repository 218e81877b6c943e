package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mrevanzak/memovox/models"
)

// DB handles storage in SQLite
type DB interface {
	InsertUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByDisplayName(ctx context.Context, name string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertRecording(ctx context.Context, rec models.Recording) error
	GetRecording(ctx context.Context, id string) (*models.Recording, error)
	HasRecording(ctx context.Context, userID, originalFilename string) (bool, error)
	ListRecordings(ctx context.Context, userID string, limit int) ([]models.Recording, error)
	SearchRecordings(ctx context.Context, query string, limit int) ([]models.Recording, error)
	FindSenderMapping(ctx context.Context, accountID, externalName string) (*models.SenderMapping, error)
	UpsertSenderMapping(ctx context.Context, mapping models.SenderMapping) error
	ListPendingTranscriptions(ctx context.Context, limit int) ([]models.Recording, error)
	SetTranscript(ctx context.Context, recordingID, transcript string) error
	InsertKeywords(ctx context.Context, keywords []models.Keyword) error
	ListKeywords(ctx context.Context, recordingID string) ([]models.Keyword, error)
	Close() error
}

type db struct {
	db *sql.DB
}

// NewDB creates a new database
func NewDB(ctx context.Context, dbPath string) (DB, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %v", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s/memovox.db?_foreign_keys=on", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	db := &db{conn}
	if err := db.initDB(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	return db, nil
}

func (s *db) initDB(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`)
	if err != nil {
		return fmt.Errorf("failed to set foreign keys pragma: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`)
	if err != nil {
		return fmt.Errorf("failed to set journal mode: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE,
			display_name TEXT,
			is_shadow BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			sender_id TEXT NOT NULL,
			audio_url TEXT NOT NULL,
			recorded_at TIMESTAMP NOT NULL,
			notes TEXT,
			original_filename TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			import_source TEXT NOT NULL DEFAULT 'app',
			transcript TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (sender_id) REFERENCES users(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create recordings table: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sender_mappings (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			external_name TEXT NOT NULL,
			target_user_id TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (account_id, external_name),
			FOREIGN KEY (target_user_id) REFERENCES users(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create sender_mappings table: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS keywords (
			id TEXT PRIMARY KEY,
			recording_id TEXT NOT NULL,
			word TEXT NOT NULL,
			FOREIGN KEY (recording_id) REFERENCES recordings(id)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create keywords table: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_recordings_user_filename ON recordings(user_id, original_filename);`)
	if err != nil {
		return fmt.Errorf("failed to create user_filename index: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_recordings_recorded_at ON recordings(recorded_at);`)
	if err != nil {
		return fmt.Errorf("failed to create recorded_at index: %v", err)
	}

	return nil
}

func (s *db) Close() error {
	return s.db.Close()
}
