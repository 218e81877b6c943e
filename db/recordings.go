package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrevanzak/memovox/models"
)

const recordingColumns = "id, user_id, sender_id, audio_url, recorded_at, notes, original_filename, size_bytes, import_source, transcript, created_at"

// InsertRecording stores a recording in the database
func (s *db) InsertRecording(ctx context.Context, rec models.Recording) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recordings
		(id, user_id, sender_id, audio_url, recorded_at, notes, original_filename, size_bytes, import_source, transcript)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.SenderID, rec.AudioURL, rec.RecordedAt, rec.Notes,
		rec.OriginalFilename, rec.SizeBytes, string(rec.ImportSource), rec.Transcript,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recording: %v", err)
	}
	return nil
}

// GetRecording retrieves a recording by id
func (s *db) GetRecording(ctx context.Context, id string) (*models.Recording, error) {
	rec, err := scanRecording(s.db.QueryRowContext(ctx,
		"SELECT "+recordingColumns+" FROM recordings WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HasRecording reports whether a recording already exists for the given
// owner and original filename. This is the duplicate signal for imports.
func (s *db) HasRecording(ctx context.Context, userID, originalFilename string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM recordings WHERE user_id = ? AND original_filename = ?",
		userID, originalFilename,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate recording: %v", err)
	}
	return count > 0, nil
}

// ListRecordings retrieves recordings owned by a user, newest first
func (s *db) ListRecordings(ctx context.Context, userID string, limit int) ([]models.Recording, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordingColumns+" FROM recordings WHERE user_id = ? ORDER BY recorded_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecordings(rows)
}

// SearchRecordings retrieves recordings whose transcript or notes match the query
func (s *db) SearchRecordings(ctx context.Context, query string, limit int) ([]models.Recording, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordingColumns+" FROM recordings WHERE transcript LIKE ? OR notes LIKE ? ORDER BY recorded_at DESC LIMIT ?",
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecordings(rows)
}

// ListPendingTranscriptions retrieves recordings that have no transcript yet,
// oldest first
func (s *db) ListPendingTranscriptions(ctx context.Context, limit int) ([]models.Recording, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordingColumns+" FROM recordings WHERE transcript IS NULL ORDER BY created_at ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecordings(rows)
}

// SetTranscript fills in a recording's transcript
func (s *db) SetTranscript(ctx context.Context, recordingID, transcript string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE recordings SET transcript = ? WHERE id = ?", transcript, recordingID)
	if err != nil {
		return fmt.Errorf("failed to set transcript: %v", err)
	}
	return nil
}

// InsertKeywords stores the keywords derived from a recording's transcript
func (s *db) InsertKeywords(ctx context.Context, keywords []models.Keyword) error {
	for _, kw := range keywords {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO keywords (id, recording_id, word) VALUES (?, ?, ?)",
			kw.ID, kw.RecordingID, kw.Word,
		)
		if err != nil {
			return fmt.Errorf("failed to insert keyword: %v", err)
		}
	}
	return nil
}

// ListKeywords retrieves the keywords tagged on a recording
func (s *db) ListKeywords(ctx context.Context, recordingID string) ([]models.Keyword, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, recording_id, word FROM keywords WHERE recording_id = ?", recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []models.Keyword
	for rows.Next() {
		kw := models.Keyword{}
		if err := rows.Scan(&kw.ID, &kw.RecordingID, &kw.Word); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}

	return keywords, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecording(row scannable) (models.Recording, error) {
	rec := models.Recording{}
	var source string
	err := row.Scan(&rec.ID, &rec.UserID, &rec.SenderID, &rec.AudioURL, &rec.RecordedAt,
		&rec.Notes, &rec.OriginalFilename, &rec.SizeBytes, &source, &rec.Transcript, &rec.CreatedAt)
	rec.ImportSource = models.ImportSource(source)
	return rec, err
}

func collectRecordings(rows *sql.Rows) ([]models.Recording, error) {
	var recordings []models.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, rows.Err()
}
