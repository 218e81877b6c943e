package services

import (
	"context"
	"fmt"

	"github.com/mrevanzak/memovox/audio"
	"github.com/mrevanzak/memovox/db"
	"github.com/mrevanzak/memovox/models"
	"github.com/mrevanzak/memovox/storage"
	"github.com/mrevanzak/memovox/transcribe"
	"github.com/mrevanzak/memovox/whatsapp"
)

type Service interface {
	PreviewWhatsApp(ctx context.Context, archive []byte) (models.WhatsAppPreview, error)
	ImportWhatsApp(ctx context.Context, archive []byte, importerID string, opts models.ImportOptions) (models.ImportResult, error)
	ListRecordings(ctx context.Context, userID string, limit int) ([]models.Recording, error)
	GetRecording(ctx context.Context, id string) (*models.Recording, error)
	SearchRecordings(ctx context.Context, query string, limit int) ([]models.Recording, error)
}

type service struct {
	db          db.DB
	storage     storage.Storage
	converter   audio.Converter
	transcriber transcribe.Transcriber
}

// NewService creates a new Service instance with the provided collaborators.
// transcriber may be nil, in which case imports skip the transcription
// trigger.
func NewService(db db.DB, storage storage.Storage, converter audio.Converter, transcriber transcribe.Transcriber) Service {
	return &service{
		db:          db,
		storage:     storage,
		converter:   converter,
		transcriber: transcriber,
	}
}

// PreviewWhatsApp validates and parses an archive without side effects, so
// the caller can present a sender-to-user mapping choice before importing
func (s *service) PreviewWhatsApp(_ context.Context, archiveData []byte) (models.WhatsAppPreview, error) {
	archive, err := whatsapp.OpenArchive(archiveData)
	if err != nil {
		return models.WhatsAppPreview{}, err
	}

	parsed := whatsapp.ParseChatLog(archive.ChatLog)

	preview := models.WhatsAppPreview{
		SenderNames:         []string{},
		SenderCounts:        make(map[string]int),
		TotalAudioFiles:     len(archive.AudioFiles),
		TotalParsedMessages: len(parsed.AudioMessages),
		ParseErrors:         parsed.Errors,
	}

	for _, msg := range parsed.AudioMessages {
		if preview.SenderCounts[msg.Sender] == 0 {
			preview.SenderNames = append(preview.SenderNames, msg.Sender)
		}
		preview.SenderCounts[msg.Sender]++
	}

	return preview, nil
}

// ListRecordings retrieves a user's recordings
func (s *service) ListRecordings(ctx context.Context, userID string, limit int) ([]models.Recording, error) {
	recordings, err := s.db.ListRecordings(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %v", err)
	}

	return recordings, nil
}

// GetRecording retrieves a single recording by id
func (s *service) GetRecording(ctx context.Context, id string) (*models.Recording, error) {
	return s.db.GetRecording(ctx, id)
}

// SearchRecordings retrieves recordings whose transcript or notes match the
// query
func (s *service) SearchRecordings(ctx context.Context, query string, limit int) ([]models.Recording, error) {
	recordings, err := s.db.SearchRecordings(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search recordings: %v", err)
	}

	return recordings, nil
}
