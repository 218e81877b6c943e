package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/mrevanzak/memovox/audio"
	"github.com/mrevanzak/memovox/models"
	"github.com/mrevanzak/memovox/whatsapp"
)

// errSkipDuplicate marks a message already imported for the same owner and
// filename. It counts as skipped, not failed.
var errSkipDuplicate = errors.New("duplicate recording")

// ImportWhatsApp runs the full import pipeline for one chat-export archive.
// It only returns an error for archive-level validation failures; every
// per-message problem is accounted for inside the result.
func (s *service) ImportWhatsApp(ctx context.Context, archiveData []byte, importerID string, opts models.ImportOptions) (models.ImportResult, error) {
	archive, err := whatsapp.OpenArchive(archiveData)
	if err != nil {
		return models.ImportResult{}, err
	}

	parsed := whatsapp.ParseChatLog(archive.ChatLog)

	result := models.ImportResult{
		Failed:      []models.ImportFailure{},
		ParseErrors: parsed.Errors,
		Recordings:  []models.ImportedRecording{},
	}

	resolver := newSenderResolver(s.db, importerID, opts)

	// Messages are processed strictly in log order. The resolver cache and
	// the duplicate check both depend on sequential processing.
	for _, msg := range parsed.AudioMessages {
		rec, err := s.importMessage(ctx, archive, resolver, importerID, msg)
		switch {
		case errors.Is(err, errSkipDuplicate):
			result.Skipped++
		case err != nil:
			result.Failed = append(result.Failed, models.ImportFailure{
				Filename: msg.Filename,
				Error:    err.Error(),
			})
		default:
			result.Imported++
			result.Recordings = append(result.Recordings, models.ImportedRecording{
				ID:       rec.ID,
				Filename: rec.OriginalFilename,
			})
		}
	}

	if result.Imported > 0 && s.transcriber != nil {
		count := result.Imported
		go func() {
			if err := s.transcriber.ProcessPendingBatch(context.Background(), count); err != nil {
				log.Printf("transcription batch failed: %v", err)
			}
		}()
	}

	return result, nil
}

// importMessage drives one parsed message through sender resolution,
// duplicate check, materialization and persistence. A returned error only
// affects this message; the batch continues.
func (s *service) importMessage(ctx context.Context, archive *whatsapp.Archive, resolver *senderResolver, importerID string, msg models.ParsedAudioMessage) (*models.Recording, error) {
	senderID, err := resolver.Resolve(ctx, msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender: %v", err)
	}

	duplicate, err := s.db.HasRecording(ctx, senderID, msg.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate: %v", err)
	}
	if duplicate {
		return nil, errSkipDuplicate
	}

	data, ok := archive.AudioFiles[msg.Filename]
	if !ok {
		return nil, errors.New("Audio file not found in ZIP")
	}

	url, size, err := s.materializeAudio(ctx, data, msg.Filename)
	if err != nil {
		return nil, err
	}

	rec := models.Recording{
		ID:               uuid.NewString(),
		UserID:           senderID,
		SenderID:         senderID,
		AudioURL:         url,
		RecordedAt:       msg.Timestamp,
		Notes:            msg.Notes,
		OriginalFilename: msg.Filename,
		SizeBytes:        size,
		ImportSource:     models.ImportSourceWhatsApp,
	}

	if err := s.db.InsertRecording(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save recording: %v", err)
	}

	return &rec, nil
}

// materializeAudio converts the raw bytes if the format needs normalizing,
// then uploads under a randomized key. It returns the stored URL and the
// uploaded byte size.
func (s *service) materializeAudio(ctx context.Context, data []byte, filename string) (string, int64, error) {
	if audio.NeedsConversion(filename) {
		converted, convertedName, err := s.converter.Convert(ctx, data, filename)
		if err != nil {
			return "", 0, err
		}
		data, filename = converted, convertedName
	}

	key := audio.StorageKey(filename)
	url, err := s.storage.Upload(ctx, key, data, audio.ContentTypeFor(filename))
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload audio: %v", err)
	}

	return url, int64(len(data)), nil
}
