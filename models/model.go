package models

import "time"

// ImportSource marks how a recording entered the system.
type ImportSource string

const (
	ImportSourceApp      ImportSource = "app"
	ImportSourceWhatsApp ImportSource = "whatsapp"
)

// User represents an account. Shadow users are placeholder accounts created
// for chat senders with no real account yet; they carry a synthetic email.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsShadow    bool      `json:"is_shadow"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recording represents a stored voice memo. Transcript is nil until the
// transcription worker has processed it.
type Recording struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	SenderID         string       `json:"sender_id"`
	AudioURL         string       `json:"audio_url"`
	RecordedAt       time.Time    `json:"recorded_at"`
	Notes            string       `json:"notes,omitempty"`
	OriginalFilename string       `json:"original_filename"`
	SizeBytes        int64        `json:"size_bytes"`
	ImportSource     ImportSource `json:"import_source"`
	Transcript       *string      `json:"transcript,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Keyword is a tag derived from a recording's transcript.
type Keyword struct {
	ID          string `json:"id"`
	RecordingID string `json:"recording_id"`
	Word        string `json:"word"`
}

// SenderMapping is a durable association, scoped to the importing account,
// from a chat display name to an internal user. Unique per (account, name);
// re-saving updates the target user.
type SenderMapping struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	ExternalName string    `json:"external_name"`
	TargetUserID string    `json:"target_user_id"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ParsedAudioMessage is one audio attachment extracted from a chat log.
// Sender is the display name exactly as it appears in the log, not yet
// resolved to a user.
type ParsedAudioMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Filename  string    `json:"filename"`
	Notes     string    `json:"notes,omitempty"`
}

// ParseResult holds the outcome of one chat-log parse pass. Errors are
// non-fatal: malformed lines are skipped and described here.
type ParseResult struct {
	AudioMessages []ParsedAudioMessage `json:"audio_messages"`
	Errors        []string             `json:"errors"`
}

// ImportOptions carries the caller's sender disambiguation choices.
type ImportOptions struct {
	// SenderMappings maps chat display names to user IDs chosen by the caller.
	SenderMappings map[string]string `json:"sender_mappings,omitempty"`
	// SaveMappings persists the explicit mappings for future imports.
	SaveMappings bool `json:"save_mappings,omitempty"`
}

// ImportFailure describes one message that could not be imported.
type ImportFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ImportedRecording identifies one recording created by an import.
type ImportedRecording struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// ImportResult is the full accounting of one import call. Per-message
// problems land in Failed; the call as a whole only fails on archive-level
// validation.
type ImportResult struct {
	Imported    int                 `json:"imported"`
	Skipped     int                 `json:"skipped"`
	Failed      []ImportFailure     `json:"failed"`
	ParseErrors []string            `json:"parse_errors"`
	Recordings  []ImportedRecording `json:"recordings"`
}

// WhatsAppPreview summarizes an archive before an import is committed, so the
// caller can present a sender-to-user mapping choice first.
type WhatsAppPreview struct {
	SenderNames         []string       `json:"sender_names"`
	SenderCounts        map[string]int `json:"sender_counts"`
	TotalAudioFiles     int            `json:"total_audio_files"`
	TotalParsedMessages int            `json:"total_parsed_messages"`
	ParseErrors         []string       `json:"parse_errors"`
}
