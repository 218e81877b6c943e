package transcribe

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/mrevanzak/memovox/db"
	"github.com/mrevanzak/memovox/models"
	"github.com/mrevanzak/memovox/storage"
)

const keywordPrompt = "Extract up to 5 short keywords that describe this voice memo transcript. " +
	"Reply with the keywords only, comma separated, no other text."

// Transcriber processes recordings that are still waiting for a transcript.
type Transcriber interface {
	ProcessPendingBatch(ctx context.Context, limit int) error
}

type openAITranscriber struct {
	client             *openai.Client
	db                 db.DB
	storage            storage.Storage
	transcriptionModel string
	keywordModel       string
}

// NewOpenAITranscriber creates a Transcriber backed by the OpenAI speech and
// chat APIs
func NewOpenAITranscriber(apiKey string, database db.DB, store storage.Storage, transcriptionModel, keywordModel string) Transcriber {
	return &openAITranscriber{
		client:             openai.NewClient(apiKey),
		db:                 database,
		storage:            store,
		transcriptionModel: transcriptionModel,
		keywordModel:       keywordModel,
	}
}

// ProcessPendingBatch transcribes and tags up to limit pending recordings.
// One recording failing is logged and does not stop the rest of the batch.
func (t *openAITranscriber) ProcessPendingBatch(ctx context.Context, limit int) error {
	pending, err := t.db.ListPendingTranscriptions(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list pending recordings: %v", err)
	}

	for _, rec := range pending {
		if err := t.process(ctx, rec); err != nil {
			log.Printf("failed to transcribe recording %s: %v", rec.ID, err)
		}
	}

	return nil
}

func (t *openAITranscriber) process(ctx context.Context, rec models.Recording) error {
	reader, err := t.storage.Open(ctx, storage.KeyFromURL(rec.AudioURL))
	if err != nil {
		return fmt.Errorf("failed to open audio: %v", err)
	}
	defer reader.Close()

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.transcriptionModel,
		Reader:   reader,
		FilePath: rec.OriginalFilename,
	})
	if err != nil {
		return fmt.Errorf("failed to transcribe audio: %v", err)
	}

	if err := t.db.SetTranscript(ctx, rec.ID, resp.Text); err != nil {
		return err
	}

	words, err := t.extractKeywords(ctx, resp.Text)
	if err != nil {
		// The transcript is already saved; keywords are best effort.
		log.Printf("failed to extract keywords for recording %s: %v", rec.ID, err)
		return nil
	}

	keywords := make([]models.Keyword, 0, len(words))
	for _, word := range words {
		keywords = append(keywords, models.Keyword{
			ID:          uuid.NewString(),
			RecordingID: rec.ID,
			Word:        word,
		})
	}

	return t.db.InsertKeywords(ctx, keywords)
}

func (t *openAITranscriber) extractKeywords(ctx context.Context, transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, nil
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.keywordModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: keywordPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	var words []string
	for _, raw := range strings.Split(resp.Choices[0].Message.Content, ",") {
		word := strings.ToLower(strings.TrimSpace(raw))
		if word != "" {
			words = append(words, word)
		}
	}

	return words, nil
}
