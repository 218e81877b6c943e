package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mrevanzak/memovox/services"
)

type toolset struct {
	service services.Service
}

func (t *toolset) listRecordingsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := request.Params.Arguments["user_id"].(string)
	if !ok {
		return nil, errors.New("user_id must be a string")
	}

	limit := 20
	if l, ok := request.Params.Arguments["limit"].(float64); ok {
		limit = int(l)
	}

	recordings, err := t.service.ListRecordings(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	recordingsData, err := json.Marshal(recordings)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(recordingsData)), nil
}

func (t *toolset) searchRecordingsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, ok := request.Params.Arguments["query"].(string)
	if !ok {
		return nil, errors.New("query must be a string")
	}

	limit := 20
	if l, ok := request.Params.Arguments["limit"].(float64); ok {
		limit = int(l)
	}

	recordings, err := t.service.SearchRecordings(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	recordingsData, err := json.Marshal(recordings)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(recordingsData)), nil
}

func (t *toolset) getRecordingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recordingID, ok := request.Params.Arguments["recording_id"].(string)
	if !ok {
		return nil, errors.New("recording_id must be a string")
	}

	recording, err := t.service.GetRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if recording == nil {
		return nil, errors.New("recording not found")
	}

	recordingData, err := json.Marshal(recording)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(recordingData)), nil
}

func (t *toolset) previewImportHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, ok := request.Params.Arguments["file"].(string)
	if !ok {
		return nil, errors.New("file must be a string")
	}

	archive, err := base64.StdEncoding.DecodeString(file)
	if err != nil {
		return nil, errors.New("file must be base64 encoded")
	}

	preview, err := t.service.PreviewWhatsApp(ctx, archive)
	if err != nil {
		return nil, err
	}

	previewData, err := json.Marshal(preview)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(previewData)), nil
}
