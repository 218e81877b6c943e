package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/mrevanzak/memovox/audio"
	"github.com/mrevanzak/memovox/config"
	"github.com/mrevanzak/memovox/db"
	"github.com/mrevanzak/memovox/mcp"
	"github.com/mrevanzak/memovox/services"
	"github.com/mrevanzak/memovox/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.NewDB(context.Background(), cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	mediaStore, err := storage.NewLocalStorage(filepath.Join(cfg.StoreDir, "media"), cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	service := services.NewService(database, mediaStore, audio.NewFFmpegConverter(cfg.FFmpegPath), nil)

	mcpServer := mcp.NewMCPServer(service, "memovox MCP API", "1.0.0")
	if err := mcp.StartMCPServer(mcpServer); err != nil {
		log.Fatalf("Failed to start MCP server: %v", err)
	}
}
