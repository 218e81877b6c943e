package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mrevanzak/memovox/api"
	"github.com/mrevanzak/memovox/audio"
	"github.com/mrevanzak/memovox/config"
	"github.com/mrevanzak/memovox/db"
	"github.com/mrevanzak/memovox/services"
	"github.com/mrevanzak/memovox/storage"
	"github.com/mrevanzak/memovox/transcribe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	if err := os.MkdirAll(cfg.StoreDir, 0755); err != nil {
		log.Fatalf("Failed to create store directory: %v", err)
	}

	database, err := db.NewDB(ctx, cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	mediaDir := filepath.Join(cfg.StoreDir, "media")
	mediaStore, err := storage.NewLocalStorage(mediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	converter := audio.NewFFmpegConverter(cfg.FFmpegPath)

	var transcriber transcribe.Transcriber
	if cfg.OpenAIAPIKey != "" {
		transcriber = transcribe.NewOpenAITranscriber(cfg.OpenAIAPIKey, database, mediaStore, cfg.TranscriptionModel, cfg.KeywordModel)
	} else {
		log.Println("OPENAI_API_KEY not set, transcription disabled")
	}

	service := services.NewService(database, mediaStore, converter, transcriber)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	apiServer := api.NewServer(service, cfg.Port, mediaDir)

	go func() {
		<-c
		log.Println("shutting down...")

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := apiServer.Stop(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Println("Server gracefully stopped")
	}()

	log.Printf("memovox server starting on port %s", cfg.Port)
	if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
}
