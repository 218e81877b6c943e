package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mrevanzak/memovox/services"
)

// Server represents the API handler
type Server struct {
	service  services.Service
	mediaDir string
	router   *gin.Engine
	server   *http.Server
}

// NewServer creates a new API server. mediaDir is served statically under
// /media so stored audio URLs resolve.
func NewServer(service services.Service, port, mediaDir string) *Server {
	router := gin.Default()

	return &Server{
		service:  service,
		mediaDir: mediaDir,
		router:   router,
		server: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
	}
}

// PreviewRequest represents the request body for previewing an import
type PreviewRequest struct {
	File string `json:"file"` // base64-encoded ZIP archive
}

// ImportRequest represents the request body for running an import
type ImportRequest struct {
	File           string            `json:"file"` // base64-encoded ZIP archive
	SenderMappings map[string]string `json:"sender_mappings,omitempty"`
	SaveMappings   bool              `json:"save_mappings,omitempty"`
}

// Response represents a generic API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// RegisterRoutes registers all API routes
func (s *Server) registerRoutes(router *gin.Engine) {
	router.Static("/media", s.mediaDir)

	api := router.Group("/api")
	{
		api.POST("/whatsapp/preview", s.handlePreviewWhatsApp)
		api.POST("/whatsapp/import", s.handleImportWhatsApp)
		api.GET("/recordings", s.handleListRecordings)
		api.GET("/recordings/:id", s.handleGetRecording)
		api.GET("/search", s.handleSearchRecordings)
	}
}

func (s *Server) Start() error {
	s.registerRoutes(s.router)

	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
