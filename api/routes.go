package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mrevanzak/memovox/models"
	"github.com/mrevanzak/memovox/whatsapp"
)

func (s *Server) handlePreviewWhatsApp(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	archive, ok := s.decodeArchive(c, req.File)
	if !ok {
		return
	}

	preview, err := s.service.PreviewWhatsApp(c.Request.Context(), archive)
	if err != nil {
		s.archiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    preview,
	})
}

func (s *Server) handleImportWhatsApp(c *gin.Context) {
	importerID := c.GetHeader("X-User-ID")
	if importerID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing X-User-ID header",
		})
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	archive, ok := s.decodeArchive(c, req.File)
	if !ok {
		return
	}

	result, err := s.service.ImportWhatsApp(c.Request.Context(), archive, importerID, models.ImportOptions{
		SenderMappings: req.SenderMappings,
		SaveMappings:   req.SaveMappings,
	})
	if err != nil {
		s.archiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

func (s *Server) handleListRecordings(c *gin.Context) {
	userID := c.Query("user")
	if userID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing user parameter",
		})
		return
	}

	recordings, err := s.service.ListRecordings(c.Request.Context(), userID, queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to list recordings: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    recordings,
	})
}

func (s *Server) handleSearchRecordings(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Missing q parameter",
		})
		return
	}

	recordings, err := s.service.SearchRecordings(c.Request.Context(), query, queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to search recordings: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    recordings,
	})
}

func (s *Server) handleGetRecording(c *gin.Context) {
	recording, err := s.service.GetRecording(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to get recording: %v", err),
		})
		return
	}
	if recording == nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "Recording not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    recording,
	})
}

func (s *Server) decodeArchive(c *gin.Context, file string) ([]byte, bool) {
	if file == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "File is required",
		})
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "File must be base64 encoded",
		})
		return nil, false
	}

	return data, true
}

// archiveError maps archive-level validation failures to 400; anything else
// is a server-side failure.
func (s *Server) archiveError(c *gin.Context, err error) {
	if errors.Is(err, whatsapp.ErrInvalidFileType) || errors.Is(err, whatsapp.ErrMissingChatLog) {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: fmt.Sprintf("Import failed: %v", err),
	})
}

func queryLimit(c *gin.Context) int {
	limit := 50 // Default limit
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}
