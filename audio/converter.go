package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ConversionErrorCode classifies why a conversion failed.
type ConversionErrorCode string

const (
	// NoAudioStream means the input had no decodable audio track.
	NoAudioStream ConversionErrorCode = "NO_AUDIO_STREAM"
	// ConversionFailed covers every other codec or container failure.
	ConversionFailed ConversionErrorCode = "CONVERSION_FAILED"
)

// ConversionError is a typed conversion failure.
type ConversionError struct {
	Code    ConversionErrorCode
	Message string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Converter normalizes raw audio bytes to the storage format. On success it
// returns the re-encoded bytes together with the renamed filename.
type Converter interface {
	Convert(ctx context.Context, data []byte, filename string) ([]byte, string, error)
}

// NeedsConversion reports whether a file's format requires normalizing
// before upload. Only .m4a is stored as-is.
func NeedsConversion(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) != ".m4a"
}

type ffmpegConverter struct {
	bin string
}

// NewFFmpegConverter creates a Converter that shells out to ffmpeg
func NewFFmpegConverter(bin string) Converter {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &ffmpegConverter{bin: bin}
}

// Convert re-encodes the input to AAC in an .m4a container. ffmpeg cannot
// stream an m4a container to stdout, so it works through temp files.
func (c *ffmpegConverter) Convert(ctx context.Context, data []byte, filename string) ([]byte, string, error) {
	tmpDir, err := os.MkdirTemp("", "memovox-convert-*")
	if err != nil {
		return nil, "", &ConversionError{Code: ConversionFailed, Message: err.Error()}
	}
	defer os.RemoveAll(tmpDir)

	inPath := filepath.Join(tmpDir, "in"+filepath.Ext(filename))
	outPath := filepath.Join(tmpDir, "out.m4a")

	if err := os.WriteFile(inPath, data, 0600); err != nil {
		return nil, "", &ConversionError{Code: ConversionFailed, Message: err.Error()}
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.bin, "-y", "-i", inPath, "-vn", "-c:a", "aac", "-b:a", "64k", outPath)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if strings.Contains(msg, "does not contain any stream") ||
			strings.Contains(msg, "Output file does not contain any stream") ||
			strings.Contains(msg, "Stream map 'a' matches no streams") {
			return nil, "", &ConversionError{Code: NoAudioStream, Message: "input has no decodable audio stream"}
		}
		return nil, "", &ConversionError{Code: ConversionFailed, Message: fmt.Sprintf("ffmpeg failed: %v", err)}
	}

	converted, err := os.ReadFile(outPath)
	if err != nil {
		return nil, "", &ConversionError{Code: ConversionFailed, Message: err.Error()}
	}

	return converted, ReplaceExt(filename, ".m4a"), nil
}

// ReplaceExt swaps a filename's extension
func ReplaceExt(filename, ext string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}

// StorageKey derives a randomized, collision-resistant storage key for a
// filename
func StorageKey(filename string) string {
	return uuid.NewString() + "-" + filepath.Base(filename)
}
