package whatsapp

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildZip(t *testing.T, members map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range members {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip member %s: %v", name, err)
		}
		if _, err := f.Write(content); err != nil {
			t.Fatalf("failed to write zip member %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}

	return buf.Bytes()
}

func TestOpenArchive(t *testing.T) {
	chatLog := "[01/02/25, 14:03:05] Sarah: <attached: voice1.opus>"

	t.Run("valid archive", func(t *testing.T) {
		data := buildZip(t, map[string][]byte{
			"_chat.txt":   []byte(chatLog),
			"voice1.opus": {0x4f, 0x67, 0x67, 0x53},
			"voice2.m4a":  {0x00, 0x01},
		})

		archive, err := OpenArchive(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if archive.ChatLog != chatLog {
			t.Errorf("unexpected chat log: %q", archive.ChatLog)
		}
		if len(archive.AudioFiles) != 2 {
			t.Errorf("expected 2 audio files, got %d", len(archive.AudioFiles))
		}
		if _, ok := archive.AudioFiles["voice1.opus"]; !ok {
			t.Error("voice1.opus missing from audio file map")
		}
	})

	t.Run("chat log nested in a folder", func(t *testing.T) {
		data := buildZip(t, map[string][]byte{
			"WhatsApp Chat - Family/_chat.txt":   []byte(chatLog),
			"WhatsApp Chat - Family/voice1.opus": {0x01},
		})

		archive, err := OpenArchive(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if archive.ChatLog != chatLog {
			t.Errorf("unexpected chat log: %q", archive.ChatLog)
		}
		if _, ok := archive.AudioFiles["voice1.opus"]; !ok {
			t.Error("nested audio file should be keyed by base name")
		}
	})

	t.Run("hidden and non-audio entries are ignored", func(t *testing.T) {
		data := buildZip(t, map[string][]byte{
			"_chat.txt":       []byte(chatLog),
			".hidden.opus":    {0x01},
			"photo.jpg":       {0x02},
			"__MACOSX/x.opus": {0x03},
		})

		archive, err := OpenArchive(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := archive.AudioFiles[".hidden.opus"]; ok {
			t.Error("dotfiles must not be extracted")
		}
		if _, ok := archive.AudioFiles["photo.jpg"]; ok {
			t.Error("non-audio files must not be extracted")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		_, err := OpenArchive([]byte("this is just text, not an archive"))
		if !errors.Is(err, ErrInvalidFileType) {
			t.Errorf("expected ErrInvalidFileType, got %v", err)
		}
	})

	t.Run("missing chat log", func(t *testing.T) {
		data := buildZip(t, map[string][]byte{
			"voice1.opus": {0x01},
		})

		_, err := OpenArchive(data)
		if !errors.Is(err, ErrMissingChatLog) {
			t.Errorf("expected ErrMissingChatLog, got %v", err)
		}
	})
}
