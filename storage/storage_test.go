package storage

import (
	"context"
	"io"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/media/")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	url, err := store.Upload(ctx, "abc-voice.m4a", []byte("audio-bytes"), "audio/mp4")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "http://localhost:8080/media/abc-voice.m4a" {
		t.Errorf("unexpected url: %q", url)
	}

	rc, err := store.Open(ctx, KeyFromURL(url))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(content) != "audio-bytes" {
		t.Errorf("unexpected content: %q", content)
	}

	if err := store.Delete(ctx, "abc-voice.m4a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Open(ctx, "abc-voice.m4a"); err == nil {
		t.Error("expected open to fail after delete")
	}
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost:8080/media/abc-voice.m4a", "abc-voice.m4a"},
		{"abc-voice.m4a", "abc-voice.m4a"},
	}

	for _, tt := range tests {
		if got := KeyFromURL(tt.url); got != tt.want {
			t.Errorf("KeyFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
