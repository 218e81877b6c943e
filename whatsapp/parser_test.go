package whatsapp

import (
	"strings"
	"testing"
	"time"

	"github.com/mrevanzak/memovox/models"
)

func TestParseChatLog(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantMsgs  int
		wantErrs  int
		checkFunc func(t *testing.T, result models.ParseResult)
	}{
		{
			name:     "single audio attachment",
			content:  "[01/02/25, 14:03:05] Sarah: <attached: voice1.opus>",
			wantMsgs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				msg := result.AudioMessages[0]
				if msg.Sender != "Sarah" {
					t.Errorf("expected sender Sarah, got %q", msg.Sender)
				}
				if msg.Filename != "voice1.opus" {
					t.Errorf("expected filename voice1.opus, got %q", msg.Filename)
				}
			},
		},
		{
			name:     "two-digit year expands to 2000s",
			content:  "[01/02/25, 14:03:05] Sarah: <attached: voice1.opus>",
			wantMsgs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				want := time.Date(2025, time.January, 2, 14, 3, 5, 0, time.Local)
				if !result.AudioMessages[0].Timestamp.Equal(want) {
					t.Errorf("expected timestamp %v, got %v", want, result.AudioMessages[0].Timestamp)
				}
			},
		},
		{
			name:     "invalid day produces error not message",
			content:  "[02/30/24, 10:00:00] Sarah: <attached: voice1.opus>",
			wantMsgs: 0,
			wantErrs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				if result.Errors[0] != "Invalid timestamp at line 1" {
					t.Errorf("unexpected error string: %q", result.Errors[0])
				}
			},
		},
		{
			name: "error line numbers count all lines",
			content: strings.Join([]string{
				"[01/02/25, 14:03:05] Sarah: hello there",
				"some unmatched continuation line",
				"[02/30/24, 10:00:00] Sarah: <attached: voice1.opus>",
			}, "\n"),
			wantMsgs: 0,
			wantErrs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				if result.Errors[0] != "Invalid timestamp at line 3" {
					t.Errorf("unexpected error string: %q", result.Errors[0])
				}
			},
		},
		{
			name:     "plain text lines are skipped silently",
			content:  "[01/02/25, 14:03:05] Sarah: just a text message",
			wantMsgs: 0,
			wantErrs: 0,
		},
		{
			name:     "non-audio attachments are skipped",
			content:  "[01/02/25, 14:03:05] Sarah: <attached: photo.jpg>",
			wantMsgs: 0,
			wantErrs: 0,
		},
		{
			name:     "audio extension match is case-insensitive",
			content:  "[01/02/25, 14:03:05] Sarah: <attached: Voice1.M4A>",
			wantMsgs: 1,
		},
		{
			name:     "directional formatting characters are stripped",
			content:  "‎[01/02/25, 14:03:05] Sarah: ‎<attached: voice1.opus>",
			wantMsgs: 1,
		},
		{
			name: "messages come back in log order",
			content: strings.Join([]string{
				"[01/02/25, 09:00:00] Sarah: <attached: voice1.opus>",
				"[01/02/25, 10:00:00] Tom: <attached: voice2.opus>",
				"[01/03/25, 11:00:00] Sarah: <attached: voice3.opus>",
			}, "\n"),
			wantMsgs: 3,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				want := []string{"voice1.opus", "voice2.opus", "voice3.opus"}
				for i, name := range want {
					if result.AudioMessages[i].Filename != name {
						t.Errorf("position %d: expected %s, got %s", i, name, result.AudioMessages[i].Filename)
					}
				}
			},
		},
		{
			name: "caption from next line by same sender",
			content: strings.Join([]string{
				"[01/02/25, 09:00:00] Sarah: <attached: voice1.opus>",
				"[01/02/25, 09:00:30] Sarah: about the dentist appointment",
			}, "\n"),
			wantMsgs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				if result.AudioMessages[0].Notes != "about the dentist appointment" {
					t.Errorf("expected caption, got %q", result.AudioMessages[0].Notes)
				}
			},
		},
		{
			name: "caption strips edited marker",
			content: strings.Join([]string{
				"[01/02/25, 09:00:00] Sarah: <attached: voice1.opus>",
				"[01/02/25, 09:00:30] Sarah: groceries list <This message was edited>",
			}, "\n"),
			wantMsgs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				if result.AudioMessages[0].Notes != "groceries list" {
					t.Errorf("expected edited marker stripped, got %q", result.AudioMessages[0].Notes)
				}
			},
		},
		{
			name: "no caption from a different sender",
			content: strings.Join([]string{
				"[01/02/25, 09:00:00] Sarah: <attached: voice1.opus>",
				"[01/02/25, 09:00:30] Tom: unrelated reply",
			}, "\n"),
			wantMsgs: 1,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				if result.AudioMessages[0].Notes != "" {
					t.Errorf("expected no caption, got %q", result.AudioMessages[0].Notes)
				}
			},
		},
		{
			name: "no caption stolen from a sibling attachment",
			content: strings.Join([]string{
				"[01/02/25, 09:00:00] Sarah: <attached: voice1.opus>",
				"[01/02/25, 09:00:30] Sarah: <attached: voice2.opus>",
			}, "\n"),
			wantMsgs: 2,
			checkFunc: func(t *testing.T, result models.ParseResult) {
				if result.AudioMessages[0].Notes != "" {
					t.Errorf("first message must have no caption, got %q", result.AudioMessages[0].Notes)
				}
			},
		},
		{
			name:     "windows line endings",
			content:  "[01/02/25, 14:03:05] Sarah: <attached: voice1.opus>\r\n[01/02/25, 14:04:05] Tom: <attached: voice2.opus>\r\n",
			wantMsgs: 2,
		},
		{
			name:     "empty input",
			content:  "",
			wantMsgs: 0,
			wantErrs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseChatLog(tt.content)

			if len(result.AudioMessages) != tt.wantMsgs {
				t.Fatalf("expected %d messages, got %d (%v)", tt.wantMsgs, len(result.AudioMessages), result.AudioMessages)
			}
			if len(result.Errors) != tt.wantErrs {
				t.Fatalf("expected %d errors, got %d (%v)", tt.wantErrs, len(result.Errors), result.Errors)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, result)
			}
		})
	}
}

func TestIsAudioFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"voice.opus", true},
		{"voice.m4a", true},
		{"voice.MP3", true},
		{"voice.wav", true},
		{"voice.ogg", true},
		{"photo.jpg", false},
		{"document.pdf", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := IsAudioFilename(tt.filename); got != tt.want {
			t.Errorf("IsAudioFilename(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
