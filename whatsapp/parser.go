package whatsapp

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mrevanzak/memovox/models"
)

// messagePattern matches one exported chat line: a bracketed two-digit-year
// date and time, the sender name up to the first ": ", then the content.
var messagePattern = regexp.MustCompile(`^\[?(\d{1,2})/(\d{1,2})/(\d{2}),\s(\d{1,2}):(\d{2}):(\d{2})\]?\s(.+?):\s(.*)$`)

// attachmentPattern matches WhatsApp's attachment marker inside a message.
var attachmentPattern = regexp.MustCompile(`<attached:\s*([^>]+)>`)

// directionalChars are the invisible Unicode formatting marks WhatsApp
// sprinkles through exported logs. They break regex matching if left in.
var directionalChars = strings.NewReplacer(
	"‎", "", // left-to-right mark
	"‏", "", // right-to-left mark
	"‪", "",
	"‫", "",
	"‬", "",
	"‭", "",
	"‮", "",
	"⁦", "",
	"⁧", "",
	"⁨", "",
	"⁩", "",
)

const editedMarker = "<This message was edited>"

var audioExtensions = map[string]bool{
	".opus": true,
	".m4a":  true,
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
}

// IsAudioFilename reports whether the filename carries a known audio extension.
func IsAudioFilename(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// ParseChatLog extracts audio attachment messages from an exported chat log.
// It is pure and never fails as a whole: lines with malformed dates become
// entries in the result's Errors, everything else unparseable is skipped.
func ParseChatLog(content string) models.ParseResult {
	result := models.ParseResult{
		AudioMessages: []models.ParsedAudioMessage{},
		Errors:        []string{},
	}

	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = directionalChars.Replace(strings.TrimSuffix(lines[i], "\r"))
	}

	for i, line := range lines {
		m := messagePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		sender, body := m[7], m[8]

		att := attachmentPattern.FindStringSubmatch(body)
		if att == nil {
			continue
		}

		filename := strings.TrimSpace(att[1])
		if !IsAudioFilename(filename) {
			continue
		}

		ts, err := parseTimestamp(m[1:7])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s at line %d", err, i+1))
			continue
		}

		msg := models.ParsedAudioMessage{
			Timestamp: ts,
			Sender:    sender,
			Filename:  filename,
			Notes:     captionFor(lines, i, sender),
		}
		result.AudioMessages = append(result.AudioMessages, msg)
	}

	return result
}

// parseTimestamp builds a local-time timestamp from the six captured
// date/time components. Two-digit years map to 2000+year.
func parseTimestamp(parts []string) (time.Time, error) {
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, errors.New("Invalid date/time format")
		}
		nums[i] = n
	}

	month, day, year := nums[0], nums[1], nums[2]
	hour, minute, second := nums[3], nums[4], nums[5]
	if year < 100 {
		year += 2000
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)

	// time.Date normalizes out-of-range components (day 32 rolls into the
	// next month), so round-trip the fields to catch invalid dates.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, errors.New("Invalid timestamp")
	}

	return t, nil
}

// captionFor applies the caption heuristic: if the very next line is a
// message from the same sender and is not itself an attachment, its content
// is treated as free-text notes for the current audio message. Best effort;
// the export format gives no stronger signal.
func captionFor(lines []string, i int, sender string) string {
	if i+1 >= len(lines) {
		return ""
	}

	next := messagePattern.FindStringSubmatch(lines[i+1])
	if next == nil || next[7] != sender {
		return ""
	}
	if attachmentPattern.MatchString(next[8]) {
		return ""
	}

	return strings.TrimSpace(strings.ReplaceAll(next[8], editedMarker, ""))
}
