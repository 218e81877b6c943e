package audio

import (
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".opus": "audio/opus",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
}

// ContentTypeFor maps a filename's extension to its MIME type. Unrecognized
// extensions fall back to a generic audio type rather than failing.
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "audio/mpeg"
}
