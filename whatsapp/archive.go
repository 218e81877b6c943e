package whatsapp

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Archive-level validation failures. Anything else that goes wrong during an
// import is reported per message, never as an error from the call.
var (
	ErrInvalidFileType = errors.New("INVALID_FILE_TYPE: file is not a ZIP archive")
	ErrMissingChatLog  = errors.New("MISSING_CHAT_TXT: no _chat.txt found in archive")
)

const chatLogName = "_chat.txt"

// Archive holds the fully extracted contents of one chat-export ZIP.
type Archive struct {
	ChatLog    string
	AudioFiles map[string][]byte
}

// OpenArchive validates and extracts a chat-export archive. The file type is
// sniffed from the bytes, not trusted from any filename. The chat log is the
// entry whose base name is exactly _chat.txt regardless of folder nesting;
// audio entries are collected into an in-memory filename-to-bytes map.
func OpenArchive(data []byte) (*Archive, error) {
	if !mimetype.Detect(data).Is("application/zip") {
		return nil, ErrInvalidFileType
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrInvalidFileType
	}

	archive := &Archive{
		AudioFiles: make(map[string][]byte),
	}

	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}

		base := path.Base(f.Name)
		if base != chatLogName && (!IsAudioFilename(base) || strings.HasPrefix(base, ".")) {
			continue
		}

		content, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read archive member %s: %w", f.Name, err)
		}

		if base == chatLogName {
			archive.ChatLog = string(content)
		} else {
			archive.AudioFiles[base] = content
		}
	}

	if archive.ChatLog == "" {
		return nil, ErrMissingChatLog
	}

	return archive, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
