package storage

import (
	"fmt"
	"strings"
)

// RecordingFilename returns the file name of a sentence's audio, e.g. "0007.wav".
// The zero-padded ordinal is the join key between blobs and metadata rows.
func RecordingFilename(sentenceID uint, extension string) string {
	return fmt.Sprintf("%04d.%s", sentenceID, strings.TrimPrefix(extension, "."))
}

// RecordingKey returns the object key of a recording, e.g. "ann/0007.wav"
func RecordingKey(contributor string, sentenceID uint, extension string) string {
	return contributor + "/" + RecordingFilename(sentenceID, extension)
}

// joinURL appends an object key to a base URL
func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		out += "/" + strings.Trim(p, "/")
	}
	return out
}
