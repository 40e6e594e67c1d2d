package session

import (
	"context"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// Catalog is the read-only source of contributors and sentences
type Catalog interface {
	// ListContributors returns contributors in creation order
	ListContributors(ctx context.Context) ([]*entities.Contributor, error)
	// ListSentences returns sentences ordered by id; this order is the traversal order
	ListSentences(ctx context.Context) ([]*entities.Sentence, error)
}

// Metadata is the record written for a saved take
type Metadata struct {
	Contributor  string
	SentenceID   uint
	SentenceText string
	BlobURL      string
	ContentType  string
	SizeBytes    int64
}

// RecordingStore is the durable home of recordings, keyed by contributor and sentence
type RecordingStore interface {
	ListCompleted(ctx context.Context, contributor string) ([]uint, error)
	// PutBlob overwrites any blob at the same key
	PutBlob(ctx context.Context, contributor string, sentenceID uint, data []byte, contentType string) error
	DeleteBlob(ctx context.Context, contributor string, sentenceID uint) error
	// GetBlobURL fails with entities.ErrBlobNotFound when no blob is stored
	GetBlobURL(ctx context.Context, contributor string, sentenceID uint) (string, error)
	// PutMetadata upserts on (contributor, sentence)
	PutMetadata(ctx context.Context, meta Metadata) error
	DeleteMetadata(ctx context.Context, contributor string, sentenceID uint) error
}

// Blob is a finished capture
type Blob struct {
	Data        []byte
	ContentType string
}

// Capture is an audio input held between start and stop
type Capture interface {
	// Stop finalizes the buffered audio
	Stop(ctx context.Context) (Blob, error)
	// Cancel releases the device and drops the buffer
	Cancel()
}

// AudioInput acquires the capture device
type AudioInput interface {
	Open(ctx context.Context) (Capture, error)
}

// Resumer is implemented by inputs whose captures survive a session being
// restored from a snapshot, such as captures buffered by a remote client.
type Resumer interface {
	Resume() Capture
}

// Playback is audio handed to the output device, either bytes or a URL
type Playback struct {
	Data        []byte
	ContentType string
	URL         string
}

// AudioOutput starts playback and returns without waiting for it to finish
type AudioOutput interface {
	Play(ctx context.Context, p Playback) error
}

// Prompt identifies a destructive action that needs the user's consent
type Prompt string

const (
	PromptReplace Prompt = "replace_recording"
	PromptDiscard Prompt = "discard_capture"
)

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// Direction of an advance
type Direction int

const (
	Next Direction = iota + 1
	Prev
)

// ParseDirection converts "next" or "prev"
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "next":
		return Next, true
	case "prev":
		return Prev, true
	}
	return 0, false
}
