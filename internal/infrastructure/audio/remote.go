// Package audio adapts the browser's media devices to the session's audio
// ports. The browser records and plays locally; each HTTP request carries
// what the device produced (a grant, an upload, a confirmation) in its
// context, and playback is handed back through a sink on the context.
package audio

import (
	"context"
	"errors"
	"sync"

	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

var (
	ErrPermissionDenied = errors.New("microphone access was not granted")
	ErrNoUpload         = errors.New("no captured audio was uploaded")
	ErrNoSink           = errors.New("no playback target for this request")
)

type (
	grantKey   struct{}
	uploadKey  struct{}
	sinkKey    struct{}
	confirmKey struct{}
)

// WithDeviceGrant records whether the client obtained microphone access
func WithDeviceGrant(ctx context.Context, granted bool) context.Context {
	return context.WithValue(ctx, grantKey{}, granted)
}

// WithUpload attaches the audio the client captured
func WithUpload(ctx context.Context, blob session.Blob) context.Context {
	return context.WithValue(ctx, uploadKey{}, blob)
}

// WithConfirmations attaches the prompts the user already agreed to
func WithConfirmations(ctx context.Context, prompts ...session.Prompt) context.Context {
	set := make(map[session.Prompt]bool, len(prompts))
	for _, p := range prompts {
		set[p] = true
	}
	return context.WithValue(ctx, confirmKey{}, set)
}

// Sink receives playback started during a request
type Sink struct {
	mu       sync.Mutex
	playback *session.Playback
}

// Playback returns what was played, if anything
func (s *Sink) Playback() (session.Playback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playback == nil {
		return session.Playback{}, false
	}
	return *s.playback, true
}

// WithSink attaches a playback sink to the request
func WithSink(ctx context.Context, sink *Sink) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

// RemoteInput is the client's microphone
type RemoteInput struct{}

var (
	_ session.AudioInput = RemoteInput{}
	_ session.Resumer    = RemoteInput{}
)

// Open succeeds when the client reports a granted microphone
func (RemoteInput) Open(ctx context.Context) (session.Capture, error) {
	granted, _ := ctx.Value(grantKey{}).(bool)
	if !granted {
		return nil, ErrPermissionDenied
	}
	return remoteCapture{}, nil
}

// Resume returns a capture for a session restored while recording.
// The buffer lives on the client, so nothing is lost.
func (RemoteInput) Resume() session.Capture {
	return remoteCapture{}
}

type remoteCapture struct{}

// Stop takes the audio uploaded with the stop request
func (remoteCapture) Stop(ctx context.Context) (session.Blob, error) {
	blob, ok := ctx.Value(uploadKey{}).(session.Blob)
	if !ok {
		return session.Blob{}, ErrNoUpload
	}
	return blob, nil
}

// Cancel is a no-op; the client drops its own buffer
func (remoteCapture) Cancel() {}

// RemoteOutput hands playback to the request's sink for the client to play
type RemoteOutput struct{}

var _ session.AudioOutput = RemoteOutput{}

// Play records p in the request's sink
func (RemoteOutput) Play(ctx context.Context, p session.Playback) error {
	sink, ok := ctx.Value(sinkKey{}).(*Sink)
	if !ok || sink == nil {
		return ErrNoSink
	}
	sink.mu.Lock()
	sink.playback = &p
	sink.mu.Unlock()
	return nil
}

// ContextConfirmer confirms prompts the request was sent with
type ContextConfirmer struct{}

var _ session.Confirmer = ContextConfirmer{}

// Confirm reports whether the request carried consent for p
func (ContextConfirmer) Confirm(ctx context.Context, p session.Prompt) bool {
	set, _ := ctx.Value(confirmKey{}).(map[session.Prompt]bool)
	return set[p]
}
