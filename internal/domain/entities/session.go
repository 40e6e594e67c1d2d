package entities

import "time"

// CaptureState is the state of a recording session's capture workflow
type CaptureState string

const (
	CaptureStateIdle            CaptureState = "idle"
	CaptureStateCapturing       CaptureState = "capturing"
	CaptureStateCapturedUnsaved CaptureState = "captured_unsaved"
	CaptureStateSaving          CaptureState = "saving"
)

// IsValid checks if the capture state is known
func (s CaptureState) IsValid() bool {
	switch s {
	case CaptureStateIdle, CaptureStateCapturing, CaptureStateCapturedUnsaved, CaptureStateSaving:
		return true
	}
	return false
}

// PendingAudio is a captured take that has not been saved yet
type PendingAudio struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// SessionSnapshot is the persisted form of a recording session
type SessionSnapshot struct {
	ID               string        `json:"id"`
	Contributor      string        `json:"contributor"`
	SentenceIndex    int           `json:"sentence_index"`
	CaptureState     CaptureState  `json:"capture_state"`
	Completed        []uint        `json:"completed"`
	Pending          *PendingAudio `json:"pending,omitempty"`
	CaptureStartedAt *time.Time    `json:"capture_started_at,omitempty"`
	ElapsedSeconds   int           `json:"elapsed_seconds"`
	Notice           string        `json:"notice,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
