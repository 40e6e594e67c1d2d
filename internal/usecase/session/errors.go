package session

import (
	"context"
	"errors"
	"fmt"
)

// Session errors. Handlers map these onto application error codes.
var (
	ErrInvalidContributor   = errors.New("contributor is not in the catalog")
	ErrOutOfRange           = errors.New("sentence ordinal out of range")
	ErrDeviceUnavailable    = errors.New("audio device unavailable")
	ErrStoreUnavailable     = errors.New("recording store unavailable")
	ErrBlobWriteFailed      = errors.New("blob write failed")
	ErrMetadataWriteFailed  = errors.New("metadata write failed")
	ErrDeleteFailed         = errors.New("delete of previous recording failed")
	ErrNotFound             = errors.New("recording missing from store")
	ErrIllegalState         = errors.New("operation not allowed in current state")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrEmptyCapture         = errors.New("captured audio is empty")
	ErrSessionNotFound      = errors.New("session not found")
)

// SaveStep names one sub-step of a save
type SaveStep string

const (
	StepDeleteBlob     SaveStep = "delete_blob"
	StepDeleteMetadata SaveStep = "delete_metadata"
	StepPutBlob        SaveStep = "put_blob"
	StepResolveURL     SaveStep = "resolve_url"
	StepPutMetadata    SaveStep = "put_metadata"
)

// SaveError reports which step of a save failed.
// Orphaned is set when the new blob was written but its metadata was not.
type SaveError struct {
	Step     SaveStep
	Key      string
	Orphaned bool
	TimedOut bool
	kind     error
	Err      error
}

func (e *SaveError) Error() string {
	msg := fmt.Sprintf("save %s: %s failed: %v", e.Key, e.Step, e.Err)
	if e.Orphaned {
		msg += " (blob left without metadata)"
	}
	return msg
}

// Unwrap exposes the step's error kind, ErrStoreUnavailable on timeout, and the cause
func (e *SaveError) Unwrap() []error {
	errs := []error{e.kind}
	if e.TimedOut {
		errs = append(errs, ErrStoreUnavailable)
	}
	return append(errs, e.Err)
}

// Kind returns the error kind of the failed step
func (e *SaveError) Kind() error {
	return e.kind
}

func newSaveError(step SaveStep, key string, kind, err error) *SaveError {
	return &SaveError{
		Step:     step,
		Key:      key,
		TimedOut: errors.Is(err, context.DeadlineExceeded),
		kind:     kind,
		Err:      err,
	}
}

// storeFailure tags a failed read from a collaborator as ErrStoreUnavailable
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// ConfirmationError names the prompt the user has not agreed to
type ConfirmationError struct {
	Prompt Prompt
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfirmationRequired, e.Prompt)
}

func (e *ConfirmationError) Unwrap() error {
	return ErrConfirmationRequired
}
