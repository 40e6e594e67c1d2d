package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/storage"
)

// Notice is user-facing feedback left by the last operation
type Notice string

const (
	NoticeNone       Notice = ""
	NoticeSaved      Notice = "saved"
	NoticeReplaced   Notice = "replaced"
	NoticeDiscarded  Notice = "discarded"
	NoticeSaveFirst  Notice = "save_first"
	NoticeSaving     Notice = "saving"
	NoticeCapturing  Notice = "capturing"
	NoticeAtBoundary Notice = "at_boundary"
	NoticeSaveFailed Notice = "save_failed"
	NoticeMissing    Notice = "recording_missing"
)

var noticeMessages = map[Notice]string{
	NoticeSaved:      "Recording saved",
	NoticeReplaced:   "Recording replaced",
	NoticeDiscarded:  "Recording discarded",
	NoticeSaveFirst:  "Save or discard the recording before moving",
	NoticeSaving:     "Wait for the save to finish",
	NoticeCapturing:  "Stop recording before moving",
	NoticeAtBoundary: "No more sentences in that direction",
	NoticeSaveFailed: "Saving failed, try again",
	NoticeMissing:    "This sentence is marked as recorded but its audio is missing",
}

// Message returns the human readable text of the notice
func (n Notice) Message() string {
	return noticeMessages[n]
}

// Dependencies are the collaborators of a controller
type Dependencies struct {
	Catalog   Catalog
	Store     RecordingStore
	Input     AudioInput
	Output    AudioOutput
	Confirmer Confirmer
	Logger    *zap.Logger

	// StoreTimeout bounds each catalog and store call; zero means no bound
	StoreTimeout time.Duration
	// AudioExtension is used to name recording keys in errors and logs
	AudioExtension string
	Now            func() time.Time
}

// Status is a read-only view of a session
type Status struct {
	SessionID      string                `json:"session_id"`
	Contributor    string                `json:"contributor"`
	SentenceIndex  int                   `json:"sentence_index"`
	Ordinal        int                   `json:"ordinal"`
	Total          int                   `json:"total"`
	SentenceID     uint                  `json:"sentence_id,omitempty"`
	SentenceText   string                `json:"sentence_text,omitempty"`
	State          entities.CaptureState `json:"state"`
	HasPending     bool                  `json:"has_pending"`
	ElapsedSeconds int                   `json:"elapsed_seconds"`
	Recorded       bool                  `json:"recorded"`
	CompletedCount int                   `json:"completed_count"`
	Progress       float64               `json:"progress"`
	Notice         Notice                `json:"notice,omitempty"`
	NoticeMessage  string                `json:"notice_message,omitempty"`
}

// Controller runs the recording workflow of one session.
// It is not safe for concurrent use; Manager serialises calls per session.
type Controller struct {
	id   string
	deps Dependencies
	log  *zap.Logger

	contributor string
	sentences   []*entities.Sentence
	index       int
	state       entities.CaptureState
	completed   map[uint]struct{}
	pending     *Blob

	capture        Capture
	captureStarted time.Time
	elapsed        int
	notice         Notice
}

// NewController creates an unstarted controller
func NewController(id string, deps Dependencies) *Controller {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AudioExtension == "" {
		deps.AudioExtension = "wav"
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		id:        id,
		deps:      deps,
		log:       logger.With(zap.String("session_id", id)),
		state:     entities.CaptureStateIdle,
		completed: make(map[uint]struct{}),
	}
}

// Start loads the catalog and the completed set for contributor.
// An empty contributor selects the first one in the catalog.
func (c *Controller) Start(ctx context.Context, contributor string) error {
	contributors, err := c.listContributors(ctx)
	if err != nil {
		return err
	}
	if contributor == "" {
		if len(contributors) == 0 {
			return fmt.Errorf("%w: catalog has no contributors", ErrInvalidContributor)
		}
		contributor = contributors[0].Name
	} else if !containsContributor(contributors, contributor) {
		return fmt.Errorf("%w: %q", ErrInvalidContributor, contributor)
	}

	sentences, err := c.listSentences(ctx)
	if err != nil {
		return err
	}
	completed, err := c.listCompleted(ctx, contributor)
	if err != nil {
		return err
	}

	c.contributor = contributor
	c.sentences = sentences
	c.completed = completed
	c.index = 0
	c.enterIdle()
	return nil
}

// SelectContributor switches the active contributor and reloads its completed set.
// The sentence index is kept. An in-flight capture is discarded after confirmation.
func (c *Controller) SelectContributor(ctx context.Context, contributor string) error {
	if c.state == entities.CaptureStateSaving {
		return fmt.Errorf("%w: save in progress", ErrIllegalState)
	}

	contributors, err := c.listContributors(ctx)
	if err != nil {
		return err
	}
	if !containsContributor(contributors, contributor) {
		return fmt.Errorf("%w: %q", ErrInvalidContributor, contributor)
	}

	inFlight := c.state == entities.CaptureStateCapturing || c.pending != nil
	if inFlight && !c.confirm(ctx, PromptDiscard) {
		return &ConfirmationError{Prompt: PromptDiscard}
	}

	completed, err := c.listCompleted(ctx, contributor)
	if err != nil {
		return err
	}

	if inFlight {
		c.releaseCapture()
	}
	c.contributor = contributor
	c.completed = completed
	c.enterIdle()
	c.notice = NoticeNone
	return nil
}

// StartCapture acquires the input device and starts the elapsed-time counter
func (c *Controller) StartCapture(ctx context.Context) error {
	if c.state != entities.CaptureStateIdle {
		return fmt.Errorf("%w: cannot start capture while %s", ErrIllegalState, c.state)
	}
	if len(c.sentences) == 0 {
		return fmt.Errorf("%w: catalog has no sentences", ErrIllegalState)
	}
	if c.deps.Input == nil {
		return ErrDeviceUnavailable
	}

	capture, err := c.deps.Input.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	c.capture = capture
	c.state = entities.CaptureStateCapturing
	c.captureStarted = c.deps.Now()
	c.elapsed = 0
	c.notice = NoticeNone
	return nil
}

// StopCapture finalizes the buffered audio into the pending take.
// A device failure or an empty capture returns the session to Idle.
func (c *Controller) StopCapture(ctx context.Context) error {
	if c.state != entities.CaptureStateCapturing {
		return fmt.Errorf("%w: not capturing", ErrIllegalState)
	}

	elapsed := c.elapsedSeconds()
	capture := c.capture
	c.capture = nil
	if capture == nil {
		c.enterIdle()
		return fmt.Errorf("%w: capture was lost", ErrDeviceUnavailable)
	}

	blob, err := capture.Stop(ctx)
	if err != nil {
		c.enterIdle()
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	if len(blob.Data) == 0 {
		c.enterIdle()
		return ErrEmptyCapture
	}

	c.pending = &blob
	c.state = entities.CaptureStateCapturedUnsaved
	c.elapsed = elapsed
	return nil
}

// Discard drops the current capture after confirmation
func (c *Controller) Discard(ctx context.Context) error {
	if c.state != entities.CaptureStateCapturing && c.state != entities.CaptureStateCapturedUnsaved {
		return fmt.Errorf("%w: nothing to discard", ErrIllegalState)
	}
	if !c.confirm(ctx, PromptDiscard) {
		return &ConfirmationError{Prompt: PromptDiscard}
	}

	c.releaseCapture()
	c.enterIdle()
	c.notice = NoticeDiscarded
	return nil
}

// PlayPending plays the unsaved take
func (c *Controller) PlayPending(ctx context.Context) error {
	if c.pending == nil {
		return fmt.Errorf("%w: no pending recording", ErrIllegalState)
	}
	return c.play(ctx, Playback{Data: c.pending.Data, ContentType: c.pending.ContentType})
}

// PlayCommitted plays the stored recording of the current sentence.
// A recording in the completed set that the store cannot find is ErrNotFound.
func (c *Controller) PlayCommitted(ctx context.Context) error {
	sentence := c.current()
	if sentence == nil || !c.isCompleted(sentence.ID) {
		return fmt.Errorf("%w: current sentence has no saved recording", ErrIllegalState)
	}

	sctx, cancel := c.storeContext(ctx)
	url, err := c.deps.Store.GetBlobURL(sctx, c.contributor, sentence.ID)
	cancel()
	if err != nil {
		if errors.Is(err, entities.ErrBlobNotFound) {
			c.notice = NoticeMissing
			c.log.Warn("session.recording.missing",
				zap.String("key", c.key(sentence.ID)),
			)
			return fmt.Errorf("%w: %s", ErrNotFound, c.key(sentence.ID))
		}
		return storeFailure("resolve recording", err)
	}

	return c.play(ctx, Playback{URL: url})
}

// Save commits the pending take for the current sentence. Replacing an
// existing recording needs confirmation and deletes the old blob and
// metadata before writing. On failure the take is kept for a retry.
func (c *Controller) Save(ctx context.Context, advance bool) error {
	if c.state == entities.CaptureStateSaving {
		return fmt.Errorf("%w: save in progress", ErrIllegalState)
	}
	if c.pending == nil {
		return fmt.Errorf("%w: no pending recording", ErrIllegalState)
	}
	sentence := c.current()
	if sentence == nil {
		return fmt.Errorf("%w: catalog has no sentences", ErrIllegalState)
	}

	replace := c.isCompleted(sentence.ID)
	if replace && !c.confirm(ctx, PromptReplace) {
		return &ConfirmationError{Prompt: PromptReplace}
	}

	c.state = entities.CaptureStateSaving
	if err := c.commit(ctx, sentence, replace); err != nil {
		c.state = entities.CaptureStateCapturedUnsaved
		c.notice = NoticeSaveFailed

		var saveErr *SaveError
		if errors.As(err, &saveErr) && saveErr.Orphaned {
			c.log.Warn("session.save.orphaned_blob",
				zap.String("key", saveErr.Key),
				zap.String("step", string(saveErr.Step)),
				zap.Error(saveErr.Err),
			)
		} else {
			c.log.Error("session.save.failed", zap.Error(err))
		}
		return err
	}

	c.completed[sentence.ID] = struct{}{}
	c.enterIdle()
	c.notice = NoticeSaved
	if replace {
		c.notice = NoticeReplaced
	}
	if advance && c.index < len(c.sentences)-1 {
		c.index++
	}
	return nil
}

func (c *Controller) commit(ctx context.Context, sentence *entities.Sentence, replace bool) error {
	key := c.key(sentence.ID)
	blob := c.pending

	if replace {
		if err := c.withStore(ctx, func(sctx context.Context) error {
			return c.deps.Store.DeleteBlob(sctx, c.contributor, sentence.ID)
		}); err != nil {
			return newSaveError(StepDeleteBlob, key, ErrDeleteFailed, err)
		}
		if err := c.withStore(ctx, func(sctx context.Context) error {
			return c.deps.Store.DeleteMetadata(sctx, c.contributor, sentence.ID)
		}); err != nil {
			return newSaveError(StepDeleteMetadata, key, ErrDeleteFailed, err)
		}
		// Both the blob and the row are gone now
		delete(c.completed, sentence.ID)
	}

	if err := c.withStore(ctx, func(sctx context.Context) error {
		return c.deps.Store.PutBlob(sctx, c.contributor, sentence.ID, blob.Data, blob.ContentType)
	}); err != nil {
		return newSaveError(StepPutBlob, key, ErrBlobWriteFailed, err)
	}

	var url string
	if err := c.withStore(ctx, func(sctx context.Context) error {
		var err error
		url, err = c.deps.Store.GetBlobURL(sctx, c.contributor, sentence.ID)
		return err
	}); err != nil {
		if errors.Is(err, entities.ErrBlobNotFound) {
			return newSaveError(StepResolveURL, key, ErrBlobWriteFailed, err)
		}
		saveErr := newSaveError(StepResolveURL, key, ErrMetadataWriteFailed, err)
		saveErr.Orphaned = true
		return saveErr
	}

	if err := c.withStore(ctx, func(sctx context.Context) error {
		return c.deps.Store.PutMetadata(sctx, Metadata{
			Contributor:  c.contributor,
			SentenceID:   sentence.ID,
			SentenceText: sentence.Text,
			BlobURL:      url,
			ContentType:  blob.ContentType,
			SizeBytes:    int64(len(blob.Data)),
		})
	}); err != nil {
		saveErr := newSaveError(StepPutMetadata, key, ErrMetadataWriteFailed, err)
		saveErr.Orphaned = true
		return saveErr
	}

	return nil
}

// Advance moves one sentence forward or back. Guarded or boundary moves
// leave the session unchanged and return a notice instead of an error.
func (c *Controller) Advance(dir Direction) (Notice, error) {
	if n := c.navigationGuard(); n != NoticeNone {
		return n, nil
	}

	target := c.index
	switch dir {
	case Next:
		target++
	case Prev:
		target--
	default:
		return NoticeNone, fmt.Errorf("unknown direction %d", dir)
	}

	if target < 0 || target >= len(c.sentences) {
		c.notice = NoticeAtBoundary
		return NoticeAtBoundary, nil
	}

	c.moveTo(target)
	return NoticeNone, nil
}

// JumpTo moves to a 1-based sentence ordinal
func (c *Controller) JumpTo(ordinal int) (Notice, error) {
	if ordinal < 1 || ordinal > len(c.sentences) {
		return NoticeNone, fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, ordinal, len(c.sentences))
	}
	if n := c.navigationGuard(); n != NoticeNone {
		return n, nil
	}

	c.moveTo(ordinal - 1)
	return NoticeNone, nil
}

// RefreshCatalog re-reads the sentence list and clamps the index to it
func (c *Controller) RefreshCatalog(ctx context.Context) error {
	if c.state != entities.CaptureStateIdle {
		return fmt.Errorf("%w: cannot refresh while %s", ErrIllegalState, c.state)
	}

	sentences, err := c.listSentences(ctx)
	if err != nil {
		return err
	}

	c.sentences = sentences
	if c.index >= len(sentences) {
		c.index = max(len(sentences)-1, 0)
	}
	return nil
}

// Progress is the share of sentences recorded, in percent. Zero for an empty catalog.
func (c *Controller) Progress() float64 {
	if len(c.sentences) == 0 {
		return 0
	}
	return float64(len(c.completed)) / float64(len(c.sentences)) * 100
}

// Status returns a read-only view of the session
func (c *Controller) Status() Status {
	st := Status{
		SessionID:      c.id,
		Contributor:    c.contributor,
		SentenceIndex:  c.index,
		Total:          len(c.sentences),
		State:          c.state,
		HasPending:     c.pending != nil,
		ElapsedSeconds: c.elapsedSeconds(),
		CompletedCount: len(c.completed),
		Progress:       math.Round(c.Progress()*10) / 10,
		Notice:         c.notice,
		NoticeMessage:  c.notice.Message(),
	}
	if s := c.current(); s != nil {
		st.Ordinal = c.index + 1
		st.SentenceID = s.ID
		st.SentenceText = s.Text
		st.Recorded = c.isCompleted(s.ID)
	}
	return st
}

// Pending returns the unsaved take, if any
func (c *Controller) Pending() (Blob, bool) {
	if c.pending == nil {
		return Blob{}, false
	}
	return *c.pending, true
}

// Snapshot captures the persistent state of the session
func (c *Controller) Snapshot() *entities.SessionSnapshot {
	completed := make([]uint, 0, len(c.completed))
	for id := range c.completed {
		completed = append(completed, id)
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i] < completed[j] })

	snap := &entities.SessionSnapshot{
		ID:             c.id,
		Contributor:    c.contributor,
		SentenceIndex:  c.index,
		CaptureState:   c.state,
		Completed:      completed,
		ElapsedSeconds: c.elapsed,
		Notice:         string(c.notice),
		UpdatedAt:      c.deps.Now().UTC(),
	}
	if c.pending != nil {
		snap.Pending = &entities.PendingAudio{Data: c.pending.Data, ContentType: c.pending.ContentType}
	}
	if c.state == entities.CaptureStateCapturing {
		started := c.captureStarted.UTC()
		snap.CaptureStartedAt = &started
	}
	return snap
}

// Restore rebuilds a session from a snapshot. The completed set is taken
// from the snapshot as is; only the sentence list is re-read.
// A snapshot without a contributor or with an unknown state is entities.ErrInvalidSnapshot.
func (c *Controller) Restore(ctx context.Context, snap *entities.SessionSnapshot) error {
	if snap == nil || snap.Contributor == "" {
		return fmt.Errorf("%w: no contributor", entities.ErrInvalidSnapshot)
	}
	if !snap.CaptureState.IsValid() {
		return fmt.Errorf("%w: capture state %q", entities.ErrInvalidSnapshot, snap.CaptureState)
	}

	sentences, err := c.listSentences(ctx)
	if err != nil {
		return err
	}

	c.contributor = snap.Contributor
	c.sentences = sentences
	c.index = min(max(snap.SentenceIndex, 0), max(len(sentences)-1, 0))
	c.completed = make(map[uint]struct{}, len(snap.Completed))
	for _, id := range snap.Completed {
		c.completed[id] = struct{}{}
	}
	c.elapsed = snap.ElapsedSeconds
	c.notice = Notice(snap.Notice)
	c.pending = nil
	c.capture = nil
	c.state = entities.CaptureStateIdle

	switch snap.CaptureState {
	case entities.CaptureStateCapturing:
		resumer, ok := c.deps.Input.(Resumer)
		if ok && snap.CaptureStartedAt != nil {
			c.capture = resumer.Resume()
			c.captureStarted = *snap.CaptureStartedAt
			c.state = entities.CaptureStateCapturing
		}
	case entities.CaptureStateCapturedUnsaved, entities.CaptureStateSaving:
		// A save never outlives its request, so a stored Saving state means it was interrupted
		if snap.Pending != nil {
			c.pending = &Blob{Data: snap.Pending.Data, ContentType: snap.Pending.ContentType}
			c.state = entities.CaptureStateCapturedUnsaved
		}
	}
	if c.state == entities.CaptureStateIdle {
		c.elapsed = 0
	}
	return nil
}

func (c *Controller) navigationGuard() Notice {
	var n Notice
	switch {
	case c.state == entities.CaptureStateSaving:
		n = NoticeSaving
	case c.state == entities.CaptureStateCapturing:
		n = NoticeCapturing
	case c.pending != nil:
		n = NoticeSaveFirst
	default:
		return NoticeNone
	}
	c.notice = n
	return n
}

func (c *Controller) moveTo(index int) {
	c.index = index
	c.enterIdle()
	c.notice = NoticeNone
}

func (c *Controller) enterIdle() {
	c.state = entities.CaptureStateIdle
	c.pending = nil
	c.capture = nil
	c.elapsed = 0
}

func (c *Controller) releaseCapture() {
	if c.capture != nil {
		c.capture.Cancel()
		c.capture = nil
	}
}

func (c *Controller) elapsedSeconds() int {
	if c.state == entities.CaptureStateCapturing {
		return int(c.deps.Now().Sub(c.captureStarted) / time.Second)
	}
	return c.elapsed
}

func (c *Controller) current() *entities.Sentence {
	if c.index < 0 || c.index >= len(c.sentences) {
		return nil
	}
	return c.sentences[c.index]
}

func (c *Controller) isCompleted(id uint) bool {
	_, ok := c.completed[id]
	return ok
}

func (c *Controller) key(sentenceID uint) string {
	return storage.RecordingKey(c.contributor, sentenceID, c.deps.AudioExtension)
}

func (c *Controller) confirm(ctx context.Context, p Prompt) bool {
	return c.deps.Confirmer != nil && c.deps.Confirmer.Confirm(ctx, p)
}

func (c *Controller) play(ctx context.Context, p Playback) error {
	if c.deps.Output == nil {
		return ErrDeviceUnavailable
	}
	if err := c.deps.Output.Play(ctx, p); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	return nil
}

func (c *Controller) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.deps.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.deps.StoreTimeout)
}

func (c *Controller) withStore(ctx context.Context, fn func(context.Context) error) error {
	sctx, cancel := c.storeContext(ctx)
	defer cancel()
	return fn(sctx)
}

func (c *Controller) listContributors(ctx context.Context) ([]*entities.Contributor, error) {
	var out []*entities.Contributor
	err := c.withStore(ctx, func(sctx context.Context) error {
		var err error
		out, err = c.deps.Catalog.ListContributors(sctx)
		return err
	})
	if err != nil {
		return nil, storeFailure("list contributors", err)
	}
	return out, nil
}

func (c *Controller) listSentences(ctx context.Context) ([]*entities.Sentence, error) {
	var out []*entities.Sentence
	err := c.withStore(ctx, func(sctx context.Context) error {
		var err error
		out, err = c.deps.Catalog.ListSentences(sctx)
		return err
	})
	if err != nil {
		return nil, storeFailure("list sentences", err)
	}
	return out, nil
}

func (c *Controller) listCompleted(ctx context.Context, contributor string) (map[uint]struct{}, error) {
	var ids []uint
	err := c.withStore(ctx, func(sctx context.Context) error {
		var err error
		ids, err = c.deps.Store.ListCompleted(sctx, contributor)
		return err
	})
	if err != nil {
		return nil, storeFailure("list completed recordings", err)
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func containsContributor(list []*entities.Contributor, name string) bool {
	for _, c := range list {
		if c.Name == name {
			return true
		}
	}
	return false
}
