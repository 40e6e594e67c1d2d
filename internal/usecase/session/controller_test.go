package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

func capture(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.StartCapture(context.Background()))
	require.NoError(t, c.StopCapture(context.Background()))
}

func TestStart_DefaultsToFirstContributor(t *testing.T) {
	f := newFixture(3)
	f.store.seed("ann", 2)

	require.NoError(t, f.ctrl.Start(context.Background(), ""))

	st := f.ctrl.Status()
	assert.Equal(t, "ann", st.Contributor)
	assert.Equal(t, 0, st.SentenceIndex)
	assert.Equal(t, 1, st.Ordinal)
	assert.Equal(t, entities.CaptureStateIdle, st.State)
	assert.Equal(t, 1, st.CompletedCount)
}

func TestStart_UnknownContributor(t *testing.T) {
	f := newFixture(3)
	err := f.ctrl.Start(context.Background(), "zed")
	assert.ErrorIs(t, err, ErrInvalidContributor)
}

func TestSaveNewRecording(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	capture(t, f.ctrl)
	require.NoError(t, f.ctrl.Save(ctx, false))

	st := f.ctrl.Status()
	assert.Equal(t, entities.CaptureStateIdle, st.State)
	assert.False(t, st.HasPending)
	assert.True(t, st.Recorded)
	assert.Equal(t, 1, st.CompletedCount)
	assert.Equal(t, 33.3, st.Progress)
	assert.Equal(t, NoticeSaved, st.Notice)
	assert.Empty(t, f.confirmer.prompts)

	assert.Equal(t, []string{"list_completed", "put_blob", "get_blob_url", "put_metadata"}, f.store.callsLog())
	meta := f.store.meta[storedKey{"ann", 1}]
	assert.Equal(t, "sentence 1", meta.SentenceText)
	assert.Equal(t, "http://blob/ann/0001.wav", meta.BlobURL)
	assert.Equal(t, "audio/wav", meta.ContentType)
	assert.Equal(t, int64(8), meta.SizeBytes)
}

func TestSaveAndAdvance(t *testing.T) {
	f := newFixture(2)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	capture(t, f.ctrl)
	require.NoError(t, f.ctrl.Save(ctx, true))
	assert.Equal(t, 1, f.ctrl.Status().SentenceIndex)

	// Last sentence: advancing after save stays put
	capture(t, f.ctrl)
	require.NoError(t, f.ctrl.Save(ctx, true))
	assert.Equal(t, 1, f.ctrl.Status().SentenceIndex)
	assert.Equal(t, float64(100), f.ctrl.Progress())
}

func TestReplace_ConfirmedDeletesBeforeWriting(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	f.store.seed("ann", 1)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	capture(t, f.ctrl)
	require.NoError(t, f.ctrl.Save(ctx, false))

	assert.Equal(t, []Prompt{PromptReplace}, f.confirmer.prompts)
	assert.Equal(t, []string{
		"list_completed",
		"delete_blob",
		"delete_metadata",
		"put_blob",
		"get_blob_url",
		"put_metadata",
	}, f.store.callsLog())
	assert.Equal(t, []byte("RIFFdata"), f.store.blobs[storedKey{"ann", 1}])
	assert.Equal(t, NoticeReplaced, f.ctrl.Status().Notice)
	assert.Equal(t, 1, f.ctrl.Status().CompletedCount)
}

func TestReplace_DeclinedLeavesStoreUntouched(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	f.store.seed("ann", 1)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	f.confirmer.answer = false

	capture(t, f.ctrl)
	err := f.ctrl.Save(ctx, false)

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	var confirmErr *ConfirmationError
	require.True(t, errors.As(err, &confirmErr))
	assert.Equal(t, PromptReplace, confirmErr.Prompt)
	assert.Equal(t, []string{"list_completed"}, f.store.callsLog())
	st := f.ctrl.Status()
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, st.State)
	assert.True(t, st.HasPending)
	assert.Equal(t, []byte("old"), f.store.blobs[storedKey{"ann", 1}])
}

func TestSaveLatestWins(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	for _, take := range []string{"one", "two", "three"} {
		f.input.next = &fakeCapture{blob: Blob{Data: []byte(take), ContentType: "audio/wav"}}
		capture(t, f.ctrl)
		require.NoError(t, f.ctrl.Save(ctx, false))
	}

	assert.Len(t, f.store.blobs, 1)
	assert.Len(t, f.store.meta, 1)
	assert.Equal(t, []byte("three"), f.store.blobs[storedKey{"ann", 1}])
	assert.Equal(t, 1, f.ctrl.Status().CompletedCount)
}

func TestCompletedSetGrowsUnderOneContributor(t *testing.T) {
	f := newFixture(4)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	prev := 0
	for i := 0; i < 4; i++ {
		capture(t, f.ctrl)
		require.NoError(t, f.ctrl.Save(ctx, true))
		size := f.ctrl.Status().CompletedCount
		assert.GreaterOrEqual(t, size, prev)
		prev = size
	}
	assert.Equal(t, 4, prev)

	require.NoError(t, f.ctrl.SelectContributor(ctx, "bob"))
	assert.Equal(t, 0, f.ctrl.Status().CompletedCount)
}

func TestSaveFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		seeded   bool
		failOp   string
		wantKind error
		wantStep SaveStep
		orphaned bool
		// completed reports whether the sentence is still in the completed set afterwards
		completed bool
	}{
		{name: "blob write", failOp: "put_blob", wantKind: ErrBlobWriteFailed, wantStep: StepPutBlob},
		{name: "metadata write", failOp: "put_metadata", wantKind: ErrMetadataWriteFailed, wantStep: StepPutMetadata, orphaned: true},
		{name: "url resolve", failOp: "get_blob_url", wantKind: ErrMetadataWriteFailed, wantStep: StepResolveURL, orphaned: true},
		{name: "delete blob", seeded: true, failOp: "delete_blob", wantKind: ErrDeleteFailed, wantStep: StepDeleteBlob, completed: true},
		{name: "delete metadata", seeded: true, failOp: "delete_metadata", wantKind: ErrDeleteFailed, wantStep: StepDeleteMetadata, completed: true},
		{name: "write after delete", seeded: true, failOp: "put_blob", wantKind: ErrBlobWriteFailed, wantStep: StepPutBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(3)
			ctx := context.Background()
			if tt.seeded {
				f.store.seed("ann", 1)
			}
			require.NoError(t, f.ctrl.Start(ctx, "ann"))
			capture(t, f.ctrl)
			f.store.failures[tt.failOp] = boom

			err := f.ctrl.Save(ctx, true)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.ErrorIs(t, err, boom)
			assert.NotErrorIs(t, err, ErrStoreUnavailable)

			var saveErr *SaveError
			require.ErrorAs(t, err, &saveErr)
			assert.Equal(t, tt.wantStep, saveErr.Step)
			assert.Equal(t, "ann/0001.wav", saveErr.Key)
			assert.Equal(t, tt.orphaned, saveErr.Orphaned)

			st := f.ctrl.Status()
			assert.Equal(t, entities.CaptureStateCapturedUnsaved, st.State)
			assert.True(t, st.HasPending)
			assert.Equal(t, 0, st.SentenceIndex)
			assert.Equal(t, NoticeSaveFailed, st.Notice)
			assert.Equal(t, tt.completed, st.Recorded)

			// Retrying after the fault clears succeeds
			delete(f.store.failures, tt.failOp)
			require.NoError(t, f.ctrl.Save(ctx, false))
			assert.True(t, f.ctrl.Status().Recorded)
		})
	}
}

func TestSaveTimeoutIsStoreUnavailable(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	deps := f.deps()
	deps.StoreTimeout = 10 * time.Millisecond
	f.ctrl = NewController("timeout", deps)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	capture(t, f.ctrl)

	f.store.block = "put_blob"
	err := f.ctrl.Save(ctx, false)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, ErrBlobWriteFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, f.ctrl.Status().State)
}

func TestSaveGuards(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	assert.ErrorIs(t, f.ctrl.Save(ctx, false), ErrIllegalState)

	require.NoError(t, f.ctrl.StartCapture(ctx))
	assert.ErrorIs(t, f.ctrl.Save(ctx, false), ErrIllegalState)
}

func TestAdvanceGuards(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	require.NoError(t, f.ctrl.StartCapture(ctx))
	n, err := f.ctrl.Advance(Next)
	require.NoError(t, err)
	assert.Equal(t, NoticeCapturing, n)
	assert.Equal(t, 0, f.ctrl.Status().SentenceIndex)

	require.NoError(t, f.ctrl.StopCapture(ctx))
	n, err = f.ctrl.Advance(Next)
	require.NoError(t, err)
	assert.Equal(t, NoticeSaveFirst, n)
	assert.Equal(t, "Save or discard the recording before moving", n.Message())

	st := f.ctrl.Status()
	assert.Equal(t, 0, st.SentenceIndex)
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, st.State)
	assert.True(t, st.HasPending)

	n, err = f.ctrl.JumpTo(3)
	require.NoError(t, err)
	assert.Equal(t, NoticeSaveFirst, n)
	assert.Equal(t, 0, f.ctrl.Status().SentenceIndex)

	f.ctrl.state = entities.CaptureStateSaving
	n, err = f.ctrl.Advance(Prev)
	require.NoError(t, err)
	assert.Equal(t, NoticeSaving, n)
}

func TestAdvanceBoundaries(t *testing.T) {
	f := newFixture(3)
	require.NoError(t, f.ctrl.Start(context.Background(), "ann"))

	n, err := f.ctrl.Advance(Prev)
	require.NoError(t, err)
	assert.Equal(t, NoticeAtBoundary, n)
	assert.Equal(t, 0, f.ctrl.Status().SentenceIndex)

	for i := 0; i < 2; i++ {
		n, err = f.ctrl.Advance(Next)
		require.NoError(t, err)
		assert.Equal(t, NoticeNone, n)
	}
	assert.Equal(t, 2, f.ctrl.Status().SentenceIndex)

	n, err = f.ctrl.Advance(Next)
	require.NoError(t, err)
	assert.Equal(t, NoticeAtBoundary, n)
	assert.Equal(t, 2, f.ctrl.Status().SentenceIndex)

	_, err = f.ctrl.Advance(Direction(9))
	assert.Error(t, err)
}

func TestJumpTo(t *testing.T) {
	f := newFixture(10)
	require.NoError(t, f.ctrl.Start(context.Background(), "ann"))

	for _, ordinal := range []int{0, 11, -1} {
		_, err := f.ctrl.JumpTo(ordinal)
		assert.ErrorIs(t, err, ErrOutOfRange, "ordinal %d", ordinal)
		assert.Equal(t, 0, f.ctrl.Status().SentenceIndex)
	}

	n, err := f.ctrl.JumpTo(10)
	require.NoError(t, err)
	assert.Equal(t, NoticeNone, n)
	assert.Equal(t, 9, f.ctrl.Status().SentenceIndex)
	assert.Equal(t, uint(10), f.ctrl.Status().SentenceID)
}

func TestJumpToOutOfRangeBeforeGuard(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	capture(t, f.ctrl)

	_, err := f.ctrl.JumpTo(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNavigationResetsStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(3)
	deps := f.deps()
	deps.Now = func() time.Time { return now }
	f.ctrl = NewController("nav", deps)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	require.NoError(t, f.ctrl.StartCapture(ctx))
	now = now.Add(3500 * time.Millisecond)
	assert.Equal(t, 3, f.ctrl.Status().ElapsedSeconds)
	require.NoError(t, f.ctrl.StopCapture(ctx))
	now = now.Add(10 * time.Second)
	assert.Equal(t, 3, f.ctrl.Status().ElapsedSeconds)

	require.NoError(t, f.ctrl.Save(ctx, false))
	_, err := f.ctrl.Advance(Next)
	require.NoError(t, err)

	st := f.ctrl.Status()
	assert.Equal(t, 0, st.ElapsedSeconds)
	assert.Equal(t, NoticeNone, st.Notice)
	assert.False(t, st.HasPending)
}

func TestProgressEmptyCatalog(t *testing.T) {
	f := newFixture(0)
	require.NoError(t, f.ctrl.Start(context.Background(), "ann"))

	assert.Equal(t, float64(0), f.ctrl.Progress())
	st := f.ctrl.Status()
	assert.Equal(t, float64(0), st.Progress)
	assert.Equal(t, 0, st.Ordinal)

	assert.ErrorIs(t, f.ctrl.StartCapture(context.Background()), ErrIllegalState)
	_, err := f.ctrl.JumpTo(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSelectContributor_WithPendingCapture(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	f.store.seed("bob", 1, 3)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	_, err := f.ctrl.JumpTo(2)
	require.NoError(t, err)
	capture(t, f.ctrl)

	require.NoError(t, f.ctrl.SelectContributor(ctx, "bob"))

	assert.Equal(t, []Prompt{PromptDiscard}, f.confirmer.prompts)
	st := f.ctrl.Status()
	assert.Equal(t, "bob", st.Contributor)
	assert.Equal(t, entities.CaptureStateIdle, st.State)
	assert.False(t, st.HasPending)
	assert.Equal(t, 2, st.CompletedCount)
	assert.Equal(t, 1, st.SentenceIndex, "index is kept across contributors")
}

func TestSelectContributor_DeclinedDiscard(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	capture(t, f.ctrl)
	f.confirmer.answer = false

	err := f.ctrl.SelectContributor(ctx, "bob")

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	st := f.ctrl.Status()
	assert.Equal(t, "ann", st.Contributor)
	assert.True(t, st.HasPending)
}

func TestSelectContributor_CancelsLiveCapture(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	require.NoError(t, f.ctrl.StartCapture(ctx))

	require.NoError(t, f.ctrl.SelectContributor(ctx, "bob"))
	assert.True(t, f.input.next.cancelled)
	assert.Equal(t, entities.CaptureStateIdle, f.ctrl.Status().State)
}

func TestSelectContributor_Errors(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	assert.ErrorIs(t, f.ctrl.SelectContributor(ctx, "nobody"), ErrInvalidContributor)
	assert.Equal(t, "ann", f.ctrl.Status().Contributor)

	f.store.failures["list_completed"] = errors.New("down")
	err := f.ctrl.SelectContributor(ctx, "bob")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, "ann", f.ctrl.Status().Contributor)

	f.ctrl.state = entities.CaptureStateSaving
	assert.ErrorIs(t, f.ctrl.SelectContributor(ctx, "bob"), ErrIllegalState)
}

func TestCaptureDeviceFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("denied", func(t *testing.T) {
		f := newFixture(3)
		require.NoError(t, f.ctrl.Start(ctx, "ann"))
		f.input.denied = true

		assert.ErrorIs(t, f.ctrl.StartCapture(ctx), ErrDeviceUnavailable)
		assert.Equal(t, entities.CaptureStateIdle, f.ctrl.Status().State)
	})

	t.Run("stop fails", func(t *testing.T) {
		f := newFixture(3)
		require.NoError(t, f.ctrl.Start(ctx, "ann"))
		f.input.next = &fakeCapture{err: errors.New("device lost")}
		require.NoError(t, f.ctrl.StartCapture(ctx))

		assert.ErrorIs(t, f.ctrl.StopCapture(ctx), ErrDeviceUnavailable)
		assert.Equal(t, entities.CaptureStateIdle, f.ctrl.Status().State)
	})

	t.Run("empty", func(t *testing.T) {
		f := newFixture(3)
		require.NoError(t, f.ctrl.Start(ctx, "ann"))
		f.input.next = &fakeCapture{}
		require.NoError(t, f.ctrl.StartCapture(ctx))

		assert.ErrorIs(t, f.ctrl.StopCapture(ctx), ErrEmptyCapture)
		assert.False(t, f.ctrl.Status().HasPending)
	})

	t.Run("double start", func(t *testing.T) {
		f := newFixture(3)
		require.NoError(t, f.ctrl.Start(ctx, "ann"))
		require.NoError(t, f.ctrl.StartCapture(ctx))

		assert.ErrorIs(t, f.ctrl.StartCapture(ctx), ErrIllegalState)
		assert.Equal(t, 1, f.input.opened)
	})

	t.Run("stop while idle", func(t *testing.T) {
		f := newFixture(3)
		require.NoError(t, f.ctrl.Start(ctx, "ann"))
		assert.ErrorIs(t, f.ctrl.StopCapture(ctx), ErrIllegalState)
	})
}

func TestDiscard(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	assert.ErrorIs(t, f.ctrl.Discard(ctx), ErrIllegalState)

	capture(t, f.ctrl)
	require.NoError(t, f.ctrl.Discard(ctx))
	st := f.ctrl.Status()
	assert.Equal(t, entities.CaptureStateIdle, st.State)
	assert.False(t, st.HasPending)
	assert.Equal(t, NoticeDiscarded, st.Notice)

	n, err := f.ctrl.Advance(Next)
	require.NoError(t, err)
	assert.Equal(t, NoticeNone, n)
}

func TestPlayPending(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	assert.ErrorIs(t, f.ctrl.PlayPending(ctx), ErrIllegalState)

	capture(t, f.ctrl)
	require.NoError(t, f.ctrl.PlayPending(ctx))
	require.Len(t, f.output.played, 1)
	assert.Equal(t, []byte("RIFFdata"), f.output.played[0].Data)
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, f.ctrl.Status().State)

	f.output.err = errors.New("no speakers")
	assert.ErrorIs(t, f.ctrl.PlayPending(ctx), ErrDeviceUnavailable)
}

func TestPlayCommitted(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	f.store.seed("ann", 1)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))

	require.NoError(t, f.ctrl.PlayCommitted(ctx))
	require.Len(t, f.output.played, 1)
	assert.Equal(t, "http://blob/ann/0001.wav", f.output.played[0].URL)

	_, err := f.ctrl.JumpTo(2)
	require.NoError(t, err)
	assert.ErrorIs(t, f.ctrl.PlayCommitted(ctx), ErrIllegalState)
}

func TestPlayCommitted_MissingBlob(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	f.store.seed("ann", 1)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	delete(f.store.blobs, storedKey{"ann", 1})

	err := f.ctrl.PlayCommitted(ctx)

	assert.ErrorIs(t, err, ErrNotFound)
	st := f.ctrl.Status()
	assert.True(t, st.Recorded)
	assert.Equal(t, 1, st.CompletedCount)
	assert.Equal(t, NoticeMissing, st.Notice)
	assert.Empty(t, f.output.played)
}

func TestRefreshCatalog(t *testing.T) {
	f := newFixture(5)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	_, err := f.ctrl.JumpTo(5)
	require.NoError(t, err)

	f.catalog.sentences = f.catalog.sentences[:2]
	require.NoError(t, f.ctrl.RefreshCatalog(ctx))

	st := f.ctrl.Status()
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.SentenceIndex)

	capture(t, f.ctrl)
	assert.ErrorIs(t, f.ctrl.RefreshCatalog(ctx), ErrIllegalState)
}

func TestSnapshotRestore(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	f.store.seed("ann", 3)
	require.NoError(t, f.ctrl.Start(ctx, "ann"))
	_, err := f.ctrl.JumpTo(2)
	require.NoError(t, err)
	capture(t, f.ctrl)

	snap := f.ctrl.Snapshot()
	assert.Equal(t, []uint{3}, snap.Completed)
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, snap.CaptureState)
	require.NotNil(t, snap.Pending)

	restored := NewController("test-session", f.deps())
	require.NoError(t, restored.Restore(ctx, snap))
	assert.Equal(t, f.ctrl.Status(), restored.Status())

	// A snapshot taken mid-save resumes with the take kept
	snap.CaptureState = entities.CaptureStateSaving
	require.NoError(t, restored.Restore(ctx, snap))
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, restored.Status().State)

	// Without a resumable input a live capture cannot survive a restore
	snap.CaptureState = entities.CaptureStateCapturing
	snap.Pending = nil
	now := time.Now()
	snap.CaptureStartedAt = &now
	require.NoError(t, restored.Restore(ctx, snap))
	assert.Equal(t, entities.CaptureStateIdle, restored.Status().State)
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()
	ctrl := NewController("test-session", f.deps())

	err := ctrl.Restore(ctx, &entities.SessionSnapshot{ID: "test-session", CaptureState: entities.CaptureStateIdle})
	assert.ErrorIs(t, err, entities.ErrInvalidSnapshot)

	err = ctrl.Restore(ctx, &entities.SessionSnapshot{
		ID:           "test-session",
		Contributor:  "ann",
		CaptureState: entities.CaptureState("paused"),
	})
	assert.ErrorIs(t, err, entities.ErrInvalidSnapshot)
	assert.Equal(t, entities.CaptureStateIdle, ctrl.Status().State)
}
