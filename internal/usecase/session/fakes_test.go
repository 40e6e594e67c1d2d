package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

type fakeCatalog struct {
	contributors []*entities.Contributor
	sentences    []*entities.Sentence
	err          error
}

func newCatalog(n int, contributors ...string) *fakeCatalog {
	c := &fakeCatalog{}
	for i, name := range contributors {
		c.contributors = append(c.contributors, &entities.Contributor{ID: uint(i + 1), Name: name, DisplayName: name})
	}
	for i := 1; i <= n; i++ {
		c.sentences = append(c.sentences, &entities.Sentence{ID: uint(i), Text: fmt.Sprintf("sentence %d", i)})
	}
	return c
}

func (f *fakeCatalog) ListContributors(context.Context) ([]*entities.Contributor, error) {
	return f.contributors, f.err
}

func (f *fakeCatalog) ListSentences(context.Context) ([]*entities.Sentence, error) {
	return f.sentences, f.err
}

type storedKey struct {
	contributor string
	sentenceID  uint
}

// fakeStore records every call in order and lets tests fail individual calls
type fakeStore struct {
	mu       sync.Mutex
	blobs    map[storedKey][]byte
	meta     map[storedKey]Metadata
	calls    []string
	failures map[string]error
	// block makes the named call wait for its context to end
	block string
}

func newStore() *fakeStore {
	return &fakeStore{
		blobs:    make(map[storedKey][]byte),
		meta:     make(map[storedKey]Metadata),
		failures: make(map[string]error),
	}
}

func (f *fakeStore) record(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	err := f.failures[op]
	block := f.block == op
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeStore) seed(contributor string, ids ...uint) {
	for _, id := range ids {
		k := storedKey{contributor, id}
		f.blobs[k] = []byte("old")
		f.meta[k] = Metadata{Contributor: contributor, SentenceID: id, BlobURL: "http://blob/old"}
	}
}

func (f *fakeStore) callsLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) ListCompleted(ctx context.Context, contributor string) ([]uint, error) {
	if err := f.record(ctx, "list_completed"); err != nil {
		return nil, err
	}
	var ids []uint
	for k := range f.meta {
		if k.contributor == contributor {
			ids = append(ids, k.sentenceID)
		}
	}
	return ids, nil
}

func (f *fakeStore) PutBlob(ctx context.Context, contributor string, sentenceID uint, data []byte, _ string) error {
	if err := f.record(ctx, "put_blob"); err != nil {
		return err
	}
	f.blobs[storedKey{contributor, sentenceID}] = data
	return nil
}

func (f *fakeStore) DeleteBlob(ctx context.Context, contributor string, sentenceID uint) error {
	if err := f.record(ctx, "delete_blob"); err != nil {
		return err
	}
	delete(f.blobs, storedKey{contributor, sentenceID})
	return nil
}

func (f *fakeStore) GetBlobURL(ctx context.Context, contributor string, sentenceID uint) (string, error) {
	if err := f.record(ctx, "get_blob_url"); err != nil {
		return "", err
	}
	if _, ok := f.blobs[storedKey{contributor, sentenceID}]; !ok {
		return "", entities.ErrBlobNotFound
	}
	return fmt.Sprintf("http://blob/%s/%04d.wav", contributor, sentenceID), nil
}

func (f *fakeStore) PutMetadata(ctx context.Context, meta Metadata) error {
	if err := f.record(ctx, "put_metadata"); err != nil {
		return err
	}
	f.meta[storedKey{meta.Contributor, meta.SentenceID}] = meta
	return nil
}

func (f *fakeStore) DeleteMetadata(ctx context.Context, contributor string, sentenceID uint) error {
	if err := f.record(ctx, "delete_metadata"); err != nil {
		return err
	}
	delete(f.meta, storedKey{contributor, sentenceID})
	return nil
}

type fakeCapture struct {
	blob      Blob
	err       error
	cancelled bool
}

func (c *fakeCapture) Stop(context.Context) (Blob, error) { return c.blob, c.err }
func (c *fakeCapture) Cancel() { c.cancelled = true }

type fakeInput struct {
	denied bool
	next   *fakeCapture
	opened int
}

func (f *fakeInput) Open(context.Context) (Capture, error) {
	if f.denied {
		return nil, errors.New("permission denied")
	}
	f.opened++
	if f.next == nil {
		f.next = &fakeCapture{blob: Blob{Data: []byte("RIFFdata"), ContentType: "audio/wav"}}
	}
	return f.next, nil
}

type fakeOutput struct {
	played []Playback
	err    error
}

func (f *fakeOutput) Play(_ context.Context, p Playback) error {
	if f.err != nil {
		return f.err
	}
	f.played = append(f.played, p)
	return nil
}

// fakeConfirmer answers with a fixed value and records each prompt
type fakeConfirmer struct {
	answer  bool
	prompts []Prompt
}

func (f *fakeConfirmer) Confirm(_ context.Context, p Prompt) bool {
	f.prompts = append(f.prompts, p)
	return f.answer
}

type fixture struct {
	catalog   *fakeCatalog
	store     *fakeStore
	input     *fakeInput
	output    *fakeOutput
	confirmer *fakeConfirmer
	ctrl      *Controller
}

func newFixture(sentences int, contributors ...string) *fixture {
	if len(contributors) == 0 {
		contributors = []string{"ann", "bob"}
	}
	f := &fixture{
		catalog:   newCatalog(sentences, contributors...),
		store:     newStore(),
		input:     &fakeInput{},
		output:    &fakeOutput{},
		confirmer: &fakeConfirmer{answer: true},
	}
	f.ctrl = NewController("test-session", f.deps())
	return f
}

func (f *fixture) deps() Dependencies {
	return Dependencies{
		Catalog:   f.catalog,
		Store:     f.store,
		Input:     f.input,
		Output:    f.output,
		Confirmer: f.confirmer,
	}
}
