package audio

import (
	"context"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

type staticCatalog struct{}

func (staticCatalog) ListContributors(context.Context) ([]*entities.Contributor, error) {
	return []*entities.Contributor{{ID: 1, Name: "ann"}}, nil
}

func (staticCatalog) ListSentences(context.Context) ([]*entities.Sentence, error) {
	return []*entities.Sentence{{ID: 1, Text: "Hello."}}, nil
}

type nopStore struct{}

func (nopStore) ListCompleted(context.Context, string) ([]uint, error) { return nil, nil }
func (nopStore) PutBlob(context.Context, string, uint, []byte, string) error { return nil }
func (nopStore) DeleteBlob(context.Context, string, uint) error { return nil }
func (nopStore) GetBlobURL(context.Context, string, uint) (string, error) { return "", nil }
func (nopStore) PutMetadata(context.Context, session.Metadata) error { return nil }
func (nopStore) DeleteMetadata(context.Context, string, uint) error { return nil }
