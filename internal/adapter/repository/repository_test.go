package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Contributor{}, &entities.Sentence{}, &entities.Recording{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestContributorRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewContributorRepository(newTestDB(t))

	ann := &entities.Contributor{Name: "ann", DisplayName: "Ann"}
	bob := &entities.Contributor{Name: "bob", DisplayName: "Bob"}
	require.NoError(t, repo.Create(ctx, ann))
	require.NoError(t, repo.Create(ctx, bob))

	err := repo.Create(ctx, &entities.Contributor{Name: "ann", DisplayName: "Other Ann"})
	assert.ErrorIs(t, err, entities.ErrContributorAlreadyExists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ann", list[0].Name)
	assert.Equal(t, "bob", list[1].Name)

	found, err := repo.FindByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, ann.ID))
	_, err = repo.FindByID(ctx, ann.ID)
	assert.ErrorIs(t, err, entities.ErrContributorNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ann.ID), entities.ErrContributorNotFound)
}

func TestSentenceRepository_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewSentenceRepository(newTestDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []*entities.Sentence{
		{ID: 3, Text: "three"},
		{ID: 1, Text: "one"},
		{ID: 2, Text: "two"},
	}))
	require.NoError(t, repo.CreateBatch(ctx, []*entities.Sentence{{ID: 2, Text: "two again"}}))

	sentences, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sentences, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{sentences[0].ID, sentences[1].ID, sentences[2].ID})
	assert.Equal(t, "two again", sentences[1].Text)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestRecordingRepository_UpsertKeepsOneRowPerKey(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordingRepository(newTestDB(t))

	first := &entities.Recording{Owner: "ann", Filename: "0001.wav", SentenceID: 1, Sentence: "hello", StorageURL: "u1"}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entities.Recording{Owner: "ann", Filename: "0001.wav", SentenceID: 1, Sentence: "hello", StorageURL: "u2"}
	require.NoError(t, repo.Upsert(ctx, second))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "u2", all[0].StorageURL)
	assert.Equal(t, first.ID, all[0].ID)
}

func TestRecordingRepository_QueriesAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordingRepository(newTestDB(t))

	for _, rec := range []*entities.Recording{
		{Owner: "ann", Filename: "0002.wav", SentenceID: 2, StorageURL: "a2"},
		{Owner: "ann", Filename: "0001.wav", SentenceID: 1, StorageURL: "a1"},
		{Owner: "bob", Filename: "0001.wav", SentenceID: 1, StorageURL: "b1"},
	} {
		require.NoError(t, repo.Upsert(ctx, rec))
	}

	ids, err := repo.ListSentenceIDs(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids)

	counts, err := repo.CountByOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.OwnerCount{{Owner: "ann", Count: 2}, {Owner: "bob", Count: 1}}, counts)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	selected, err := repo.List(ctx, []uint{all[2].ID})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "bob", selected[0].Owner)

	key := entities.RecordingKey{Contributor: "ann", SentenceID: 1}
	require.NoError(t, repo.DeleteByKey(ctx, key))
	require.NoError(t, repo.DeleteByKey(ctx, key))

	ids, err = repo.ListSentenceIDs(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, ids)
}

func TestRecordingRepository_DatabaseFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT DISTINCT`).WillReturnError(errors.New("connection reset"))

	repo := NewRecordingRepository(db)
	_, err = repo.ListSentenceIDs(context.Background(), "ann")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
