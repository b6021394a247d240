package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingerrors "securebook/internal/booking/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var mongoNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newMockRepo(mt *mtest.T) *mongoDraftRepository {
	return newMongoDraftRepository(mt.DB, time.Hour, 5*time.Second, func() time.Time { return mongoNow })
}

// replaceFilter returns the query of the update command the last save sent.
func replaceFilter(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	if evt == nil || evt.CommandName != "update" {
		mt.Fatalf("expected an update command, got %+v", evt)
	}
	return evt.Command.Lookup("updates", "0", "q").Document()
}

func TestMongo_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new state may replace an expired document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		state := newState("s1")
		if err := repo.Save(context.Background(), state); err != nil {
			mt.Fatalf("expected the expired document to be replaced, got %v", err)
		}
		if state.Version != 1 {
			mt.Errorf("expected version 1, got %d", state.Version)
		}

		q := replaceFilter(mt)
		if q.Lookup("_id").StringValue() != "s1:library" {
			mt.Errorf("unexpected _id in filter %v", q)
		}
		cutoff := q.Lookup("$or", "1", "updated_at", "$lt").Time()
		if !cutoff.Equal(mongoNow.Add(-time.Hour)) {
			mt.Errorf("expected expiry cutoff %v, got %v", mongoNow.Add(-time.Hour), cutoff)
		}
	})

	mt.Run("new state upserts", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "s1:library"}}}},
		))

		state := newState("s1")
		if err := repo.Save(context.Background(), state); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if state.Version != 1 || !state.UpdatedAt.Equal(mongoNow) {
			mt.Errorf("unexpected saved state %+v", state)
		}
	})

	mt.Run("live document conflicts with a new state", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: Drafts index: _id_",
		}))

		err := repo.Save(context.Background(), newState("s1"))
		if !errors.Is(err, bookingerrors.ErrVersionConflict) {
			mt.Errorf("expected ErrVersionConflict, got %v", err)
		}
	})

	mt.Run("stored version must match", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		state := newState("s1")
		state.Version = 3
		err := repo.Save(context.Background(), state)
		if !errors.Is(err, bookingerrors.ErrVersionConflict) {
			mt.Errorf("expected ErrVersionConflict, got %v", err)
		}
		if state.Version != 3 {
			mt.Errorf("version must not change on conflict, got %d", state.Version)
		}

		q := replaceFilter(mt)
		if q.Lookup("version").Int64() != 3 {
			mt.Errorf("expected the read version in the filter, got %v", q)
		}
		if _, err := q.LookupErr("$or"); err == nil {
			mt.Errorf("versioned saves must not match expired documents, got %v", q)
		}
	})
}

func TestMongo_GetHidesExpired(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("expired", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		ns := mt.DB.Name() + "." + CollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s1:library"},
			{Key: "session_id", Value: "s1"},
			{Key: "category", Value: "library"},
			{Key: "version", Value: int64(4)},
			{Key: "updated_at", Value: mongoNow.Add(-2 * time.Hour)},
		}))

		_, err := repo.Get(context.Background(), "s1", "library")
		if !errors.Is(err, bookingerrors.ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("live", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		ns := mt.DB.Name() + "." + CollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s1:library"},
			{Key: "session_id", Value: "s1"},
			{Key: "category", Value: "library"},
			{Key: "version", Value: int64(4)},
			{Key: "updated_at", Value: mongoNow.Add(-time.Minute)},
		}))

		state, err := repo.Get(context.Background(), "s1", "library")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if state.Version != 4 || state.Draft == nil {
			mt.Errorf("unexpected state %+v", state)
		}
	})
}
