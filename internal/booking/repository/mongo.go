package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingerrors "securebook/internal/booking/errors"
	"securebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionName = "Drafts"

	ttlIndexName = "drafts_updated_at_ttl"
)

type mongoDraftRepository struct {
	collection *mongo.Collection
	ttl        time.Duration
	timeout    time.Duration
	now        func() time.Time
}

func NewMongoDraftRepository(db *mongo.Database, ttl, timeout time.Duration) DraftRepository {
	return newMongoDraftRepository(db, ttl, timeout, time.Now)
}

func newMongoDraftRepository(db *mongo.Database, ttl, timeout time.Duration, now func() time.Time) *mongoDraftRepository {
	return &mongoDraftRepository{
		collection: db.Collection(CollectionName),
		ttl:        ttl,
		timeout:    timeout,
		now:        now,
	}
}

// EnsureIndexes creates the TTL index that expires idle drafts.
func EnsureIndexes(ctx context.Context, db *mongo.Database, ttl time.Duration) error {
	index := mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().
			SetName(ttlIndexName).
			SetExpireAfterSeconds(int32(ttl / time.Second)),
	}
	if _, err := db.Collection(CollectionName).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create drafts TTL index: %w", err)
	}
	return nil
}

// withTimeout keeps the caller's deadline when it is the tighter one.
func (r *mongoDraftRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < r.timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *mongoDraftRepository) Get(ctx context.Context, sessionID, category string) (*model.FormState, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id := model.FormStateID(sessionID, category)

	var state model.FormState
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find form state: %w", err)
	}

	// The TTL monitor runs about once a minute; hide what it has not reaped.
	if r.now().Sub(state.UpdatedAt) > r.ttl {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrNotFound, id)
	}
	if state.Draft == nil {
		state.Draft = model.Draft{}
	}
	return &state, nil
}

func (r *mongoDraftRepository) Save(ctx context.Context, state *model.FormState) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	state.ID = model.FormStateID(state.SessionID, state.Category)

	now := r.now().UTC()
	next := cloneState(state)
	next.Version = state.Version + 1
	next.UpdatedAt = now.Truncate(time.Millisecond)

	opts := options.Replace().SetUpsert(state.Version == 0)

	result, err := r.collection.ReplaceOne(ctx, r.saveFilter(state, now), next, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", bookingerrors.ErrVersionConflict, state.ID)
		}
		return fmt.Errorf("failed to save form state: %w", err)
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return fmt.Errorf("%w: %s at version %d", bookingerrors.ErrVersionConflict, state.ID, state.Version)
	}

	state.Version = next.Version
	state.UpdatedAt = next.UpdatedAt
	return nil
}

// saveFilter matches the stored document a save may replace. A new state
// (version 0) may also replace one that Get already reports as expired;
// otherwise the upsert collides on _id until the TTL monitor reaps it.
func (r *mongoDraftRepository) saveFilter(state *model.FormState, now time.Time) bson.M {
	if state.Version != 0 {
		return bson.M{"_id": state.ID, "version": state.Version}
	}
	return bson.M{
		"_id": state.ID,
		"$or": bson.A{
			bson.M{"version": int64(0)},
			bson.M{"updated_at": bson.M{"$lt": now.Add(-r.ttl)}},
		},
	}
}

func (r *mongoDraftRepository) Delete(ctx context.Context, sessionID, category string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": model.FormStateID(sessionID, category)}); err != nil {
		return fmt.Errorf("failed to delete form state: %w", err)
	}
	return nil
}

func (r *mongoDraftRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}
