// Package repository persists each session's form state. Saves are
// optimistic: a save names the version it read and fails with
// ErrVersionConflict when another writer got there first.
package repository

import (
	"context"

	"securebook/pkg/model"
)

type DraftRepository interface {
	// Get returns ErrNotFound when the session has no state for category.
	Get(ctx context.Context, sessionID, category string) (*model.FormState, error)
	// Save stores state if the stored version still equals state.Version
	// (zero for a new state) and increments state.Version on success.
	Save(ctx context.Context, state *model.FormState) error
	Delete(ctx context.Context, sessionID, category string) error
	Ping(ctx context.Context) error
}

func cloneState(s *model.FormState) *model.FormState {
	out := *s
	out.Draft = s.Draft.Clone()
	return &out
}
