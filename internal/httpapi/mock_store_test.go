package httpapi

import (
	"context"

	"grammarbot/internal/store"
	"grammarbot/pkg/types"
)

// dupStore rejects every name as taken.
type dupStore struct{}

func (dupStore) Create(context.Context, string) (types.Student, error) {
	return types.Student{}, store.ErrDuplicateName
}
func (dupStore) Get(context.Context, int64) (types.Student, error) {
	return types.Student{}, store.ErrNotFound
}
func (dupStore) List(context.Context) ([]types.Student, error) { return nil, nil }
