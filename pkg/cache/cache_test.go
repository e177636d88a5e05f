package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record map[string]any

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func TestAccessorRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAccessor[record](NewMemoryStore(), nil)

	_, ok := a.Read(ctx, "educator:profile")
	assert.False(t, ok)

	require.NoError(t, a.Write(ctx, "educator:profile", record{"name": "Dr. Sarah Johnson"}))
	got, ok := a.Read(ctx, "educator:profile")
	require.True(t, ok)
	assert.Equal(t, "Dr. Sarah Johnson", got["name"])
}

func TestCorruptEntryIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "educator:profile", []byte("{not json")))

	got, ok := NewAccessor[record](store, nil).Read(ctx, "educator:profile")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestBackendErrors(t *testing.T) {
	ctx := context.Background()
	a := NewAccessor[record](failingStore{}, nil)

	_, ok := a.Read(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, a.Write(ctx, "k", record{}))
}

func TestNilAccessorIsInert(t *testing.T) {
	var a *Accessor[record]
	_, ok := a.Read(context.Background(), "k")
	assert.False(t, ok)
	assert.NoError(t, a.Write(context.Background(), "k", record{}))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'x'

	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))
}
