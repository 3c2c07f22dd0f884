package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/scorekit/core"
)

func TestMemoryStore_KV(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.Get(ctx, "k")
	assert.True(t, errors.Is(err, core.ErrStoreNotFound))

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 1))
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	s.mu.Lock()
	s.data["k"].expire = time.Now().Add(-time.Second)
	s.mu.Unlock()
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	all, err := s.HGetAll(ctx, "doc:1")
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.HSet(ctx, "doc:1", "title", []byte("我爱我的中国")))
	require.NoError(t, s.HSet(ctx, "doc:1", "clicks", []byte("42")))

	v, err := s.HGet(ctx, "doc:1", "title")
	require.NoError(t, err)
	assert.Equal(t, "我爱我的中国", string(v))

	_, err = s.HGet(ctx, "doc:1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err = s.HGetAll(ctx, "doc:1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	all["clicks"] = []byte("0")
	v, _ = s.HGet(ctx, "doc:1", "clicks")
	assert.Equal(t, "42", string(v), "HGetAll must return a copy")

	assert.Equal(t, []string{"doc:1"}, s.Keys("doc:"))

	require.NoError(t, s.Delete(ctx, "doc:1"))
	all, err = s.HGetAll(ctx, "doc:1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.Equal(t, "memory", s.Name())
}
