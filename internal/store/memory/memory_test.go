package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/store"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	in := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "doc", in))
	in[0] = 'X' // caller mutation must not leak into the store

	got, err := s.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Set(ctx, "doc", []byte("v2")))
	got, _ = s.Get(ctx, "doc")
	assert.Equal(t, "v2", string(got))
	assert.Equal(t, 1, s.Len())
}
