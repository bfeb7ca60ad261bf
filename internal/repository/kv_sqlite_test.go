package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKV_PutGet(t *testing.T) {
	kv, err := OpenSQLiteKV(filepath.Join(t.TempDir(), "travelpro.db"))
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()

	_, err = kv.Get(ctx, "travelpro_bookings")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, "travelpro_bookings", []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, "travelpro_bookings", []byte(`[{"id":"b1"}]`)))

	value, err := kv.Get(ctx, "travelpro_bookings")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b1"}]`, string(value))
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travelpro.db")
	ctx := context.Background()

	kv, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "travelpro_profile", []byte(`{"name":"Agent"}`)))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	value, err := kv.Get(ctx, "travelpro_profile")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Agent"}`, string(value))
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	_, err = kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
