package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestSQLite_GetMissing(t *testing.T) {
	st, _ := openTestStore(t)

	_, ok, err := st.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_SetGetRemove(t *testing.T) {
	st, _ := openTestStore(t)

	require.NoError(t, st.Set(TokenKey, "tok-123"))

	got, ok, err := st.Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", got)

	require.NoError(t, st.Remove(TokenKey))

	_, ok, err = st.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_SetOverwrites(t *testing.T) {
	st, _ := openTestStore(t)

	require.NoError(t, st.Set(TokenKey, "first"))
	require.NoError(t, st.Set(TokenKey, "second"))

	got, ok, err := st.Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestSQLite_RemoveMissingIsNoError(t *testing.T) {
	st, _ := openTestStore(t)
	assert.NoError(t, st.Remove("never-set"))
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	st, path := openTestStore(t)
	require.NoError(t, st.Set(TokenKey, "persisted"))
	require.NoError(t, st.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", got)
}

func TestSQLite_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "credentials.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set("k", "v"))
}

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(TokenKey, "tok"))
	got, ok, _ := m.Get(TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "tok", got)

	require.NoError(t, m.Remove(TokenKey))
	_, ok, _ = m.Get(TokenKey)
	assert.False(t, ok)

	assert.NoError(t, m.Close())
}
