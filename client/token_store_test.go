package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindwell", "session.json")
	store := NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc.def.ghi"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = NewFileTokenStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileTokenStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := NewFileTokenStore(path).Load()
	assert.ErrorContains(t, err, "corrupt session file")
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("t"))
	token, _ := store.Load()
	assert.Equal(t, "t", token)
	require.NoError(t, store.Clear())
	token, _ = store.Load()
	assert.Empty(t, token)
}
