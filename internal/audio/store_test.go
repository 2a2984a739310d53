package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "artifacts")
	store := NewStore(rootDir)

	path, err := store.Save("20251102_150405", []byte("fake wav bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootDir, "20251102_150405.wav"), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake wav bytes"), contents)
}

func TestStore_Remove(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save("20251102_150405", []byte("fake wav bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	assert.NoFileExists(t, path)

	assert.Error(t, store.Remove(path))
}
