package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireClearsLeftovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "stale.csv"), []byte("old"), 0o644))

	d, err := Acquire(path)
	require.NoError(t, err)
	defer d.Release()

	entries, err := os.ReadDir(d.Path)
	require.NoError(t, err)
	assert.Empty(t, entries, "leftovers from a crashed run must be cleared")
}

func TestDirSourceFetch(t *testing.T) {
	drop := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(drop, "a.xlsx"), []byte("A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(drop, "b.zip"), []byte("B"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(drop, "sub"), 0o755))

	d, err := Acquire(filepath.Join(t.TempDir(), "staging"))
	require.NoError(t, err)
	defer d.Release()

	n, err := DirSource{Dir: drop}.Fetch(d.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	body, err := os.ReadFile(filepath.Join(d.Path, "a.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(body))

	// The drop directory is untouched.
	body, err = os.ReadFile(filepath.Join(drop, "a.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "A", string(body))
}

func TestRelease(t *testing.T) {
	d, err := Acquire(filepath.Join(t.TempDir(), "staging"))
	require.NoError(t, err)
	require.NoError(t, d.Release())

	_, err = os.Stat(d.Path)
	assert.True(t, os.IsNotExist(err))
}
