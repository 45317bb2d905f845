package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnm-bi/autoreport/utils"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range entries {
		e, err := w.Create(name)
		require.NoError(t, err)
		_, err = e.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractAll(t *testing.T) {
	dir := t.TempDir()
	writeZip(t, filepath.Join(dir, "ems1.zip"), map[string]string{
		"EMS1_Traffic_20240115.csv":     "a,b\n1,2\n",
		"nested/EMS1_User_20240115.csv": "c,d\n3,4\n",
	})
	writeZip(t, filepath.Join(dir, "ems2.zip"), map[string]string{
		"EMS2_Traffic_20240115.csv": "e,f\n5,6\n",
	})

	sum, err := ExtractAll(dir, false, utils.NewLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Archives)
	assert.Equal(t, 3, sum.Extracted)

	// Nested entries land flat in the staging directory.
	body, err := os.ReadFile(filepath.Join(dir, "EMS1_User_20240115.csv"))
	require.NoError(t, err)
	assert.Equal(t, "c,d\n3,4\n", string(body))

	// Archives are kept unless removal was requested.
	_, err = os.Stat(filepath.Join(dir, "ems1.zip"))
	assert.NoError(t, err)
}

func TestExtractAllRemovesArchives(t *testing.T) {
	dir := t.TempDir()
	writeZip(t, filepath.Join(dir, "drop.zip"), map[string]string{"x.csv": "x\n"})

	_, err := ExtractAll(dir, true, utils.NewLogger())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "drop.zip"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractAllCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.zip"), []byte("not a zip"), 0o644))

	_, err := ExtractAll(dir, false, utils.NewLogger())
	assert.Error(t, err)
}

func TestExtractAllNoArchives(t *testing.T) {
	sum, err := ExtractAll(t.TempDir(), false, utils.NewLogger())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}
