package runlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndHistory(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record("2024-01-01", StatusOK, "all four technologies processed"))
	require.NoError(t, store.Record("2024-01-02", StatusNOK, "3G-ZTE: missing input"))

	hist, err := store.History()
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "2024-01-02", hist[0].RunDate, "newest first")
	assert.Equal(t, StatusNOK, hist[0].Status)
	assert.Equal(t, StatusOK, hist[1].Status)
}
