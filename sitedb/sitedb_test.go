package sitedb

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSiteDB(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE sites (
		site_id TEXT PRIMARY KEY,
		province TEXT, district TEXT,
		latitude REAL, longitude REAL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sites VALUES
		('106038', 'Ha Noi', 'Cau Giay', 21.03, 105.79),
		('200001', 'Hai Phong', 'Le Chan', 20.84, 106.68)`)
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.db")
	writeSiteDB(t, path)

	lookup, err := Load(path)
	require.NoError(t, err)
	require.Len(t, lookup, 2)
	assert.Equal(t, Location{Province: "Ha Noi", District: "Cau Giay", Latitude: 21.03, Longitude: 105.79},
		lookup["106038"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}
