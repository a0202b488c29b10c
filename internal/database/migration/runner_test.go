package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__jobs.sql":  {Data: []byte("CREATE TABLE jobs (id int);")},
		"V1__init.sql":  {Data: []byte("  CREATE TABLE users (id int);\n")},
		"README.md":     {Data: []byte("ignored")},
		"V3_bad.sql":    {Data: []byte("ignored")},
		"sub/V9__x.sql": {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE users (id int);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := loadMigrations(fsys)
	assert.ErrorContains(t, err, "duplicate migration version")
}

func TestLoadMigrations_Empty(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoadMigrations_ChecksumStable(t *testing.T) {
	a, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("SELECT 1;")}})
	require.NoError(t, err)
	b, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("\nSELECT 1;\n")}})
	require.NoError(t, err)
	assert.Equal(t, a[0].Checksum, b[0].Checksum)
}
