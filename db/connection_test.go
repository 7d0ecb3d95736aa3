package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// seedDatabase creates a SQLite file with one populated table so the
// read-only Open has something to open.
func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	seed, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = seed.Exec(`CREATE TABLE users (id INTEGER, name TEXT);
		INSERT INTO users VALUES (1, 'Ada');`)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	return path
}

func TestOpen(t *testing.T) {
	t.Run("opens existing database read-only", func(t *testing.T) {
		db, err := Open(seedDatabase(t), nil)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
		assert.Equal(t, 1, count)

		_, err = db.Exec("INSERT INTO users VALUES (2, 'Grace')")
		assert.Error(t, err, "read-only connection must refuse writes")
	})

	t.Run("missing database is an error, not a new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent.db")

		_, err := Open(path, nil)
		require.Error(t, err)
		assert.NoFileExists(t, path, "Open must not create the database")
	})
}

func TestOpen_WithLogger(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()

	db, err := Open(seedDatabase(t), log)
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()
}
