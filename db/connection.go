// Package db reads SQLite databases into datasets for encoding.
package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/logger"
)

// Open opens an existing SQLite database read-only. Export never writes,
// so the connection refuses modification and a missing file is an error
// rather than a silently created empty database.
// If logger is provided, logs the connection; otherwise operates silently.
func Open(path string, log *zap.SugaredLogger) (*sql.DB, error) {
	if log != nil {
		log.Debugw("opening database", logger.FieldPath, path)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// The first statement forces the lazy connection, so a missing or
	// unreadable file surfaces here instead of on the first export query.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}

	if log != nil {
		log.Infow("database opened",
			logger.FieldPath, path,
			"read_only", true,
		)
	}

	return db, nil
}
