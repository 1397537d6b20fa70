package store

import (
	"database/sql"

	"github.com/ben-ryder/headbase/internal/logger"
	"github.com/ben-ryder/headbase/migrations"
)

// DB wraps the local SQLite connection together with the client logger.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
