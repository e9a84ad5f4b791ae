// Package migrations embeds the goose SQL migrations of both storage backends.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres returns the postgres migrations rooted at their directory
func Postgres() fs.FS {
	sub, _ := fs.Sub(postgresFS, "postgres")
	return sub
}

// SQLite returns the sqlite migrations rooted at their directory
func SQLite() fs.FS {
	sub, _ := fs.Sub(sqliteFS, "sqlite")
	return sub
}
