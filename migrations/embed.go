// Package migrations embeds the SQL schema migrations shipped with the
// binary. SQLite migrations drive the local store, postgres migrations the
// optional remote mirror.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// SQLite returns the fs rooted at the sqlite migration directory.
func SQLite() fs.FS {
	sub, err := fs.Sub(files, "sqlite")
	if err != nil {
		panic(err)
	}
	return sub
}

// Postgres returns the fs rooted at the postgres migration directory.
func Postgres() fs.FS {
	sub, err := fs.Sub(files, "postgres")
	if err != nil {
		panic(err)
	}
	return sub
}
