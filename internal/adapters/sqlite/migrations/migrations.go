// Package migrations embeds the SQLite schema applied through goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
