package migrations

import "embed"

// Files holds the goose SQL migrations applied by internal/db.
//
//go:embed *.sql
var Files embed.FS
