package migrations

import "embed"

// FS holds the SQL migrations so the service can apply them at startup.
//
//go:embed *.sql
var FS embed.FS
