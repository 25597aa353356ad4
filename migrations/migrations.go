package migrations

import "embed"

// FS embeds the SQL migration files in this directory. The store applies
// them through golang-migrate's iofs driver at startup.
//
//go:embed *.sql
var FS embed.FS

const Version = 1
