// Package migrations embeds the schema for every supported driver. Each driver
// keeps its own numbered sequence in a directory named after it.
package migrations

import "embed"

//go:embed sqlite3/*.sql postgres/*.sql
var FS embed.FS
