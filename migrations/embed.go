// Package migrations embeds the schema so the service binary can migrate the
// database on start.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
