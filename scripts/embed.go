// Package scripts embeds the SQL seed files loaded by cmd/load-data.
package scripts

import "embed"

// FS holds every *.sql file in this directory.
//
//go:embed *.sql
var FS embed.FS
