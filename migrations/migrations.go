// Package migrations embeds the goose SQL migrations so the server
// binary and integration tests can apply them without a checkout.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
