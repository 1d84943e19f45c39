// Package migrations embeds the goose SQL migrations for the qr_codes store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
