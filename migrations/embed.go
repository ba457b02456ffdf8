// Package migrations embeds the lexicon schema. The same files are applied
// to postgres and sqlite through goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
