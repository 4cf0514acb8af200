// Package schemas встраивает JSON Schema конвертов ответов upstream API.
package schemas

import "embed"

//go:embed envelopes
var SchemasFS embed.FS
