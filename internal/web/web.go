// Package web holds the single-page UI served at the API root.
package web

import _ "embed"

// IndexHTML is the review UI.
//
//go:embed index.html
var IndexHTML string
