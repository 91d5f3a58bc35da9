// Package datafiles carries files that are served alongside decoded
// archives.
package datafiles

import _ "embed"

// IndexHTML is the html/template source of the archive browser page.
//
//go:embed index.html
var IndexHTML string
