// Package assets embeds the static files served under /assets.
package assets

import "embed"

// FS holds the static pages, keyed by file name.
//
//go:embed 23.html
var FS embed.FS
