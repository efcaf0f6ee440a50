package planfit

import "embed"

// WebFS holds the embedded frontend.
//
//go:embed web/static
var WebFS embed.FS
