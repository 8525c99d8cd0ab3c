package levels

import "embed"

// FS holds the bundled level files.
//
//go:embed *.json
var FS embed.FS
