// Package scripts holds the built-in proposal filter scripts.
package scripts

import "embed"

// FS holds every script under filter/.
//
//go:embed filter/*.risor
var FS embed.FS
