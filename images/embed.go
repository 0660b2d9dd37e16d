package images

import _ "embed"

// TickerSVG is the application icon, embedded so the binary needs no
// images folder at runtime.
//
//go:embed ticker.svg
var TickerSVG []byte
