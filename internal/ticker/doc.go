// Package ticker implements a single-line marquee: text scrolls at constant
// speed from the trailing edge of its container to fully past the leading
// edge, then restarts. The package is host-agnostic; rendering, text
// measurement and timed transitions are supplied by the embedding toolkit
// through Measurer and Transitioner.
package ticker
