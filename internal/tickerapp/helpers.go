package tickerapp

import (
	"strconv"
	"strings"
)

// parseSize reads a font size from the size select.
func parseSize(v string) (float32, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
	if err != nil || f <= 0 {
		return 0, false
	}
	return float32(f), true
}

// formatSize renders a font size without trailing zeros.
func formatSize(size float32) string {
	return strconv.FormatFloat(float64(size), 'f', -1, 32)
}
