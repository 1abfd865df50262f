package timeseries

import (
	"fmt"
	"strings"
)

// SparkPath renders values as an SVG path across a width×height box with the
// given padding. Larger values sit higher. The vertical scale never drops
// below 1, so an all-zero series draws along the bottom edge. Callers guard
// against an empty slice.
func SparkPath(values []int, width, height, padding float64) string {
	top := 1
	for _, v := range values {
		if v > top {
			top = v
		}
	}

	n := len(values)
	innerW := width - padding*2
	innerH := height - padding*2

	var b strings.Builder
	for i, v := range values {
		x := padding
		if n > 1 {
			x += float64(i) * innerW / float64(n-1)
		}
		y := padding + (1-float64(v)/float64(top))*innerH

		if i == 0 {
			fmt.Fprintf(&b, "M %.2f %.2f", x, y)
		} else {
			fmt.Fprintf(&b, " L %.2f %.2f", x, y)
		}
	}
	return b.String()
}
