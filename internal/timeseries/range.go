// Package timeseries turns order timestamps into the fixed-shape series behind
// the storefront's order trend sparkline.
package timeseries

import (
	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// Range selects the window and bucket width of a series.
type Range string

const (
	RangeDay         Range = "day"
	RangeWeek        Range = "week"
	RangeMonth       Range = "month"
	RangeThreeMonths Range = "3m"
	RangeSixMonths   Range = "6m"
	RangeYear        Range = "year"
)

// Ranges lists every supported range in display order.
var Ranges = []Range{RangeDay, RangeWeek, RangeMonth, RangeThreeMonths, RangeSixMonths, RangeYear}

// DefaultRange is what the shop page opens with.
const DefaultRange = RangeWeek

type step int

const (
	stepHour step = iota
	stepDay
	stepMonth
)

// layout describes how a range is bucketed.
type layout struct {
	points     int
	step       step
	stepSize   int // days per bucket for stepDay
	offsetDays int // window start, in days before today (stepDay only)
}

var layouts = map[Range]layout{
	RangeDay:         {points: 24, step: stepHour},
	RangeWeek:        {points: 7, step: stepDay, stepSize: 1, offsetDays: 6},
	RangeMonth:       {points: 30, step: stepDay, stepSize: 1, offsetDays: 29},
	RangeThreeMonths: {points: 12, step: stepDay, stepSize: 7, offsetDays: 7 * 11},
	RangeSixMonths:   {points: 12, step: stepDay, stepSize: 14, offsetDays: 14 * 11},
	RangeYear:        {points: 12, step: stepMonth},
}

// ParseRange validates s. An empty string yields DefaultRange.
func ParseRange(s string) (Range, error) {
	if s == "" {
		return DefaultRange, nil
	}
	r := Range(s)
	if _, ok := layouts[r]; !ok {
		return "", &domain.ErrValidation{Field: "range", Message: "must be one of day, week, month, 3m, 6m, year"}
	}
	return r, nil
}

// Points returns the number of buckets r produces, or 0 for an unknown range.
func (r Range) Points() int {
	return layouts[r].points
}
