package timeseries

import (
	"fmt"
	"time"
)

// Series is a bucketed count with one label per bucket.
// len(Labels) == len(Values) == Range.Points().
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Total sums every bucket.
func (s Series) Total() int {
	n := 0
	for _, v := range s.Values {
		n += v
	}
	return n
}

// Bucketer builds series against an injectable clock.
type Bucketer struct {
	Now func() time.Time
}

// Build is Build(dates, r, b.Now()). A nil Now uses the wall clock.
func (b Bucketer) Build(dates []time.Time, r Range) Series {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return Build(dates, r, now())
}

// WindowStart returns the first instant counted by r relative to now.
func WindowStart(r Range, now time.Time) time.Time {
	l, ok := layouts[r]
	if !ok {
		l = layouts[RangeYear]
	}
	return windowStart(l, startOfDay(now))
}

// Build buckets dates for range r as seen at now. All calendar math happens in
// now's location. Dates outside the window are dropped. An unknown range is
// treated as RangeYear.
func Build(dates []time.Time, r Range, now time.Time) Series {
	l, ok := layouts[r]
	if !ok {
		l = layouts[RangeYear]
	}

	loc := now.Location()
	today := startOfDay(now)
	from := windowStart(l, today)

	s := Series{
		Labels: make([]string, l.points),
		Values: make([]int, l.points),
	}
	for i := 0; i < l.points; i++ {
		s.Labels[i] = label(l, from, i)
	}

	for _, d := range dates {
		d = d.In(loc)
		idx := -1

		switch l.step {
		case stepHour:
			if !sameDay(d, now) {
				continue
			}
			idx = d.Hour()
		case stepDay:
			idx = floorDiv(daysBetween(from, d), l.stepSize)
		case stepMonth:
			idx = (d.Year()-from.Year())*12 + int(d.Month()-from.Month())
		}

		if idx >= 0 && idx < l.points {
			s.Values[idx]++
		}
	}
	return s
}

func windowStart(l layout, today time.Time) time.Time {
	switch l.step {
	case stepDay:
		return today.AddDate(0, 0, -l.offsetDays)
	case stepMonth:
		return today.AddDate(0, -(l.points - 1), 0)
	}
	return today
}

func label(l layout, from time.Time, i int) string {
	switch l.step {
	case stepHour:
		return fmt.Sprintf("%02d:00", i)
	case stepDay:
		d := from.AddDate(0, 0, i*l.stepSize)
		return fmt.Sprintf("%02d/%02d", d.Day(), int(d.Month()))
	default:
		d := from.AddDate(0, i, 0)
		return fmt.Sprintf("%02d/%02d", int(d.Month()), d.Year()%100)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts calendar days from a to b, ignoring time of day and DST.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}
