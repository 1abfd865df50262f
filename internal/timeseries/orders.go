package timeseries

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/localstore"
)

// OrderKeys are the storage keys order history has been kept under.
var OrderKeys = []string{"vanix_orders_v1", "vanix_orders", "orders", "orderHistory"}

var dateFields = []string{"createdAt", "created_at", "date", "time"}

// Layouts without a zone are read in local time, except a bare date, which is UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp reads the date formats order records are written with.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// OrderDate returns the creation time of an order-like record, taken from the
// first non-empty field among createdAt, created_at, date and time.
func OrderDate(record map[string]any) (time.Time, bool) {
	for _, f := range dateFields {
		s, _ := record[f].(string)
		if s = strings.TrimSpace(s); s != "" {
			return ParseTimestamp(s)
		}
	}
	return time.Time{}, false
}

// ExtractDates collects the valid order dates of records, sorted ascending.
func ExtractDates(records []map[string]any) []time.Time {
	dates := make([]time.Time, 0, len(records))
	for _, rec := range records {
		if t, ok := OrderDate(rec); ok {
			dates = append(dates, t)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ParseOrderDates decodes a stored JSON array of order records. Anything that
// is not an array yields no dates.
func ParseOrderDates(raw string) []time.Time {
	if raw == "" {
		return nil
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	records := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return ExtractDates(records)
}

// ReadOrderDates returns the dates of the first order key in store that holds
// at least one dated order.
func ReadOrderDates(store localstore.Store) []time.Time {
	if store == nil {
		return nil
	}
	for _, k := range OrderKeys {
		raw, ok, err := store.Get(k)
		if err != nil || !ok {
			continue
		}
		if dates := ParseOrderDates(raw); len(dates) > 0 {
			return dates
		}
	}
	return nil
}
