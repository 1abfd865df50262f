package timeseries_test

import (
	"testing"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/localstore"
	"github.com/vanixstudio/vanix-bff/internal/timeseries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDate_FieldPriority(t *testing.T) {
	d, ok := timeseries.OrderDate(map[string]any{
		"time":      "2024-01-03T00:00:00Z",
		"createdAt": "2024-01-01T10:00:00Z",
	})

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), d.UTC())
}

func TestOrderDate_InvalidFirstFieldIsDropped(t *testing.T) {
	_, ok := timeseries.OrderDate(map[string]any{
		"createdAt": "yesterday",
		"date":      "2024-01-01",
	})

	assert.False(t, ok)
}

func TestOrderDate_NonStringIgnored(t *testing.T) {
	d, ok := timeseries.OrderDate(map[string]any{
		"createdAt":  1704067200000,
		"created_at": "2024-01-01",
	})

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestParseTimestamp_Layouts(t *testing.T) {
	for _, s := range []string{
		"2024-01-02T03:04:05Z",
		"2024-01-02T03:04:05.123+02:00",
		"2024-01-02T03:04:05",
		"2024-01-02T03:04:05.000",
		"2024-01-02 03:04:05",
		"2024-01-02",
	} {
		_, ok := timeseries.ParseTimestamp(s)
		assert.True(t, ok, s)
	}

	_, ok := timeseries.ParseTimestamp("02/01/2024")
	assert.False(t, ok)
}

func TestParseOrderDates_SortsAndDrops(t *testing.T) {
	raw := `[
		{"createdAt":"2024-03-02T00:00:00Z"},
		{"created_at":"2024-03-01T00:00:00Z"},
		{"date":"not a date"},
		{"total":10},
		"junk",
		{"time":"2024-03-03"}
	]`

	dates := timeseries.ParseOrderDates(raw)

	require.Len(t, dates, 3)
	assert.True(t, dates[0].Before(dates[1]))
	assert.True(t, dates[1].Before(dates[2]))
	assert.Equal(t, 1, dates[0].Day())
}

func TestParseOrderDates_NotAnArray(t *testing.T) {
	assert.Empty(t, timeseries.ParseOrderDates(`{"createdAt":"2024-01-01"}`))
	assert.Empty(t, timeseries.ParseOrderDates(`nope`))
	assert.Empty(t, timeseries.ParseOrderDates(""))
}

func TestReadOrderDates_FirstNonEmptyKeyWins(t *testing.T) {
	store := localstore.Snapshot{
		"vanix_orders_v1": `[]`,
		"vanix_orders":    `[{"date":"junk"}]`,
		"orders":          `[{"date":"2024-02-01"}]`,
		"orderHistory":    `[{"date":"2024-02-02"},{"date":"2024-02-03"}]`,
	}

	dates := timeseries.ReadOrderDates(store)

	require.Len(t, dates, 1)
	assert.Equal(t, time.February, dates[0].Month())
	assert.Equal(t, 1, dates[0].Day())
}
