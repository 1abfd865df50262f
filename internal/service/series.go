package service

import (
	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/timeseries"
)

// Sparkline geometry used by the dashboard and the shop page.
const (
	sparkWidth   = 220
	sparkHeight  = 60
	sparkPadding = 6
)

func seriesResponse(r timeseries.Range, s timeseries.Series) *domain.OrderSeriesResponse {
	resp := &domain.OrderSeriesResponse{
		Range:  string(r),
		Labels: s.Labels,
		Values: s.Values,
		Total:  s.Total(),
		Path:   timeseries.SparkPath(s.Values, sparkWidth, sparkHeight, sparkPadding),
	}
	if n := len(s.Labels); n > 0 {
		resp.FirstLabel = s.Labels[0]
		resp.LastLabel = s.Labels[n-1]
	}
	return resp
}
