package service

import (
	"context"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/localstore"
	"github.com/vanixstudio/vanix-bff/internal/session"
	"github.com/vanixstudio/vanix-bff/internal/timeseries"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var sessionTracer = otel.Tracer("service/session")

// SessionService runs the storage normalizers over snapshots posted by
// clients.
type SessionService struct {
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewSessionService(metrics *observability.Metrics, logger *zap.Logger) *SessionService {
	return &SessionService{metrics: metrics, logger: logger, now: time.Now}
}

// SetClock replaces the wall clock used for series windows.
func (s *SessionService) SetClock(now func() time.Time) {
	s.now = now
}

// Resolve finds the signed-in user in snapshot.
func (s *SessionService) Resolve(ctx context.Context, snapshot map[string]any) *domain.SessionResolveResponse {
	_, span := sessionTracer.Start(ctx, "SessionService.Resolve")
	defer span.End()

	res := session.Resolve(localstore.FromJSONObject(snapshot))
	s.metrics.IncrSessionResolution(string(res.Strategy))
	span.SetAttributes(attribute.String("session.strategy", string(res.Strategy)))

	if res.User != nil {
		s.logger.Debug("session resolved",
			zap.String("key", res.Key),
			zap.String("strategy", string(res.Strategy)),
		)
	}
	return &domain.SessionResolveResponse{User: res.User, Key: res.Key, Strategy: string(res.Strategy)}
}

// SeriesFromSnapshot buckets the orders stored in snapshot.
func (s *SessionService) SeriesFromSnapshot(ctx context.Context, snapshot map[string]any, rng string) (*domain.OrderSeriesResponse, error) {
	_, span := sessionTracer.Start(ctx, "SessionService.SeriesFromSnapshot")
	defer span.End()

	r, err := timeseries.ParseRange(rng)
	if err != nil {
		return nil, err
	}

	dates := timeseries.ReadOrderDates(localstore.FromJSONObject(snapshot))
	series := timeseries.Build(dates, r, s.now())
	s.metrics.IncrSeriesBuild(string(r))
	span.SetAttributes(attribute.Int("orders.count", len(dates)))

	return seriesResponse(r, series), nil
}
