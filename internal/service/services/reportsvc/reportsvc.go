package reportsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/backoffice/internal/dal/interfaces/ireportrepo"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/dal/uow"
	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/report"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("backoffice/reportsvc")

// ReportService produces read-only sales rollups: the dashboard summary,
// the best-seller listing and time-bucketed charts. Sub-unit sales convert
// to base-unit amounts through the unit weights.
type ReportService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
	location *time.Location
}

type unitOfWork interface {
	Reports() ireportrepo.Repository
}

// option is a function that configures the ReportService.
type option func(*ReportService)

// MustNewReportService creates a new ReportService. The reporting timezone
// comes from config (reports.timezone).
func MustNewReportService(opts ...option) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.location == nil {
		tz := viper.GetString("reports.timezone")
		if tz == "" {
			tz = "UTC"
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			panic(fmt.Sprintf("reportsvc: bad timezone %q: %v", tz, err))
		}
		s.location = loc
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("reportsvc: no postgres client configured")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the ReportService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ReportService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work constructor.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *ReportService) {
		s.newUOW = factory
	}
}

// WithLocation sets the reporting timezone.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLocation(loc *time.Location) option {
	return func(s *ReportService) {
		s.location = loc
	}
}

// Summary aggregates revenue, profit, order count and products sold over
// the period. The two rollup queries are independent and run in parallel.
func (s *ReportService) Summary(
	ctx context.Context,
	rangeType report.RangeType,
	date time.Time,
) (*report.Summary, error) {
	ctx, span := tracer.Start(ctx, "Summary")
	defer span.End()

	start, end := s.rangeBounds(rangeType, date)
	repo := s.newUOW().Reports()

	var summary report.Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		revenue, count, err := repo.OrdersSummary(gctx, start, end)
		if err != nil {
			return fmt.Errorf("orders summary: %w", err)
		}
		summary.RevenueCents = revenue
		summary.OrdersCount = count
		return nil
	})
	g.Go(func() error {
		profit, amount, err := repo.ItemsSummary(gctx, start, end)
		if err != nil {
			return fmt.Errorf("items summary: %w", err)
		}
		summary.ProfitCents = profit
		summary.ProductsSold = amount
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &summary, nil
}

// TopSold returns the ten best-selling products of the period by base-unit
// amount.
func (s *ReportService) TopSold(
	ctx context.Context,
	rangeType report.RangeType,
	date time.Time,
) ([]report.TopSoldItem, error) {
	ctx, span := tracer.Start(ctx, "TopSold")
	defer span.End()

	start, end := s.rangeBounds(rangeType, date)

	return s.newUOW().Reports().TopSold(ctx, start, end, 10)
}

// Chart returns the metric bucketed over the period: hours of the day,
// days of the week or days of the month. Empty buckets are zero-filled so
// the series always spans the whole period.
func (s *ReportService) Chart(
	ctx context.Context,
	metric string,
	rangeType report.RangeType,
	date time.Time,
) ([]report.ChartItem, error) {
	ctx, span := tracer.Start(ctx, "Chart")
	defer span.End()

	m, err := parseMetric(metric)
	if err != nil {
		return nil, err
	}

	start, end := s.rangeBounds(rangeType, date)
	bucket := bucketFor(rangeType)
	repo := s.newUOW().Reports()

	var values map[int]float64
	switch m {
	case report.MetricRevenue, report.MetricOrders:
		values, err = repo.OrdersByBucket(ctx, start, end, bucket, s.location.String(), m)
	default:
		values, err = repo.ItemsByBucket(ctx, start, end, bucket, s.location.String(), m)
	}
	if err != nil {
		return nil, err
	}

	return buildSeries(rangeType, start, values), nil
}

func parseMetric(s string) (report.Metric, error) {
	switch report.Metric(s) {
	case report.MetricRevenue, report.MetricProfit, report.MetricOrders, report.MetricProducts:
		return report.Metric(s), nil
	case "":
		return report.MetricRevenue, nil
	default:
		return "", apperrors.BadRequest("unknown report metric %q", s)
	}
}

func bucketFor(rangeType report.RangeType) ireportrepo.Bucket {
	switch rangeType {
	case report.RangeDay:
		return ireportrepo.BucketHour
	case report.RangeWeek:
		return ireportrepo.BucketDow
	default:
		return ireportrepo.BucketDay
	}
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// buildSeries zero-fills the period's buckets and labels them. Postgres
// buckets are keyed by hour 0-23, ISO day of week 1-7 or day of month 1-N.
func buildSeries(rangeType report.RangeType, start time.Time, values map[int]float64) []report.ChartItem {
	switch rangeType {
	case report.RangeDay:
		items := make([]report.ChartItem, 0, 24)
		for hour := 0; hour < 24; hour++ {
			items = append(items, report.ChartItem{
				Label: fmt.Sprintf("%d:00", hour),
				Value: values[hour],
			})
		}
		return items
	case report.RangeWeek:
		items := make([]report.ChartItem, 0, 7)
		for dow := 1; dow <= 7; dow++ {
			items = append(items, report.ChartItem{
				Label: weekdayLabels[dow-1],
				Value: values[dow],
			})
		}
		return items
	default:
		days := daysInMonth(start)
		items := make([]report.ChartItem, 0, days)
		for day := 1; day <= days; day++ {
			items = append(items, report.ChartItem{
				Label: fmt.Sprintf("%d", day),
				Value: values[day],
			})
		}
		return items
	}
}
