package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/dal/rabbitmq"
	"github.com/corray333/backoffice/internal/dal/uow"
	"github.com/corray333/backoffice/internal/jaeger"
	"github.com/corray333/backoffice/internal/service/services/auditsvc"
	"github.com/corray333/backoffice/internal/service/services/catalogsvc"
	"github.com/corray333/backoffice/internal/service/services/ordersvc"
	"github.com/corray333/backoffice/internal/service/services/reportsvc"
	"github.com/corray333/backoffice/internal/service/services/usersvc"
	httptransport "github.com/corray333/backoffice/internal/transport/http"
	"github.com/corray333/backoffice/internal/worker/outbox"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const orderEventsQueue = "backoffice.order.events"

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outbox.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	traceProvider  *sdktrace.TracerProvider
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	exporter := jaeger.MustNewJaeger()
	traceProvider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(traceProvider)

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    orderEventsQueue,
		Durable: true,
		Args:    amqp.Table{},
	}); err != nil {
		panic("failed to declare order events queue: " + err.Error())
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithPostgresClient(postgresClient),
	)
	auditSvc := auditsvc.MustNewAuditService(
		auditsvc.WithPostgresClient(postgresClient),
	)
	reportSvc := reportsvc.MustNewReportService(
		reportsvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc, userSvc, auditSvc, reportSvc)
	transport.RegisterRoutes()

	outboxWorker := outbox.NewWorker(
		uow.NewUnitOfWork(postgresClient).Outbox(),
		rabbitClient,
	)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		traceProvider:  traceProvider,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.traceProvider.Shutdown(ctx); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
