package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/corray333/backoffice/internal/service/models/product"
	"github.com/corray333/backoffice/internal/service/models/report"
	"github.com/corray333/backoffice/internal/service/models/user"
	"github.com/corray333/backoffice/internal/service/services/catalogsvc"
	"github.com/corray333/backoffice/internal/service/services/ordersvc"
	"github.com/corray333/backoffice/pkg/http/middleware/trace"
	"github.com/corray333/backoffice/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type orderService interface {
	CreatePOSOrder(ctx context.Context, req ordersvc.CreatePOSOrderRequest, staffID uuid.UUID) (*order.Order, error)
	CreateOnlineOrder(ctx context.Context, req ordersvc.CreateOnlineOrderRequest, actorID *uuid.UUID) (*order.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req ordersvc.UpdateOrderRequest, actorID uuid.UUID) (*order.Order, error)
	CloseOrder(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*order.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, int64, error)
}

type catalogService interface {
	CreateProduct(ctx context.Context, req catalogsvc.CreateProductRequest, actorID uuid.UUID) (*product.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req catalogsvc.UpdateProductRequest, actorID uuid.UUID) (*product.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error)
	ListProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, int64, error)
}

type userService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]user.User, error)
}

type auditService interface {
	GetLogs(ctx context.Context, module string, recordID uuid.UUID, limit, offset int) ([]auditlog.AuditLog, error)
}

type reportService interface {
	Summary(ctx context.Context, rangeType report.RangeType, date time.Time) (*report.Summary, error)
	TopSold(ctx context.Context, rangeType report.RangeType, date time.Time) ([]report.TopSoldItem, error)
	Chart(ctx context.Context, metric string, rangeType report.RangeType, date time.Time) ([]report.ChartItem, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	orders  orderService
	catalog catalogService
	users   userService
	audits  auditService
	reports reportService
}

func NewHTTPTransport(
	orders orderService,
	catalog catalogService,
	users userService,
	audits auditService,
	reports reportService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		orders:  orders,
		catalog: catalog,
		users:   users,
		audits:  audits,
		reports: reports,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/pos", h.createPOSOrder)
			r.Post("/online", h.createOnlineOrder)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}", h.updateOrder)
			r.Post("/{id}/close", h.closeOrder)
			r.Delete("/{id}", h.deleteOrder)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Get("/{id}", h.getUser)
		})
		r.Get("/audit-logs/{module}/{id}", h.getAuditLogs)
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", h.reportSummary)
			r.Get("/top-sold", h.reportTopSold)
			r.Get("/chart", h.reportChart)
		})
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
