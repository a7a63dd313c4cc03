package payment_service_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/middleware"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/order/create"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/order/fulfill"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/order/get"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/webhook"
	httpresponse "github.com/tumbleweedd/frame_store/payment_service/internal/lib/http"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type Handler struct {
	log logger.Logger

	cashfree *webhook.Handler
	razorpay *webhook.Handler

	createOrder *create.Handler
	getOrder    *get.Handler
	fulfill     *fulfill.Handler

	limiter        *middleware.IPRateLimiter
	adminJWTSecret string
}

type Handlers struct {
	Cashfree    *webhook.Handler
	Razorpay    *webhook.Handler
	CreateOrder *create.Handler
	GetOrder    *get.Handler
	Fulfill     *fulfill.Handler
}

func NewHandler(log logger.Logger, handlers Handlers, limiter *middleware.IPRateLimiter, adminJWTSecret string) *Handler {
	return &Handler{
		log:            log,
		cashfree:       handlers.Cashfree,
		razorpay:       handlers.Razorpay,
		createOrder:    handlers.CreateOrder,
		getOrder:       handlers.GetOrder,
		fulfill:        handlers.Fulfill,
		limiter:        limiter,
		adminJWTSecret: adminJWTSecret,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.Logger(h.log))
	mux.Use(chimiddleware.Recoverer)

	mux.Get("/healthz", health)

	mux.Route("/webhooks", func(r chi.Router) {
		r.Post("/cashfree", h.cashfree.Receive)
		r.Get("/cashfree", h.cashfree.Liveness)
		r.Post("/razorpay", h.razorpay.Receive)
		r.Get("/razorpay", h.razorpay.Liveness)
	})

	mux.Route("/orders", func(r chi.Router) {
		r.With(h.limiter.Handler).Post("/", h.createOrder.Create)
		r.Get("/{id}", h.getOrder.OrderByID)
	})

	mux.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(h.adminJWTSecret, middleware.RoleAdmin))

		r.Post("/orders/lookup", h.getOrder.OrdersByIDs)
		r.Patch("/orders/{id}/fulfillment", h.fulfill.Update)
	})

	return mux
}

func health(w http.ResponseWriter, _ *http.Request) {
	_ = httpresponse.JSON(w, http.StatusOK, httpresponse.H{"status": "ok"})
}
