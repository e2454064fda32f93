// Package api exposes the menu and order intake over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"foodorder/pkg/logger"
	"foodorder/pkg/menu"
	"foodorder/pkg/order"
	"foodorder/pkg/otel"
)

const maxBodyBytes = 1 << 20

// OrderService accepts and lists orders.
type OrderService interface {
	Submit(ctx context.Context, p *order.Payload) (order.Order, error)
	Orders(ctx context.Context) ([]order.Order, error)
}

// Config holds the collaborators of the HTTP handlers.
type Config struct {
	Orders      OrderService
	Menu        menu.Source
	Log         *logger.Logger
	Tracer      trace.Tracer
	PublicDir   string
	DebugRoutes bool
}

// Handler serves the HTTP API.
type Handler struct {
	orders    OrderService
	menu      menu.Source
	log       *logger.Logger
	tracer    trace.Tracer
	publicDir string
}

// NewRouter builds the HTTP handler for the service.
func NewRouter(cfg Config) http.Handler {
	h := &Handler{
		orders:    cfg.Orders,
		menu:      cfg.Menu,
		log:       cfg.Log,
		tracer:    cfg.Tracer,
		publicDir: cfg.PublicDir,
	}

	r := mux.NewRouter()
	r.Use(h.traceMiddleware, h.logMiddleware)

	r.HandleFunc("/meals", h.listMeals).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	if cfg.DebugRoutes {
		r.HandleFunc("/debug/orders", h.listOrders).Methods(http.MethodGet)
	}

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	r.PathPrefix("/").HandlerFunc(h.serveStatic)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	return cors(r)
}

// createOrderRequest wraps the submitted order.
type createOrderRequest struct {
	Order *order.Payload `json:"order"`
}

// createOrderResponse confirms a stored order.
type createOrderResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// listMeals returns the menu.
// @Summary List meals
// @Produce json
// @Success 200 {array} menu.Meal
// @Failure 500 {object} messageResponse
// @Router /meals [get]
func (h *Handler) listMeals(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listMeals")
	defer span.End()

	meals, err := h.menu.Meals(ctx)
	if err != nil {
		h.log.Error(ctx, "read meals", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, meals)
}

// createOrder validates and stores an order.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Order"
// @Success 201 {object} createOrderResponse
// @Failure 400 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /orders [post]
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrder")
	defer span.End()

	// Members of the wrong type decode as absent and are classified by
	// Validate; only an unparsable body fails here.
	var req createOrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.log.Info(ctx, "decode order", "error", err)
		respondMessage(w, http.StatusBadRequest, order.ErrMissingItems.Error())
		return
	}

	o, err := h.orders.Submit(ctx, req.Order)
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			respondMessage(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.log.Error(ctx, "create order", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Could not save order.")
		return
	}

	respondJSON(w, http.StatusCreated, createOrderResponse{Message: "Order created!", ID: o.ID})
}

// listOrders returns every stored order.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Failure 500 {object} messageResponse
// @Router /debug/orders [get]
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrders")
	defer span.End()

	orders, err := h.orders.Orders(ctx)
	if err != nil {
		h.log.Error(ctx, "list orders", "error", err)
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// serveStatic serves files from the public directory and answers
// everything else with a JSON 404.
func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) {
	if h.publicDir == "" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		notFound(w, r)
		return
	}

	root := http.Dir(h.publicDir)
	name := path.Clean("/" + r.URL.Path)

	f, err := root.Open(name)
	if err != nil {
		notFound(w, r)
		return
	}
	info, err := f.Stat()
	f.Close()
	if err != nil {
		notFound(w, r)
		return
	}
	if info.IsDir() {
		index, err := root.Open(path.Join(name, "index.html"))
		if err != nil {
			notFound(w, r)
			return
		}
		index.Close()
	}

	http.FileServer(root).ServeHTTP(w, r)
}
