package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"warehouse-inventory/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins string
	JWTSecret      string
	TokenTTL       time.Duration
	// SecureCookies marks the session cookie Secure; disable only for plain-HTTP development.
	SecureCookies bool
	// MetricsEnabled exposes the Prometheus registry on /metrics.
	MetricsEnabled bool
}

// Handler holds the ApplicationService and the auth settings shared by handlers.
type Handler struct {
	svc           app.ApplicationService
	log           *zap.Logger
	jwtSecret     string
	tokenTTL      time.Duration
	secureCookies bool
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, log *zap.Logger, opts Options) http.Handler {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	h := &Handler{
		svc:           svc,
		log:           log,
		jwtSecret:     opts.JWTSecret,
		tokenTTL:      opts.TokenTTL,
		secureCookies: opts.SecureCookies,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(opts.AllowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.With(RequestBodyLimit(1<<16)).Post("/api/auth/login", h.login)

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)

		// ── Stock ledger ──────────────────────────────────────────────────────
		r.Get("/api/inventory", h.apiListStock)
		r.Post("/api/inventory", h.apiCreateStockRecord)
		r.Get("/api/inventory/low-stock", h.apiLowStock)
		r.Put("/api/inventory/reduce", h.apiReduceStock)
		r.Get("/api/inventory/warehouse/{warehouseId}", h.apiStockByWarehouse)
		r.Get("/api/inventory/product/{productId}", h.apiStockByProduct)
		r.Get("/api/inventory/{id}", h.apiGetStockRecord)
		r.Put("/api/inventory/{id}", h.apiUpdateStockRecord)
		r.Delete("/api/inventory/{id}", h.apiDeleteStockRecord)
		r.Post("/api/inventory/{id}/transfer", h.apiTransferStock)

		// ── Restocks and checkouts ────────────────────────────────────────────
		r.Get("/api/restocks", h.apiListRestocks)
		r.Post("/api/restocks", h.apiRestock)
		r.Get("/api/restocks/warehouse/{warehouseId}", h.apiListRestocksByWarehouse)
		r.Get("/api/checkouts", h.apiListCheckouts)
		r.Post("/api/checkouts", h.apiCheckout)

		// ── Catalog ───────────────────────────────────────────────────────────
		r.Get("/api/warehouses", h.apiWarehouseTotals)
		r.Post("/api/warehouses", h.apiCreateWarehouse)
		r.Put("/api/warehouses/{id}", h.apiUpdateWarehouse)
		r.Delete("/api/warehouses/{id}", h.apiDeleteWarehouse)
		r.Get("/api/products", h.apiListProducts)
		r.Post("/api/products", h.apiCreateProduct)
		r.Get("/api/products/{id}", h.apiGetProduct)
		r.Put("/api/products/{id}", h.apiUpdateProduct)
		r.Delete("/api/products/{id}", h.apiDeleteProduct)
		r.Get("/api/suppliers", h.apiListSuppliers)
		r.Post("/api/suppliers", h.apiCreateSupplier)
		r.Get("/api/suppliers/{id}", h.apiGetSupplier)
		r.Put("/api/suppliers/{id}", h.apiUpdateSupplier)
		r.Delete("/api/suppliers/{id}", h.apiDeleteSupplier)

		// ── Users ─────────────────────────────────────────────────────────────
		r.Get("/api/users", h.apiListUsers)
		r.Post("/api/users", h.apiCreateUser)
		r.Delete("/api/users/{id}", h.apiDeleteUser)

		// ── Reports ───────────────────────────────────────────────────────────
		r.Get("/api/reports/warehouse-totals.xlsx", h.apiWarehouseTotalsReport)
		r.Get("/api/reports/low-stock.xlsx", h.apiLowStockReport)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// idParam parses the named URL parameter as a positive integer ID. It writes
// a 400 response and returns false when the parameter is malformed.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, "invalid "+name+": "+raw, "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
