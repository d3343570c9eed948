package web

import (
	"net/http"

	"warehouse-inventory/internal/app"

	"github.com/shopspring/decimal"
)

// ── Warehouses ────────────────────────────────────────────────────────────────

type warehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

func (req warehouseRequest) toApp() app.WarehouseRequest {
	return app.WarehouseRequest{Name: req.Name, Location: req.Location, Capacity: req.Capacity}
}

// apiWarehouseTotals handles GET /api/warehouses: every warehouse with the
// total quantity it holds.
func (h *Handler) apiWarehouseTotals(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.WarehouseTotals(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]warehouseTotalJSON, 0, len(result.Totals))
	for _, t := range result.Totals {
		out = append(out, warehouseTotalJSON{
			ID:            t.WarehouseID,
			Name:          t.Name,
			Location:      t.Location,
			TotalQuantity: t.TotalQuantity,
			Capacity:      t.Capacity,
		})
	}
	writeJSON(w, out)
}

// apiCreateWarehouse handles POST /api/warehouses.
func (h *Handler) apiCreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req warehouseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	wh, err := h.svc.CreateWarehouse(r.Context(), req.toApp())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toWarehouseJSON(*wh))
}

// apiUpdateWarehouse handles PUT /api/warehouses/{id}.
func (h *Handler) apiUpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req warehouseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	wh, err := h.svc.UpdateWarehouse(r.Context(), id, req.toApp())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toWarehouseJSON(*wh))
}

// apiDeleteWarehouse handles DELETE /api/warehouses/{id}.
func (h *Handler) apiDeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteWarehouse(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Products ──────────────────────────────────────────────────────────────────

// productRequest is the body of POST and PUT /api/products. price accepts a
// JSON number or a decimal string.
type productRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category"`
	SupplierID *int64          `json:"supplier_id"`
}

func (req productRequest) toApp() app.ProductRequest {
	return app.ProductRequest{Name: req.Name, Price: req.Price, Category: req.Category, SupplierID: req.SupplierID}
}

// apiListProducts handles GET /api/products.
func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]productJSON, 0, len(result.Products))
	for _, p := range result.Products {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, out)
}

// apiGetProduct handles GET /api/products/{id}.
func (h *Handler) apiGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toProductJSON(*p))
}

// apiCreateProduct handles POST /api/products.
func (h *Handler) apiCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), req.toApp())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toProductJSON(*p))
}

// apiUpdateProduct handles PUT /api/products/{id}.
func (h *Handler) apiUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.UpdateProduct(r.Context(), id, req.toApp())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toProductJSON(*p))
}

// apiDeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) apiDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

type supplierRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (req supplierRequest) toApp() app.SupplierRequest {
	return app.SupplierRequest{Name: req.Name, ContactEmail: req.ContactEmail, Phone: req.Phone, Address: req.Address}
}

// apiListSuppliers handles GET /api/suppliers.
func (h *Handler) apiListSuppliers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]supplierJSON, 0, len(result.Suppliers))
	for _, s := range result.Suppliers {
		out = append(out, toSupplierJSON(s))
	}
	writeJSON(w, out)
}

// apiGetSupplier handles GET /api/suppliers/{id}.
func (h *Handler) apiGetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	s, err := h.svc.GetSupplier(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toSupplierJSON(*s))
}

// apiCreateSupplier handles POST /api/suppliers.
func (h *Handler) apiCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.svc.CreateSupplier(r.Context(), req.toApp())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toSupplierJSON(*s))
}

// apiUpdateSupplier handles PUT /api/suppliers/{id}.
func (h *Handler) apiUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req supplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.svc.UpdateSupplier(r.Context(), id, req.toApp())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toSupplierJSON(*s))
}

// apiDeleteSupplier handles DELETE /api/suppliers/{id}.
func (h *Handler) apiDeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
