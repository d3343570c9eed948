package web

import (
	"net/http"

	"warehouse-inventory/internal/app"
)

// apiListRestocks handles GET /api/restocks.
func (h *Handler) apiListRestocks(w http.ResponseWriter, r *http.Request) {
	h.writeRestocks(w, r, nil)
}

// apiListRestocksByWarehouse handles GET /api/restocks/warehouse/{warehouseId}.
func (h *Handler) apiListRestocksByWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "warehouseId")
	if !ok {
		return
	}
	h.writeRestocks(w, r, &id)
}

func (h *Handler) writeRestocks(w http.ResponseWriter, r *http.Request, warehouseID *int64) {
	result, err := h.svc.ListRestockOrders(r.Context(), warehouseID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]restockOrderJSON, 0, len(result.Orders))
	for _, o := range result.Orders {
		out = append(out, toRestockOrderJSON(o))
	}
	writeJSON(w, out)
}

// apiRestock handles POST /api/restocks. The order is attributed to the
// signed-in user.
func (h *Handler) apiRestock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WarehouseID int64 `json:"warehouse_id"`
		ProductID   int64 `json:"product_id"`
		Amount      int   `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	order, err := h.svc.Restock(r.Context(), app.RestockRequest{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Amount:      req.Amount,
		OrderedBy:   authFromContext(r.Context()).Email,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toRestockOrderJSON(*order))
}

// apiListCheckouts handles GET /api/checkouts.
func (h *Handler) apiListCheckouts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCheckouts(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]checkoutJSON, 0, len(result.Checkouts))
	for _, c := range result.Checkouts {
		out = append(out, toCheckoutJSON(c))
	}
	writeJSON(w, out)
}

// apiCheckout handles POST /api/checkouts.
func (h *Handler) apiCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WarehouseID int64 `json:"warehouse_id"`
		ProductID   int64 `json:"product_id"`
		Amount      int   `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.Checkout(r.Context(), app.CheckoutRequest{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Amount:      req.Amount,
		UserEmail:   authFromContext(r.Context()).Email,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toCheckoutJSON(*c))
}
