package web

import (
	"net/http"

	"warehouse-inventory/internal/app"
)

// apiListStock handles GET /api/inventory.
func (h *Handler) apiListStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListStock(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordsJSON(result.Records))
}

// apiGetStockRecord handles GET /api/inventory/{id}.
func (h *Handler) apiGetStockRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	rec, err := h.svc.GetStockRecord(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordJSON(*rec))
}

// apiStockByWarehouse handles GET /api/inventory/warehouse/{warehouseId}.
func (h *Handler) apiStockByWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "warehouseId")
	if !ok {
		return
	}
	result, err := h.svc.ListStockByWarehouse(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordsJSON(result.Records))
}

// apiStockByProduct handles GET /api/inventory/product/{productId}.
func (h *Handler) apiStockByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "productId")
	if !ok {
		return
	}
	result, err := h.svc.ListStockByProduct(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordsJSON(result.Records))
}

// apiLowStock handles GET /api/inventory/low-stock.
func (h *Handler) apiLowStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.LowStock(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordsJSON(result.Records))
}

// apiCreateStockRecord handles POST /api/inventory.
func (h *Handler) apiCreateStockRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WarehouseID  int64 `json:"warehouse_id"`
		ProductID    int64 `json:"product_id"`
		Quantity     int   `json:"quantity"`
		MinimumStock int   `json:"minimum_stock"`
		Location     int   `json:"location"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := h.svc.CreateStockRecord(r.Context(), app.CreateStockRecordRequest{
		WarehouseID:  req.WarehouseID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		Location:     req.Location,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toStockRecordJSON(*rec))
}

// apiUpdateStockRecord handles PUT /api/inventory/{id}. Only the bin location
// and minimum stock are editable; quantities move through the stock operations.
func (h *Handler) apiUpdateStockRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Location     int `json:"location"`
		MinimumStock int `json:"minimum_stock"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := h.svc.UpdateStockRecord(r.Context(), app.UpdateStockRecordRequest{
		ID:           id,
		Location:     req.Location,
		MinimumStock: req.MinimumStock,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordJSON(*rec))
}

// apiDeleteStockRecord handles DELETE /api/inventory/{id}.
func (h *Handler) apiDeleteStockRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteStockRecord(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// apiReduceStock handles PUT /api/inventory/reduce.
func (h *Handler) apiReduceStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WarehouseID int64 `json:"warehouse_id"`
		ProductID   int64 `json:"product_id"`
		Amount      int   `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rec, err := h.svc.ReduceStock(r.Context(), app.ReduceStockRequest{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Amount:      req.Amount,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, toStockRecordJSON(*rec))
}

// apiTransferStock handles POST /api/inventory/{id}/transfer.
func (h *Handler) apiTransferStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		DestinationWarehouseID int64 `json:"destination_warehouse_id"`
		Amount                 int   `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.TransferStock(r.Context(), app.TransferRequest{
		SourceRecordID:         id,
		DestinationWarehouseID: req.DestinationWarehouseID,
		Amount:                 req.Amount,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, transferJSON{
		Amount:             res.Amount,
		Source:             toStockRecordJSON(res.Source),
		Destination:        toStockRecordJSON(res.Destination),
		DestinationCreated: res.DestinationCreated,
	})
}
