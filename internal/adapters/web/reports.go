package web

import (
	"fmt"
	"net/http"
	"strconv"

	"warehouse-inventory/internal/app"
)

// apiWarehouseTotalsReport handles GET /api/reports/warehouse-totals.xlsx.
func (h *Handler) apiWarehouseTotalsReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.WarehouseTotalsReport(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeAttachment(w, file)
}

// apiLowStockReport handles GET /api/reports/low-stock.xlsx.
func (h *Handler) apiLowStockReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.LowStockReport(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeAttachment(w, file)
}

func writeAttachment(w http.ResponseWriter, file *app.ReportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	_, _ = w.Write(file.Data)
}
