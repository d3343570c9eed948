package web

import (
	"encoding/json"
	"net/http"

	"warehouse-inventory/internal/core"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

// writeJSONStatus writes a JSON response with the given status.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForKind maps core.ErrorKind labels to an HTTP status and API code.
var statusForKind = map[string]struct {
	status int
	code   string
}{
	"not_found":         {http.StatusNotFound, "NOT_FOUND"},
	"invalid_quantity":  {http.StatusBadRequest, "INVALID_QUANTITY"},
	"invalid_transfer":  {http.StatusBadRequest, "INVALID_TRANSFER"},
	"invalid_reference": {http.StatusBadRequest, "INVALID_REFERENCE"},
	"validation":        {http.StatusBadRequest, "VALIDATION_ERROR"},
	"duplicate_record":  {http.StatusConflict, "DUPLICATE_RECORD"},
	"conflict":          {http.StatusConflict, "CONFLICT"},
	"unauthorized":      {http.StatusUnauthorized, "UNAUTHORIZED"},
}

// serviceError writes the response for an error returned by the application
// service. Domain errors carry their own message; anything else is logged and
// reported as a generic 500.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if m, ok := statusForKind[core.ErrorKind(err)]; ok {
		writeError(w, r, err.Error(), m.code, m.status)
		return
	}
	h.log.Error("request failed",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
}
