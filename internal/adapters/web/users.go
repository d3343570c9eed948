package web

import (
	"net/http"

	"warehouse-inventory/internal/app"
)

// apiListUsers handles GET /api/users.
func (h *Handler) apiListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]userJSON, 0, len(result.Users))
	for _, u := range result.Users {
		out = append(out, toUserJSON(u))
	}
	writeJSON(w, out)
}

// apiCreateUser handles POST /api/users.
func (h *Handler) apiCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		JobTitle  string `json:"job_title"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.svc.CreateUser(r.Context(), app.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		JobTitle:  req.JobTitle,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, toUserJSON(*u))
}

// apiDeleteUser handles DELETE /api/users/{id}. Users cannot delete themselves.
func (h *Handler) apiDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if claims := authFromContext(r.Context()); claims != nil && claims.UserID == id {
		writeError(w, r, "cannot delete the signed-in user", "CONFLICT", http.StatusConflict)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
