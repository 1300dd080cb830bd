package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/landing/contacto-api/internal/auth"
	"github.com/landing/contacto-api/internal/usecase"
)

// LeadHandler serves the admin endpoints. Both routes sit behind
// auth.RequireAdmin.
type LeadHandler struct {
	ListUC   *usecase.ListLeadsUseCase
	UpdateUC *usecase.UpdateLeadStatusUseCase
}

func NewLeadHandler(list *usecase.ListLeadsUseCase, update *usecase.UpdateLeadStatusUseCase) *LeadHandler {
	return &LeadHandler{ListUC: list, UpdateUC: update}
}

// List serves GET /api/leads?page=&limit=.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.ListUC.Execute(r.Context(), usecase.ListLeadsInput{
		Page:  q.Get("page"),
		Limit: q.Get("limit"),
	})
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// UpdateStatus serves PUT /api/leads/{id}.
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadStatusInput
	if err := decodeJSON(r, &input); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	output, err := h.UpdateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	admin := "unknown"
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		admin = claims.Subject
	}
	slog.Info("lead estado updated", "lead_id", input.ID, "estado", input.Estado, "admin", admin)

	writeJSON(w, http.StatusOK, output)
}
