package handlers

import (
	"net/http"

	"github.com/landing/contacto-api/internal/usecase"
)

type ContactHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
}

func NewContactHandler(uc *usecase.CreateLeadUseCase) *ContactHandler {
	return &ContactHandler{CreateLeadUC: uc}
}

// Handle serves POST /api/contacto.
func (h *ContactHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactInput
	if err := decodeJSON(r, &input); err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	output, err := h.CreateLeadUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
