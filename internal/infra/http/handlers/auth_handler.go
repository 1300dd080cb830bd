package handlers

import (
	"net/http"

	"github.com/landing/contacto-api/internal/usecase"
)

type AuthHandler struct {
	LoginUC *usecase.LoginUseCase
}

func NewAuthHandler(uc *usecase.LoginUseCase) *AuthHandler {
	return &AuthHandler{LoginUC: uc}
}

// Login serves POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
