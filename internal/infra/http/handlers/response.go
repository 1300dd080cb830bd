package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/landing/contacto-api/internal/usecase"
)

const (
	codeInvalidJSON   = "INVALID_JSON"
	codeInternalError = "INTERNAL_ERROR"
	maxBodyBytes      = 64 << 10
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// writeErrorResponse keeps the human-readable text under "error", which is
// what the landing form displays; "code" is for programmatic callers.
func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// writeUseCaseError is the per-request error boundary: domain errors keep
// their message, everything else becomes a generic 500.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeErrorResponse(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "code", techErr.Code, "error", techErr.Err)
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, techErr.Message)
		return
	}

	slog.Error("unexpected error", "method", r.Method, "path", r.URL.Path, "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, codeInternalError, "Error en el servidor")
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation, usecase.CodeCaptchaFailed, usecase.CodeInvalidEstado, usecase.CodeInvalidID, codeInvalidJSON:
		return http.StatusBadRequest
	case usecase.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case usecase.CodeLeadNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON object into v. An empty body decodes to the zero
// value so that schema validation reports the first missing field.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &usecase.DomainError{
			Code:    usecase.CodeValidation,
			Message: fmt.Sprintf("%q must be a %s", typeErr.Field, kindName(typeErr.Type)),
		}
	}
	return &usecase.DomainError{Code: codeInvalidJSON, Message: "JSON inválido"}
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int64, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}
