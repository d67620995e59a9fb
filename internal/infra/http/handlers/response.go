package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/infra/http/middleware"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("⚠️ [HTTP] erro ao codificar resposta: %v", err)
	}
}

// writeOK answers 200 with ok=true merged into body.
func writeOK(w http.ResponseWriter, body envelope) {
	if body == nil {
		body = envelope{}
	}
	body["ok"] = true
	writeJSON(w, http.StatusOK, body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{
		"ok":      false,
		"code":    code,
		"message": message,
	})
}

// writeError maps use case errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	message := err.Error()

	var (
		de *usecase.DomainError
		te *usecase.TechnicalError
	)
	switch {
	case errors.As(err, &de):
		code, message = de.Code, de.Message
	case errors.As(err, &te):
		code, message = te.Code, te.Message
	}

	if errors.Is(err, entity.ErrUpstream) {
		service := "unknown"
		if de != nil && de.Service != "" {
			service = de.Service
		}
		middleware.RecordIntegrationError(service)
	}
	if status == http.StatusInternalServerError {
		log.Printf("❌ [HTTP] %v", err)
		if de == nil && te == nil {
			message = "internal error"
		}
	}

	writeErrorResponse(w, status, code, message)
}

// Falha de gateway externo é 500 como qualquer erro não tratado; o code do corpo distingue.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, entity.ErrUnauthenticated):
		return http.StatusUnauthorized, "NOT_AUTHENTICATED"
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, entity.ErrUpstream):
		return http.StatusInternalServerError, "UPSTREAM_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched and
// reports empty=true.
func decodeJSON(r *http.Request, dst any) (empty bool, err error) {
	err = json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
