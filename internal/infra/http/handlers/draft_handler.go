package handlers

import (
	"net/http"

	"github.com/xavierca1/mailmorph/internal/usecase"
)

type DraftHandler struct {
	UC *usecase.DraftUseCase
}

func NewDraftHandler(uc *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{UC: uc}
}

type generateRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	To      string `json:"to"`
}

// GenerateReply drafts an email where subject is the company and body the offer.
func (h *DraftHandler) GenerateReply(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	writeOK(w, envelope{"reply": h.UC.GenerateEmail(r.Context(), req.Subject, req.Body)})
}

func (h *DraftHandler) GenerateSmart(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	writeOK(w, envelope{"result": h.UC.GenerateSmart(r.Context(), req.Subject, req.Body, req.To)})
}
