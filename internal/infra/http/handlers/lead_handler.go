package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xavierca1/mailmorph/internal/infra/http/middleware"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

type LeadHandler struct {
	UC *usecase.LeadUseCase
}

func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{UC: uc}
}

func (h *LeadHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddLeadInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if strings.TrimSpace(input.Email) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "Email is required")
		return
	}

	lead, err := h.UC.Add(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"message": "Lead added successfully", "lead": lead})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"items": leads})
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
	}
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if input.ID <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "id is required")
		return
	}

	if err := h.UC.Delete(r.Context(), input.ID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"message": fmt.Sprintf("Lead %d deleted successfully", input.ID)})
}

// FollowUp runs the batch follow-up, or a single one when the body names an email.
func (h *LeadHandler) FollowUp(w http.ResponseWriter, r *http.Request) {
	var input usecase.FollowUpInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	if strings.TrimSpace(input.Email) != "" {
		if err := h.UC.FollowUpOne(r.Context(), input); err != nil {
			writeError(w, err)
			return
		}
		middleware.RecordEmailsSent("followup", 1)
		middleware.RecordLeadsContacted(1)
		writeOK(w, envelope{"message": "Follow-up sent to " + input.Email})
		return
	}

	count, err := h.UC.FollowUp(r.Context())
	middleware.RecordLeadsContacted(count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"updated_count": count})
}

func (h *LeadHandler) Score(w http.ResponseWriter, r *http.Request) {
	leads, err := h.UC.Score(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"items": leads})
}
