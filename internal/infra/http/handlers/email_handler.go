package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/mailmorph/internal/infra/http/middleware"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

const latestSentLimit = 10

type EmailHandler struct {
	UC   *usecase.EmailUseCase
	Sync *usecase.SyncRepliesUseCase
}

func NewEmailHandler(uc *usecase.EmailUseCase, sync *usecase.SyncRepliesUseCase) *EmailHandler {
	return &EmailHandler{UC: uc, Sync: sync}
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendEmailInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if strings.TrimSpace(input.To) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "to is required")
		return
	}

	threadID, err := h.UC.Send(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordEmailsSent("single", 1)
	writeOK(w, envelope{"threadId": threadID})
}

func (h *EmailHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	var input usecase.BulkSendInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	sent, err := h.UC.BulkSend(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordEmailsSent("bulk", len(sent))
	writeOK(w, envelope{"sent": sent})
}

func (h *EmailHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var input usecase.ReplyInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if strings.TrimSpace(input.ThreadID) == "" || strings.TrimSpace(input.To) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "threadId and to are required")
		return
	}

	if err := h.UC.Reply(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordEmailsSent("reply", 1)
	writeOK(w, nil)
}

func (h *EmailHandler) Sent(w http.ResponseWriter, r *http.Request) {
	items, err := h.UC.ListSent(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"items": items})
}

func (h *EmailHandler) Replies(w http.ResponseWriter, r *http.Request) {
	items, err := h.UC.ListReplies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"items": items})
}

func (h *EmailHandler) Latest(w http.ResponseWriter, r *http.Request) {
	items, err := h.UC.LatestSent(r.Context(), latestSentLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"items": items})
}

func (h *EmailHandler) Tag(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ThreadID string   `json:"threadId"`
		Tags     []string `json:"tags"`
	}
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if strings.TrimSpace(input.ThreadID) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "threadId is required")
		return
	}

	email, err := h.UC.Tag(r.Context(), input.ThreadID, input.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"email": email})
}

func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadId")
	if threadID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "threadId is required")
		return
	}

	if err := h.UC.DeleteSent(r.Context(), threadID); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"message": "Email deleted"})
}

// SyncReplies pulls inbound replies now instead of waiting for the worker.
func (h *EmailHandler) SyncReplies(w http.ResponseWriter, r *http.Request) {
	if h.Sync == nil {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "reply sync disabled")
		return
	}
	n, err := h.Sync.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"new_replies": n})
}
