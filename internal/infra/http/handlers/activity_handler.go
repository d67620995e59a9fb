package handlers

import (
	"net/http"
	"sort"

	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

type ActivityHandler struct {
	Activity usecase.Collection[entity.ActivityEvent]
}

func NewActivityHandler(activity usecase.Collection[entity.ActivityEvent]) *ActivityHandler {
	return &ActivityHandler{Activity: activity}
}

// List returns the activity log, newest first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Activity.Load(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to load activity")
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	writeOK(w, envelope{"items": items})
}
