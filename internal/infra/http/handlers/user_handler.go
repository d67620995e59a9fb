package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/xavierca1/mailmorph/internal/usecase"
)

const maxProfileUpload = 5 << 20

type UserHandler struct {
	UC *usecase.UserUseCase
}

func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{UC: uc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.UC.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"user": user})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"message": "Logged out"})
}

// Update takes multipart form fields id, name, bio and an optional profilePic file.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProfileUpload+1<<20)
	if err := r.ParseMultipartForm(maxProfileUpload); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "invalid multipart form: "+err.Error())
		return
	}

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "id is required")
		return
	}

	input := usecase.UpdateProfileInput{
		ID:   id,
		Name: r.FormValue("name"),
		Bio:  r.FormValue("bio"),
	}

	file, header, err := r.FormFile("profilePic")
	switch {
	case err == nil:
		defer file.Close()
		input.Picture = file
		input.PictureName = header.Filename
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "invalid profilePic: "+err.Error())
		return
	}

	user, err := h.UC.UpdateProfile(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"user": user})
}
