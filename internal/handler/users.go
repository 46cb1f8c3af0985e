package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type userResponse struct {
	ID          string `json:"id"`
	Karma       int    `json:"karma"`
	About       string `json:"about,omitempty"`
	MemberSince string `json:"memberSince,omitempty"`
	Submitted   int    `json:"submitted"`
}

// User returns one author profile.
//
// GET /api/users/{handle}
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	profile, ok := h.users.Get(r.Context(), handle)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:          profile.ID,
		Karma:       profile.Karma,
		About:       profile.About,
		MemberSince: profile.MemberSince(),
		Submitted:   len(profile.Submitted),
	})
}
