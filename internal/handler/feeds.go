package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kindling/api/internal/listing"
)

// Feed serves a view's first page as RSS.
//
// GET /feeds/{view}.rss
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	view := listing.ParseView(chi.URLParam(r, "view"))

	rss, err := h.feeds.RSS(r.Context(), view)
	if err != nil {
		slog.Error("rendering feed", "view", view, "error", err)
		writeError(w, http.StatusInternalServerError, "feed rendering failed")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write([]byte(rss))
}
