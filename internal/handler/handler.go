// Package handler exposes the aggregation core over HTTP: the read API
// consumed by the front end and the refresh-check poll endpoint.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kindling/api/internal/feed"
	"github.com/kindling/api/internal/item"
	"github.com/kindling/api/internal/listing"
	"github.com/kindling/api/internal/user"
)

// Handler holds the providers behind the HTTP surface. It only reads from
// them; the core never calls back into this layer.
type Handler struct {
	lists    *listing.Provider
	rising   *listing.Rising
	detector *listing.Detector
	items    *item.Provider
	users    *user.Provider
	feeds    *feed.Builder

	pageSize         int
	commentDepth     int
	scoreCap         int
	risingCandidates int
}

// Dependencies holds all dependencies for the Handler.
type Dependencies struct {
	Lists    *listing.Provider
	Rising   *listing.Rising
	Detector *listing.Detector
	Items    *item.Provider
	Users    *user.Provider
	Feeds    *feed.Builder

	PageSize         int
	CommentDepth     int
	ScoreCap         int
	RisingCandidates int
}

func New(deps Dependencies) *Handler {
	return &Handler{
		lists:            deps.Lists,
		rising:           deps.Rising,
		detector:         deps.Detector,
		items:            deps.Items,
		users:            deps.Users,
		feeds:            deps.Feeds,
		pageSize:         deps.PageSize,
		commentDepth:     deps.CommentDepth,
		scoreCap:         deps.ScoreCap,
		risingCandidates: deps.RisingCandidates,
	}
}

// viewIDs routes a view name to its ID list, applying the rising
// thresholds only where they mean something.
func (h *Handler) viewIDs(r *http.Request, view listing.View, minComments, minPoints int) []int {
	if view == listing.ViewRising {
		return h.rising.IDs(r.Context(), minComments, minPoints, h.risingCandidates)
	}
	return h.lists.IDs(r.Context(), view)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

type apiError struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}
