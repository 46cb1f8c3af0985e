package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kindling/api/internal/listing"
)

// refreshResponse is the poll payload. Scores marshals with string keys,
// matching what the polling script expects.
type refreshResponse struct {
	ListChanged bool        `json:"listChanged"`
	Scores      map[int]int `json:"scores"`
}

// Refresh answers the background poll: has the visible list changed, and
// what are the current scores for the IDs the client has on screen.
//
// Query params: tab (default "top"), ids (comma-separated, malformed
// entries skipped), minc and minp (rising thresholds, default 5 each).
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	// Unlike the providers, which collapse failures silently, this endpoint
	// reports internal failures explicitly so the polling script can tell
	// "no changes" from "check failed".
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("refresh check failed", "error", rec)
			writeError(w, http.StatusInternalServerError, fmt.Sprint(rec))
		}
	}()

	q := r.URL.Query()

	view := listing.ParseView(q.Get("tab"))
	clientIDs := parseIDList(q.Get("ids"))
	minComments := intParam(q.Get("minc"), listing.DefaultMinComments)
	minPoints := intParam(q.Get("minp"), listing.DefaultMinPoints)

	result := h.detector.Check(r.Context(), view, clientIDs, minComments, minPoints, h.scoreCap)

	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, http.StatusOK, refreshResponse{
		ListChanged: result.ListChanged,
		Scores:      result.Scores,
	})
}

// parseIDList splits a comma-separated ID list, skipping anything that is
// not an integer. A fully malformed list is an empty window, not an error.
func parseIDList(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
