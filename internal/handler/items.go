package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type commentJSON struct {
	ID      int    `json:"id"`
	By      string `json:"by,omitempty"`
	Text    string `json:"text,omitempty"`
	Parent  int    `json:"parent"`
	Depth   int    `json:"depth"`
	TimeAgo string `json:"timeAgo,omitempty"`
}

type pollOptionJSON struct {
	ID    int    `json:"id"`
	Text  string `json:"text,omitempty"`
	Score int    `json:"score"`
}

type itemResponse struct {
	Item        storyJSON        `json:"item"`
	Text        string           `json:"text,omitempty"`
	Comments    []commentJSON    `json:"comments"`
	PollOptions []pollOptionJSON `json:"pollOptions,omitempty"`
}

// Item returns one item with its comment tree, and poll options when the
// item is a poll.
//
// GET /api/items/{id}?depth=4
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	it, ok := h.items.Get(r.Context(), id)
	if !ok || it.Deleted || it.Dead {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	depth := intParam(r.URL.Query().Get("depth"), h.commentDepth)
	if depth < 0 || depth > h.commentDepth {
		depth = h.commentDepth
	}

	comments := h.items.CommentTree(r.Context(), it, depth)
	commentsJSON := make([]commentJSON, 0, len(comments))
	for _, c := range comments {
		commentsJSON = append(commentsJSON, commentJSON{
			ID:      c.ID,
			By:      c.By,
			Text:    c.Text,
			Parent:  c.Parent,
			Depth:   c.Depth,
			TimeAgo: c.TimeAgo(),
		})
	}

	resp := itemResponse{
		Item:     toStoryJSON(it, 0),
		Text:     it.Text,
		Comments: commentsJSON,
	}

	if it.IsPoll() {
		for _, opt := range h.items.PollOptions(r.Context(), it) {
			resp.PollOptions = append(resp.PollOptions, pollOptionJSON{
				ID:    opt.ID,
				Text:  opt.Text,
				Score: opt.Score,
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Comments returns just the comment tree for an item.
//
// GET /api/items/{id}/comments?depth=4
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	it, ok := h.items.Get(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	depth := intParam(r.URL.Query().Get("depth"), h.commentDepth)
	if depth < 0 || depth > h.commentDepth {
		depth = h.commentDepth
	}

	comments := h.items.CommentTree(r.Context(), it, depth)
	out := make([]commentJSON, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentJSON{
			ID:      c.ID,
			By:      c.By,
			Text:    c.Text,
			Parent:  c.Parent,
			Depth:   c.Depth,
			TimeAgo: c.TimeAgo(),
		})
	}
	writeJSON(w, http.StatusOK, map[string][]commentJSON{"comments": out})
}
