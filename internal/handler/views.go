package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kindling/api/internal/item"
	"github.com/kindling/api/internal/listing"
)

// storyJSON is one ranked row of a view page, with the derived display
// fields the front end renders.
type storyJSON struct {
	ID          int    `json:"id"`
	Rank        int    `json:"rank"`
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	By          string `json:"by,omitempty"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	URL         string `json:"url,omitempty"`
	DisplayURL  string `json:"displayUrl"`
	Domain      string `json:"domain,omitempty"`
	TimeAgo     string `json:"timeAgo,omitempty"`
}

func toStoryJSON(it item.Item, rank int) storyJSON {
	return storyJSON{
		ID:          it.ID,
		Rank:        rank,
		Type:        it.Type,
		Title:       it.Title,
		By:          it.By,
		Score:       it.Score,
		Descendants: it.Descendants,
		URL:         it.URL,
		DisplayURL:  it.DisplayURL(),
		Domain:      it.Domain(),
		TimeAgo:     it.TimeAgo(),
	}
}

type viewPageResponse struct {
	View     string      `json:"view"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Total    int         `json:"total"`
	Stories  []storyJSON `json:"stories"`
}

// ViewPage returns one populated page of a named view.
//
// GET /api/views/{view}?page=1&minc=5&minp=5
func (h *Handler) ViewPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := listing.ParseView(chi.URLParam(r, "view"))
	page := intParam(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	minComments := intParam(q.Get("minc"), listing.DefaultMinComments)
	minPoints := intParam(q.Get("minp"), listing.DefaultMinPoints)

	ids := h.viewIDs(r, view, minComments, minPoints)
	items := h.items.Page(r.Context(), ids, page, h.pageSize)

	stories := make([]storyJSON, 0, len(items))
	startRank := (page-1)*h.pageSize + 1
	for i, it := range items {
		stories = append(stories, toStoryJSON(it, startRank+i))
	}

	writeJSON(w, http.StatusOK, viewPageResponse{
		View:     string(view),
		Page:     page,
		PageSize: h.pageSize,
		Total:    len(ids),
		Stories:  stories,
	})
}

// MaxItem returns the current maximum item ID watermark.
//
// GET /api/maxitem
func (h *Handler) MaxItem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"maxItemId": h.lists.MaxItem(r.Context()),
	})
}
