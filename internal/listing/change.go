package listing

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/kindling/api/internal/item"
)

const (
	// FirstPageSize is the window compared against the client's IDs.
	FirstPageSize = 20
	// DefaultScoreCap bounds how many current scores one check may fetch.
	DefaultScoreCap = 30
)

// ChangeResult is the outcome of one refresh check.
type ChangeResult struct {
	// ListChanged is true when the view's current first page differs from
	// the window the client is displaying, in content or in order.
	ListChanged bool
	// Scores maps item ID to current score for the IDs the client has on
	// screen. IDs that no longer resolve are omitted.
	Scores map[int]int
}

// Detector compares a client-supplied ID window against the current
// authoritative list and resolves current scores, backing the background
// refresh poll.
type Detector struct {
	lists      *Provider
	rising     *Rising
	items      ItemGetter
	fanout     int
	candidates int
}

// NewDetector creates a Detector. candidates is the rising-view scan
// window used when a rising check is requested; <= 0 selects the default.
func NewDetector(lists *Provider, rising *Rising, items ItemGetter, fanout, candidates int) *Detector {
	if fanout <= 0 {
		fanout = item.DefaultFanout
	}
	if candidates <= 0 {
		candidates = DefaultRisingCandidates
	}
	return &Detector{
		lists:      lists,
		rising:     rising,
		items:      items,
		fanout:     fanout,
		candidates: candidates,
	}
}

// Check fetches the view's current first page and compares it
// element-for-element against clientIDs; any addition, removal or
// reordering flips ListChanged. Scores are resolved for clientIDs (or the
// server's first page when the client supplied none), capped at scoreCap.
// The two halves are independent: a score fetch that comes back absent
// never affects ListChanged, and vice versa.
//
// minComments and minPoints only apply when view is "rising".
func (d *Detector) Check(ctx context.Context, view View, clientIDs []int, minComments, minPoints, scoreCap int) ChangeResult {
	if scoreCap <= 0 {
		scoreCap = DefaultScoreCap
	}

	var current []int
	if view == ViewRising {
		current = d.rising.IDs(ctx, minComments, minPoints, d.candidates)
	} else {
		current = d.lists.IDs(ctx, view)
	}

	firstPage := current
	if len(firstPage) > FirstPageSize {
		firstPage = firstPage[:FirstPageSize]
	}

	result := ChangeResult{
		ListChanged: !slices.Equal(firstPage, clientIDs),
		Scores:      make(map[int]int),
	}

	scoreIDs := clientIDs
	if len(scoreIDs) == 0 {
		scoreIDs = firstPage
	}
	if len(scoreIDs) > scoreCap {
		scoreIDs = scoreIDs[:scoreCap]
	}

	scores := make([]*int, len(scoreIDs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.fanout)
	for i, id := range scoreIDs {
		g.Go(func() error {
			if it, ok := d.items.Get(ctx, id); ok {
				scores[i] = &it.Score
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range scoreIDs {
		if scores[i] != nil {
			result.Scores[id] = *scores[i]
		}
	}

	return result
}
