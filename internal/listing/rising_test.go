package listing

import (
	"context"
	"testing"
	"time"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/item"
)

func newRisingFixture(t *testing.T) (*fakeUpstream, *Rising) {
	t.Helper()
	f := newFakeUpstream(t)
	store := cache.NewMemory()
	lists := NewProvider(f.client(), store, time.Minute, time.Minute)
	items := item.NewProvider(f.client(), store, time.Minute, 4)
	return f, NewRising(lists, items, store, time.Minute, 4)
}

func TestRisingThresholds(t *testing.T) {
	f, r := newRisingFixture(t)
	f.set("/newstories.json", "[1, 2, 3, 4, 5]")
	f.setItem(item.Item{ID: 1, Type: item.TypeStory, Score: 10, Descendants: 0})
	f.setItem(item.Item{ID: 2, Type: item.TypeStory, Score: 0, Descendants: 8})
	f.setItem(item.Item{ID: 3, Type: item.TypeStory, Score: 2, Descendants: 2})
	f.setItem(item.Item{ID: 4, Type: item.TypeStory, Score: 10, Descendants: 10, Dead: true})
	f.setItem(item.Item{ID: 5, Type: item.TypeStory, Score: 5, Descendants: 5})

	got := r.IDs(context.Background(), 5, 5, 200)

	// 1 passes on points, 2 on comments, 5 on both; 3 meets neither and 4
	// is dead.
	want := []int{1, 2, 5}
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}
}

func TestRisingZeroDisablesCriterion(t *testing.T) {
	f, r := newRisingFixture(t)
	f.set("/newstories.json", "[1, 2]")
	f.setItem(item.Item{ID: 1, Type: item.TypeStory, Score: 3, Descendants: 0})
	f.setItem(item.Item{ID: 2, Type: item.TypeStory, Score: 0, Descendants: 3})

	// Only the comment threshold is active; score never qualifies.
	got := r.IDs(context.Background(), 3, 0, 200)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("IDs(minc=3, minp=0) = %v, want [2]", got)
	}
}

func TestRisingBothZeroPassesEverythingLive(t *testing.T) {
	f, r := newRisingFixture(t)
	f.set("/newstories.json", "[1, 2, 3]")
	f.setItem(item.Item{ID: 1, Type: item.TypeStory})
	f.setItem(item.Item{ID: 2, Type: item.TypeStory, Deleted: true})
	f.setItem(item.Item{ID: 3, Type: item.TypeStory})

	got := r.IDs(context.Background(), 0, 0, 200)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("IDs(0, 0) = %v, want [1 3] (deleted still dropped)", got)
	}
}

func TestRisingWindowLimitsScan(t *testing.T) {
	f, r := newRisingFixture(t)
	f.set("/newstories.json", "[1, 2, 3, 4]")
	f.setItem(item.Item{ID: 1, Type: item.TypeStory, Score: 100})
	f.setItem(item.Item{ID: 2, Type: item.TypeStory, Score: 100})
	f.setItem(item.Item{ID: 3, Type: item.TypeStory, Score: 100})
	f.setItem(item.Item{ID: 4, Type: item.TypeStory, Score: 100})

	got := r.IDs(context.Background(), 0, 5, 2)
	if len(got) != 2 {
		t.Fatalf("IDs with window 2 = %v, want 2 entries", got)
	}
	if f.callCount("/item/3.json") != 0 || f.callCount("/item/4.json") != 0 {
		t.Error("fetched items beyond the candidate window")
	}
}

func TestRisingPreservesNewOrder(t *testing.T) {
	f, r := newRisingFixture(t)
	f.set("/newstories.json", "[9, 4, 7, 1]")
	for _, id := range []int{9, 4, 7, 1} {
		f.setItem(item.Item{ID: id, Type: item.TypeStory, Score: 50})
	}

	got := r.IDs(context.Background(), 0, 5, 200)
	want := []int{9, 4, 7, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v (candidate order)", got, want)
		}
	}
}

func TestRisingCachesPerParameterSet(t *testing.T) {
	f, r := newRisingFixture(t)
	f.set("/newstories.json", "[1]")
	f.setItem(item.Item{ID: 1, Type: item.TypeStory, Score: 6, Descendants: 0})
	ctx := context.Background()

	strict := r.IDs(ctx, 0, 10, 200)
	loose := r.IDs(ctx, 0, 5, 200)

	if len(strict) != 0 {
		t.Errorf("IDs(minp=10) = %v, want empty", strict)
	}
	if len(loose) != 1 {
		t.Errorf("IDs(minp=5) = %v, want [1] (must not reuse the stricter result)", loose)
	}

	// A repeat with identical parameters is a pure cache hit.
	before := f.callCount("/newstories.json")
	r.IDs(ctx, 0, 5, 200)
	if f.callCount("/newstories.json") != before {
		t.Error("repeat call with same parameters hit upstream")
	}
}

func TestRisingEmptyWhenNewUnavailable(t *testing.T) {
	_, r := newRisingFixture(t)
	// No /newstories.json response; the list fetch decodes null into nil.
	if got := r.IDs(context.Background(), 5, 5, 200); len(got) != 0 {
		t.Errorf("IDs = %v, want empty when the new list is unavailable", got)
	}
}
