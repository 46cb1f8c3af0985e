package item

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/hnclient"
)

// fakeClock is a manually advanced cache.Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeUpstream serves canned item JSON and counts calls per path.
type fakeUpstream struct {
	mu    sync.Mutex
	items map[int]Item
	nulls map[int]bool // IDs that answer a JSON null body
	calls map[string]int
	srv   *httptest.Server
}

func newFakeUpstream(t *testing.T, items ...Item) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{
		items: make(map[int]Item),
		nulls: make(map[int]bool),
		calls: make(map[string]int),
	}
	for _, it := range items {
		f.items[it.ID] = it
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		f.mu.Unlock()

		var id int
		if _, err := fmt.Sscanf(r.URL.Path, "/item/%d.json", &id); err != nil {
			http.NotFound(w, r)
			return
		}

		f.mu.Lock()
		it, ok := f.items[id]
		isNull := f.nulls[id]
		f.mu.Unlock()

		if isNull || !ok {
			w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(it)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func newTestProvider(f *fakeUpstream, clock cache.Clock, ttl time.Duration) *Provider {
	client := hnclient.New(f.srv.URL, time.Second)
	return NewProvider(client, cache.NewMemoryWithClock(clock), ttl, 4)
}

func TestGetCachesWithinTTL(t *testing.T) {
	f := newFakeUpstream(t, Item{ID: 1, Type: TypeStory, Title: "hello", Score: 10})
	p := newTestProvider(f, newFakeClock(), 5*time.Minute)
	ctx := context.Background()

	first, ok := p.Get(ctx, 1)
	if !ok {
		t.Fatal("expected item 1 to resolve")
	}

	second, ok := p.Get(ctx, 1)
	if !ok {
		t.Fatal("expected cached item 1 to resolve")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached item differs: %+v vs %+v", first, second)
	}
	if n := f.callCount("/item/1.json"); n != 1 {
		t.Errorf("upstream called %d times, want 1", n)
	}
}

func TestGetRefetchesAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	f := newFakeUpstream(t, Item{ID: 1, Type: TypeStory, Score: 10})
	p := newTestProvider(f, clock, 5*time.Minute)
	ctx := context.Background()

	p.Get(ctx, 1)
	clock.Advance(6 * time.Minute)
	p.Get(ctx, 1)

	if n := f.callCount("/item/1.json"); n != 2 {
		t.Errorf("upstream called %d times, want 2 after expiry", n)
	}
}

func TestGetAbsent(t *testing.T) {
	f := newFakeUpstream(t)
	f.nulls[99] = true
	p := newTestProvider(f, newFakeClock(), time.Minute)

	tests := []struct {
		name string
		id   int
	}{
		{"upstream null body", 99},
		{"unknown id", 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := p.Get(context.Background(), tt.id); ok {
				t.Error("expected absent")
			}
		})
	}
}

func TestGetAbsentOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(hnclient.New(srv.URL, time.Second), cache.NewMemory(), time.Minute, 4)
	if _, ok := p.Get(context.Background(), 1); ok {
		t.Error("expected absent on upstream 500")
	}
}

func TestNegativeResultsAreNotCached(t *testing.T) {
	f := newFakeUpstream(t)
	f.nulls[7] = true
	p := newTestProvider(f, newFakeClock(), time.Minute)
	ctx := context.Background()

	p.Get(ctx, 7)
	p.Get(ctx, 7)

	if n := f.callCount("/item/7.json"); n != 2 {
		t.Errorf("upstream called %d times, want 2 (absence must not be cached)", n)
	}
}

func TestPage(t *testing.T) {
	var items []Item
	for id := 1; id <= 25; id++ {
		items = append(items, Item{ID: id, Type: TypeStory, Title: fmt.Sprintf("story %d", id)})
	}
	f := newFakeUpstream(t, items...)
	p := newTestProvider(f, newFakeClock(), time.Minute)
	ctx := context.Background()

	ids := make([]int, 25)
	for i := range ids {
		ids[i] = i + 1
	}

	t.Run("first page preserves order", func(t *testing.T) {
		got := p.Page(ctx, ids, 1, 10)
		if len(got) != 10 {
			t.Fatalf("got %d items, want 10", len(got))
		}
		for i, it := range got {
			if it.ID != ids[i] {
				t.Errorf("position %d: got ID %d, want %d", i, it.ID, ids[i])
			}
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		got := p.Page(ctx, ids, 3, 10)
		if len(got) != 5 {
			t.Errorf("got %d items, want 5", len(got))
		}
	})

	t.Run("page past the end", func(t *testing.T) {
		if got := p.Page(ctx, ids, 10, 10); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("page clamped to 1", func(t *testing.T) {
		got := p.Page(ctx, ids, -3, 10)
		if len(got) != 10 || got[0].ID != 1 {
			t.Errorf("negative page not clamped to first page: %v", got)
		}
	})

	t.Run("empty ids", func(t *testing.T) {
		if got := p.Page(ctx, nil, 1, 10); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestPageDropsDeletedDeadAndAbsent(t *testing.T) {
	f := newFakeUpstream(t,
		Item{ID: 1, Type: TypeStory},
		Item{ID: 2, Type: TypeStory, Deleted: true},
		Item{ID: 3, Type: TypeStory, Dead: true},
		Item{ID: 5, Type: TypeStory},
	)
	f.nulls[4] = true
	p := newTestProvider(f, newFakeClock(), time.Minute)

	got := p.Page(context.Background(), []int{1, 2, 3, 4, 5}, 1, 5)
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 5 {
		t.Errorf("got IDs %d,%d want 1,5", got[0].ID, got[1].ID)
	}
}

func TestPollOptions(t *testing.T) {
	f := newFakeUpstream(t,
		Item{ID: 100, Type: TypePoll, Parts: []int{101, 102, 103}},
		Item{ID: 101, Type: TypePollOption, Text: "yes", Score: 7},
		Item{ID: 103, Type: TypePollOption, Text: "no", Score: 3},
	)
	f.nulls[102] = true
	p := newTestProvider(f, newFakeClock(), time.Minute)

	poll, ok := p.Get(context.Background(), 100)
	if !ok {
		t.Fatal("expected poll to resolve")
	}

	opts := p.PollOptions(context.Background(), poll)
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	if opts[0].ID != 101 || opts[1].ID != 103 {
		t.Errorf("got IDs %d,%d want 101,103 (display order)", opts[0].ID, opts[1].ID)
	}
}
