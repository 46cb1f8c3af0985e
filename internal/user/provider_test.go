package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kindling/api/internal/cache"
	"github.com/kindling/api/internal/hnclient"
)

func newUserServer(t *testing.T, profiles map[string]Profile) (*httptest.Server, func(path string) int) {
	t.Helper()
	var mu sync.Mutex
	calls := make(map[string]int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls[r.URL.Path]++
		mu.Unlock()

		handle := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/user/"), ".json")
		p, ok := profiles[handle]
		if !ok {
			w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	}))
	t.Cleanup(srv.Close)
	return srv, func(path string) int {
		mu.Lock()
		defer mu.Unlock()
		return calls[path]
	}
}

func TestGet(t *testing.T) {
	srv, calls := newUserServer(t, map[string]Profile{
		"pg": {ID: "pg", Created: 1160418092, Karma: 155111, About: "Bug fixer."},
	})
	p := NewProvider(hnclient.New(srv.URL, time.Second), cache.NewMemory(), time.Minute)
	ctx := context.Background()

	got, ok := p.Get(ctx, "pg")
	if !ok {
		t.Fatal("expected profile to resolve")
	}
	if got.ID != "pg" || got.Karma != 155111 {
		t.Errorf("got %+v", got)
	}

	p.Get(ctx, "pg")
	if n := calls("/user/pg.json"); n != 1 {
		t.Errorf("upstream called %d times, want 1 (second read served from cache)", n)
	}
}

func TestGetAbsent(t *testing.T) {
	srv, _ := newUserServer(t, nil)
	p := NewProvider(hnclient.New(srv.URL, time.Second), cache.NewMemory(), time.Minute)

	tests := []struct {
		name   string
		handle string
	}{
		{"unknown handle", "nobody-here"},
		{"empty handle", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := p.Get(context.Background(), tt.handle); ok {
				t.Error("expected absent")
			}
		})
	}
}

func TestGetAbsentOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProvider(hnclient.New(srv.URL, time.Second), cache.NewMemory(), time.Minute)
	if _, ok := p.Get(context.Background(), "pg"); ok {
		t.Error("expected absent on upstream 502")
	}
}

func TestGetEscapesHandle(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.EscapedPath()
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	p := NewProvider(hnclient.New(srv.URL, time.Second), cache.NewMemory(), time.Minute)
	p.Get(context.Background(), "a b/c")

	if seen != "/user/a%20b%2Fc.json" {
		t.Errorf("requested path %q, want escaped handle", seen)
	}
}

func TestMemberSince(t *testing.T) {
	p := Profile{Created: time.Date(2007, 2, 19, 0, 0, 0, 0, time.UTC).Unix()}
	if got := p.MemberSince(); got != "February 2007" {
		t.Errorf("MemberSince() = %q, want %q", got, "February 2007")
	}
}
