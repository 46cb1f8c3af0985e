package hnclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/topstories.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[3, 1, 2]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	var ids []int
	if err := c.GetJSON(context.Background(), "/topstories.json", &ids); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(ids) != 3 || ids[0] != 3 {
		t.Errorf("got %v, want [3 1 2]", ids)
	}
}

func TestGetJSONNullBodyLeavesNilPointer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	var v *struct{ ID int }
	if err := c.GetJSON(context.Background(), "/item/0.json", &v); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if v != nil {
		t.Error("expected nil pointer for null body")
	}
}

func TestGetJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(srv.URL, time.Second)
			var v any
			if err := c.GetJSON(context.Background(), "/item/1.json", &v); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, 10*time.Millisecond)
	var v any
	if err := c.GetJSON(context.Background(), "/maxitem.json", &v); err == nil {
		t.Error("expected timeout error")
	}
}
