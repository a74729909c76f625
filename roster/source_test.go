// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeRows(t *testing.T) {
	body := []byte(`[
		{"Project": "Alpha", "Student": "Jane", "Sponsor": "a@x.com"},
		{"Team": 7, "Active": true, "Notes": null},
		"not an object",
		{}
	]`)

	rows, err := DecodeRows(body)
	if err != nil {
		t.Fatalf("DecodeRows returned error: %v", err)
	}

	want := []Row{
		{{Key: "Project", Value: "Alpha"}, {Key: "Student", Value: "Jane"}, {Key: "Sponsor", Value: "a@x.com"}},
		{{Key: "Team", Value: "7"}, {Key: "Active", Value: "true"}, {Key: "Notes", Value: ""}},
		{},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRows_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `[{"Project": }`},
		{"object", `{"Project": "Alpha"}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRows([]byte(tt.body))
			if !errors.Is(err, ErrMalformedRoster) {
				t.Errorf("expected ErrMalformedRoster, got %v", err)
			}
		})
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("Cache-Control") != "no-store" {
			t.Errorf("expected Cache-Control no-store")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"project":"Alpha","student":"Jane","email":"a@x.com"}]`))
	}))
	defer srv.Close()

	rows, err := NewHTTPSource(srv.URL, srv.Client()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if v, _ := rows[0].Get("email"); v != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", v)
	}
}

func TestHTTPSource_FetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, nil).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestHTTPSource_FetchMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, nil).Fetch(context.Background())
	if !errors.Is(err, ErrMalformedRoster) {
		t.Errorf("expected ErrMalformedRoster, got %v", err)
	}
}
