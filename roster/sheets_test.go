// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/api/option"
)

func TestRowsFromValues(t *testing.T) {
	values := [][]interface{}{
		{"Project", "Student", "Sponsor Email"},
		{"Alpha", "Jane", "a@x.com"},
		{"Beta", "Kim"},
		{"Gamma", "Lee", nil, "extra@x.com"},
		{float64(12), "Num", "n@x.com"},
	}

	got := RowsFromValues(values)

	want := []Row{
		{{"Project", "Alpha"}, {"Student", "Jane"}, {"Sponsor Email", "a@x.com"}},
		{{"Project", "Beta"}, {"Student", "Kim"}},
		{{"Project", "Gamma"}, {"Student", "Lee"}, {"Sponsor Email", ""}, {"", "extra@x.com"}},
		{{"Project", "12"}, {"Student", "Num"}, {"Sponsor Email", "n@x.com"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsFromValues_Empty(t *testing.T) {
	if got := RowsFromValues(nil); len(got) != 0 {
		t.Errorf("expected no rows, got %v", got)
	}
	if got := RowsFromValues([][]interface{}{{"Project"}}); len(got) != 0 {
		t.Errorf("expected no rows for header only, got %v", got)
	}
}

func TestSheetSource_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"range": "Roster!A1:C3",
			"majorDimension": "ROWS",
			"values": [["Project","Student","Sponsor"],["Alpha","Jane","a@x.com"],["Alpha","John","a@x.com"]]
		}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	src, err := NewSheetSource(ctx, "sheet-123", "Roster!A1:C3",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewSheetSource returned error: %v", err)
	}

	rows, err := src.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if !strings.Contains(gotPath, "sheet-123") {
		t.Errorf("expected spreadsheet ID in path, got %q", gotPath)
	}

	sponsors := Normalize(rows)
	if diff := cmp.Diff([]string{"Jane", "John"}, sponsors["a@x.com"].Projects["Alpha"]); diff != "" {
		t.Errorf("students mismatch (-want +got):\n%s", diff)
	}
}
