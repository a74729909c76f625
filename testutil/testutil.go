// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/sponsor-eval/auth"
	"github.com/danielhkuo/sponsor-eval/cliparse"
	"github.com/danielhkuo/sponsor-eval/db"
	"github.com/danielhkuo/sponsor-eval/evaluation"
	"github.com/danielhkuo/sponsor-eval/models"
	"github.com/danielhkuo/sponsor-eval/roster"
	"github.com/danielhkuo/sponsor-eval/submission"
)

// SponsorEmail is the sponsor present in DefaultRosterJSON
const SponsorEmail = "pat@corp.com"

// DefaultRosterJSON is a small roster: two projects for one sponsor, one for another
const DefaultRosterJSON = `[
	{"Project Name": "Alpha", "Student Name": "Ann", "Sponsor Email": "Pat@Corp.com"},
	{"Project Name": "Alpha", "Student Name": "Ben", "Sponsor Email": "pat@corp.com"},
	{"Project Name": "Beta", "Student Name": "Cal", "Sponsor Email": "pat@corp.com; lee@corp.com"},
	{"Project Name": "Gamma", "Student Name": "Dee", "Sponsor Email": "lee@corp.com"}
]`

// SetupTestDB opens an in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		LogLevel:     "info",
		RosterSource: cliparse.RosterSourceHTTP,
		SessionSalt:  "test-session-salt",
		AdminKey:     "test-admin-key",
	}
}

// NewRosterServer serves body as the roster endpoint
func NewRosterServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Collector is a fake collection endpoint that records every payload
type Collector struct {
	Server *httptest.Server

	mu       sync.Mutex
	status   int
	payloads []models.SubmissionPayload
}

// NewCollector starts a collector answering 200
func NewCollector(t *testing.T) *Collector {
	t.Helper()

	c := &Collector{status: http.StatusOK}
	c.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p models.SubmissionPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		c.mu.Lock()
		status := c.status
		if status < 300 {
			c.payloads = append(c.payloads, p)
		}
		c.mu.Unlock()

		w.WriteHeader(status)
		io.WriteString(w, http.StatusText(status))
	}))
	t.Cleanup(c.Server.Close)
	return c
}

// SetStatus changes the status returned for subsequent posts
func (c *Collector) SetStatus(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = code
}

// Payloads returns the accepted payloads
func (c *Collector) Payloads() []models.SubmissionPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.SubmissionPayload(nil), c.payloads...)
}

// Env bundles a wired evaluation stack backed by fake upstreams
type Env struct {
	Config    cliparse.Config
	DB        *sql.DB
	Loader    *roster.Loader
	Collector *Collector
	Manager   *evaluation.Manager
}

// NewEnv wires a roster loader, a collector, and a session manager over a sqlite cache
func NewEnv(t *testing.T, rosterJSON string) *Env {
	t.Helper()

	cfg := GetTestConfig()
	rosterSrv := NewRosterServer(t, rosterJSON)
	collector := NewCollector(t)
	cfg.RosterURL = rosterSrv.URL
	cfg.SubmitURL = collector.Server.URL

	conn := SetupTestDB(t)
	loader := roster.NewLoader(roster.NewHTTPSource(cfg.RosterURL, rosterSrv.Client()))
	client := submission.NewClient(cfg.SubmitURL, collector.Server.Client())
	manager := evaluation.NewManager(loader, client, db.NewSessionCache(conn), func(id string) string {
		return auth.CacheKey(id, cfg.SessionSalt)
	})

	return &Env{Config: cfg, DB: conn, Loader: loader, Collector: collector, Manager: manager}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// SessionHeaders returns the header map carrying a session ID
func SessionHeaders(id string) map[string]string {
	return map[string]string{"X-Session-ID": id}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
