// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

var ErrMalformedRoster = errors.New("roster is not a JSON array")

// Source fetches raw roster rows
type Source interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// HTTPSource GETs a JSON array of row objects from a data loader endpoint
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

// Fetch issues a single uncached GET. Non-2xx and undecodable bodies are errors.
func (s *HTTPSource) Fetch(ctx context.Context) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("data loader returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster body: %w", err)
	}

	return DecodeRows(body)
}

// DecodeRows parses a JSON array of objects into rows, keeping each
// object's keys in document order. Scalars are stringified, null becomes
// "", and array elements that are not objects are skipped.
func DecodeRows(body []byte) ([]Row, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedRoster
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, ErrMalformedRoster
	}

	rows := []Row{}
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		row := Row{}
		item.ForEach(func(key, value gjson.Result) bool {
			row = append(row, Cell{Key: key.String(), Value: cellString(value)})
			return true
		})
		rows = append(rows, row)
		return true
	})

	return rows, nil
}

func cellString(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.String()
	}
}

// StaticSource serves a fixed set of rows
type StaticSource []Row

func (s StaticSource) Fetch(ctx context.Context) ([]Row, error) {
	return []Row(s), nil
}
