package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ============================================================
// HTTP helpers for POST, PATCH, counts and query building
// ============================================================

func (c *Client) doPost(ctx context.Context, table string, data any) ([]byte, error) {
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, request{
		method:  http.MethodPost,
		url:     fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table),
		path:    table,
		body:    bytes.NewReader(jsonBody),
		headers: map[string]string{"Prefer": "return=representation"},
	})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

func (c *Client) doUpsert(ctx context.Context, table string, data any) error {
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, request{
		method:  http.MethodPost,
		url:     fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table),
		path:    table,
		body:    bytes.NewReader(jsonBody),
		headers: map[string]string{"Prefer": "resolution=merge-duplicates,return=minimal"},
	})
	return err
}

// doPatch updates rows matching path and returns the updated representation.
func (c *Client) doPatch(ctx context.Context, path string, data any) ([]byte, error) {
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, request{
		method:  http.MethodPatch,
		url:     fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path),
		path:    path,
		body:    bytes.NewReader(jsonBody),
		headers: map[string]string{"Prefer": "return=representation"},
	})
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// doCount returns the exact row count of table filtered by query.
func (c *Client) doCount(ctx context.Context, table, query string) (int, error) {
	path := table + "?select=id"
	if query != "" {
		path += "&" + query
	}

	resp, err := c.do(ctx, request{
		method: http.MethodHead,
		url:    fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path),
		path:   path,
		headers: map[string]string{
			"Prefer": "count=exact",
			"Range":  "0-0",
		},
	})
	if err != nil {
		return 0, err
	}
	return parseContentRange(resp.header.Get("Content-Range"))
}

// parseContentRange reads the total from "0-9/42" or "*/0".
func parseContentRange(v string) (int, error) {
	_, total, ok := strings.Cut(v, "/")
	if !ok || total == "*" {
		return 0, errors.New("supabase: missing count in Content-Range " + strconv.Quote(v))
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("supabase: bad Content-Range %q: %w", v, err)
	}
	return n, nil
}

// eq builds a PostgREST equality filter with an escaped value.
func eq(column, value string) string {
	return column + "=eq." + url.QueryEscape(value)
}

func readBody(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isEmpty(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || string(b) == "[]"
}
