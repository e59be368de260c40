package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type partyResponse struct {
	PartyID string `json:"party_id"`
	Size    int    `json:"size"`
	Status  string `json:"status"`
	TableID string `json:"table_id"`
}

type floorResponse struct {
	Seats         int `json:"seats"`
	OccupiedSeats int `json:"occupied_seats"`
	QueueSize     int `json:"queue_size"`
}

type simClient struct {
	baseURL string
	inner   *http.Client
}

func newSimClient(baseURL string, timeout time.Duration) *simClient {
	return &simClient{baseURL: baseURL, inner: &http.Client{Timeout: timeout}}
}

func (c *simClient) arrive(ctx context.Context, size int) (partyResponse, error) {
	var out partyResponse
	err := c.do(ctx, http.MethodPost, "/api/parties", map[string]int{"size": size}, http.StatusCreated, &out)
	return out, err
}

func (c *simClient) leave(ctx context.Context, partyID string) error {
	return c.do(ctx, http.MethodDelete, "/api/parties/"+url.PathEscape(partyID), nil, http.StatusOK, nil)
}

func (c *simClient) floor(ctx context.Context) (floorResponse, error) {
	var out floorResponse
	err := c.do(ctx, http.MethodGet, "/api/floor", nil, http.StatusOK, &out)
	return out, err
}

func (c *simClient) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.inner.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s %s: status %d %s", method, path, resp.StatusCode, e.Error)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
