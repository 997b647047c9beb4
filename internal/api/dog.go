package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultDogURL is the public random dog image endpoint.
	DefaultDogURL = "https://dog.ceo/api/breeds/image/random"

	// DefaultDogTimeout bounds a single upstream fetch.
	DefaultDogTimeout = 5 * time.Second

	maxDogBytes = 1 << 20
)

// DogClient fetches random dog images from the upstream API.
type DogClient struct {
	url    string
	client *http.Client
}

// NewDogClient creates a client for url with the given per-request timeout.
func NewDogClient(url string, timeout time.Duration) *DogClient {
	return &DogClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the upstream JSON body unchanged.
// Any transport failure, non-200 status or non-JSON body is an error.
func (d *DogClient) Fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch dog image: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dog image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dog image: upstream status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch dog image: read body: %w", err)
	}
	if len(data) > maxDogBytes {
		return nil, errors.New("fetch dog image: body too large")
	}
	if !json.Valid(data) {
		return nil, errors.New("fetch dog image: body is not JSON")
	}
	return data, nil
}

func (s *Server) handleDog(w http.ResponseWriter, r *http.Request) {
	data, err := s.dog.Fetch(r.Context())
	if err != nil {
		s.writeError(w, r, Upstream("Failed to fetch dog image", err))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
