// Package client provides typed access to the SpaceX API v4
// (https://api.spacexdata.com/v4).
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
	"launchsync-service/pkg/apperrors"
	"launchsync-service/pkg/logger"
)

// SpaceXClient fetches raw launch, rocket, and launchpad records. Every
// call issues one network request bounded by the configured timeout; any
// transport failure or non-success status surfaces as a ProviderError.
// No caching and no retries live here.
type SpaceXClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewSpaceXClient creates a new SpaceX API client
func NewSpaceXClient(baseURL string, timeout time.Duration, log logger.Logger) *SpaceXClient {
	return &SpaceXClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

var _ repository.LaunchProvider = (*SpaceXClient)(nil)

// FetchLaunches fetches all launches
func (c *SpaceXClient) FetchLaunches(ctx context.Context) ([]entity.RawLaunch, error) {
	c.logger.Debug("Fetching launches")
	var launches []entity.RawLaunch
	if err := c.getJSON(ctx, "/launches", &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

// FetchRocket fetches one rocket by id
func (c *SpaceXClient) FetchRocket(ctx context.Context, id string) (*entity.RawRocket, error) {
	var rocket entity.RawRocket
	if err := c.getJSON(ctx, "/rockets/"+id, &rocket); err != nil {
		return nil, err
	}
	return &rocket, nil
}

// FetchLaunchpad fetches one launchpad by id
func (c *SpaceXClient) FetchLaunchpad(ctx context.Context, id string) (*entity.RawLaunchpad, error) {
	var pad entity.RawLaunchpad
	if err := c.getJSON(ctx, "/launchpads/"+id, &pad); err != nil {
		return nil, err
	}
	return &pad, nil
}

func (c *SpaceXClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &apperrors.ProviderError{Endpoint: path, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.ProviderError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded chunk of the body so the error carries context.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &apperrors.ProviderError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body: %s", string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.ProviderError{Endpoint: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
