// ilp/http.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ilp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brunoga/deep"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"

	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/model"
)

// HTTPClient fetches the four upstream collections over HTTP. If
// NewHTTPClient was given an AuthConfig with a ClientID, the HTTP
// client authenticates every request; otherwise it talks to the
// endpoint unauthenticated.
type HTTPClient struct {
	Endpoint string
	HTTP     *http.Client
	Timeout  time.Duration
}

// AuthConfig configures OAuth2 client-credentials authentication to
// the ILP. A zero AuthConfig (ClientID empty) means no auth.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// NewHTTPClient builds an HTTPClient against endpoint (DefaultEndpoint
// if blank). If auth.ClientID is set, requests carry an OAuth2 bearer
// token obtained via the client-credentials grant.
func NewHTTPClient(endpoint string, auth AuthConfig, timeout time.Duration) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if auth.ClientID != "" {
		cfg := &clientcredentials.Config{
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			TokenURL:     auth.TokenURL,
		}
		httpClient = cfg.Client(context.Background())
		httpClient.Timeout = timeout
	}

	return &HTTPClient{Endpoint: endpoint, HTTP: httpClient, Timeout: timeout}
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ilp: %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Drones(ctx context.Context) ([]model.Drone, error) {
	var out []model.Drone
	err := c.get(ctx, "/drones", &out)
	return out, err
}

func (c *HTTPClient) ServicePoints(ctx context.Context) ([]model.ServicePoint, error) {
	var out []model.ServicePoint
	err := c.get(ctx, "/service-points", &out)
	return out, err
}

func (c *HTTPClient) Availability(ctx context.Context) ([]model.ServicePointDrones, error) {
	var out []model.ServicePointDrones
	err := c.get(ctx, "/drones-for-service-points", &out)
	return out, err
}

func (c *HTTPClient) RestrictedAreas(ctx context.Context) ([]geo.Region, error) {
	var out []geo.Region
	err := c.get(ctx, "/restricted-areas", &out)
	return out, err
}

// FetchSnapshot fetches all four collections concurrently — the core
// makes no ordering demands between them, only that all are present
// when the planner starts — and deep-copies the result into an
// immutable snapshot before handing it back.
func FetchSnapshot(ctx context.Context, c Client) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Drones, err = c.Drones(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.ServicePoints, err = c.ServicePoints(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Availability, err = c.Availability(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Regions, err = c.RestrictedAreas(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	copied, err := deep.Copy(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("ilp: snapshotting fetched data: %w", err)
	}
	return copied, nil
}
