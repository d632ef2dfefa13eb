// ilp/ilp.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package ilp is the read-only port onto the external
// Information-Logistics Platform: drones, service points, the
// drone-to-service-point availability table, and restricted areas.
// The core never talks to the network directly; it only calls
// Client. Missing or empty collections degrade gracefully: a missing
// restricted-area list means no no-fly zones, a missing drone list
// means no eligible drones.
package ilp

import (
	"context"

	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/model"
)

// DefaultEndpoint is used when ILP_ENDPOINT is blank or unset.
const DefaultEndpoint = "https://ilp.example.invalid"

// Client is the abstract accessor the planner depends on. Tests
// supply fakes; HTTPClient is the real implementation. CachingClient
// wraps a Client and exposes only FetchSnapshot.
type Client interface {
	Drones(ctx context.Context) ([]model.Drone, error)
	ServicePoints(ctx context.Context) ([]model.ServicePoint, error)
	Availability(ctx context.Context) ([]model.ServicePointDrones, error)
	RestrictedAreas(ctx context.Context) ([]geo.Region, error)
}

// Snapshot is every collection fetched in one shot.
type Snapshot struct {
	Drones        []model.Drone
	ServicePoints []model.ServicePoint
	Availability  []model.ServicePointDrones
	Regions       []geo.Region
}
