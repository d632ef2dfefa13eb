// ilp/ilp_test.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ilp

import (
	"context"
	"errors"
	"testing"

	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/model"
)

// fakeClient is a minimal in-memory Client used to exercise
// FetchSnapshot without any network I/O.
type fakeClient struct {
	drones  []model.Drone
	points  []model.ServicePoint
	avail   []model.ServicePointDrones
	regions []geo.Region
	err     error
}

func (f *fakeClient) Drones(context.Context) ([]model.Drone, error) { return f.drones, f.err }
func (f *fakeClient) ServicePoints(context.Context) ([]model.ServicePoint, error) {
	return f.points, f.err
}
func (f *fakeClient) Availability(context.Context) ([]model.ServicePointDrones, error) {
	return f.avail, f.err
}
func (f *fakeClient) RestrictedAreas(context.Context) ([]geo.Region, error) {
	return f.regions, f.err
}

func TestFetchSnapshotAggregatesAllCollections(t *testing.T) {
	fc := &fakeClient{
		drones: []model.Drone{{ID: "D1"}},
		points: []model.ServicePoint{{ID: 1}},
	}

	snap, err := FetchSnapshot(context.Background(), fc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Drones) != 1 || snap.Drones[0].ID != "D1" {
		t.Errorf("expected drones to come through, got %+v", snap.Drones)
	}
	if len(snap.ServicePoints) != 1 {
		t.Errorf("expected service points to come through, got %+v", snap.ServicePoints)
	}
}

func TestFetchSnapshotPropagatesError(t *testing.T) {
	fc := &fakeClient{err: errors.New("upstream down")}
	if _, err := FetchSnapshot(context.Background(), fc); err == nil {
		t.Errorf("expected an error when every collection fails")
	}
}

func TestFetchSnapshotEmptyCollectionsDegradeGracefully(t *testing.T) {
	fc := &fakeClient{}
	snap, err := FetchSnapshot(context.Background(), fc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Regions) != 0 {
		t.Errorf("expected no restricted areas, got %+v", snap.Regions)
	}
}
