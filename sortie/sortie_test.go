// sortie/sortie_test.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sortie

import (
	"testing"

	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/model"
)

func floatPtr(f float64) *float64 { return &f }

func baseDrone() model.Drone {
	return model.Drone{
		ID: "D1",
		Capability: &model.Capability{
			Capacity: 100, MaxMoves: 10000,
			CostPerMove: 1, CostInitial: 0, CostFinal: 0,
		},
	}
}

func baseHome() model.ServicePoint {
	return model.ServicePoint{ID: 1, Location: geo.Position{0, 0}}
}

func baseTable(droneID string) []model.ServicePointDrones {
	return []model.ServicePointDrones{
		{ServicePointID: 1, Drones: []model.DroneWindows{
			{ID: droneID, Availability: []model.Window{{DayOfWeek: "MONDAY", From: "00:00", Until: "23:59"}}},
		}},
	}
}

func TestFindMaxSubsetAcceptsWithinCapacity(t *testing.T) {
	drone := baseDrone()
	home := baseHome()
	recs := []model.DispatchRecord{
		{ID: 1, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0.003, 0}, Requirements: model.Requirements{Capacity: floatPtr(10)}},
		{ID: 2, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0, 0.003}, Requirements: model.Requirements{Capacity: floatPtr(10)}},
	}

	chosen := FindMaxSubset(drone, home, recs, baseTable(drone.ID), nil, DirectPathfinder)
	if len(chosen) != 2 {
		t.Fatalf("expected both deliveries accepted, got %d", len(chosen))
	}
}

func TestFindMaxSubsetRejectsOverCapacity(t *testing.T) {
	drone := baseDrone()
	drone.Capability.Capacity = 5
	home := baseHome()
	recs := []model.DispatchRecord{
		{ID: 1, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0.003, 0}, Requirements: model.Requirements{Capacity: floatPtr(10)}},
	}

	chosen := FindMaxSubset(drone, home, recs, baseTable(drone.ID), nil, DirectPathfinder)
	if len(chosen) != 0 {
		t.Fatalf("expected no deliveries accepted over capacity, got %d", len(chosen))
	}
}

func TestFindMaxSubsetOrdersByID(t *testing.T) {
	drone := baseDrone()
	home := baseHome()
	recs := []model.DispatchRecord{
		{ID: 5, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0.003, 0}},
		{ID: 2, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0, 0.003}},
	}

	chosen := FindMaxSubset(drone, home, recs, baseTable(drone.ID), nil, DirectPathfinder)
	if len(chosen) != 2 || chosen[0].ID != 2 || chosen[1].ID != 5 {
		t.Fatalf("expected ascending id order, got %+v", chosen)
	}
}

func TestFindMaxSubsetMaxCostAmortised(t *testing.T) {
	drone := baseDrone()
	drone.Capability.CostPerMove = 1000 // make moves expensive so the cap bites
	home := baseHome()

	cheapCap := 1.0
	recs := []model.DispatchRecord{
		{ID: 1, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0.003, 0}, Requirements: model.Requirements{MaxCost: &cheapCap}},
	}

	chosen := FindMaxSubset(drone, home, recs, baseTable(drone.ID), nil, DirectPathfinder)
	if len(chosen) != 0 {
		t.Fatalf("expected the expensive opening to be rejected by its own maxCost, got %d", len(chosen))
	}
}

func TestFindMaxSubsetIneligibleDroneExcluded(t *testing.T) {
	drone := baseDrone()
	home := baseHome()
	// No availability table entry for this drone at all.
	recs := []model.DispatchRecord{
		{ID: 1, Date: "2025-01-20", Time: "10:00", Delivery: geo.Position{0.003, 0}},
	}

	chosen := FindMaxSubset(drone, home, recs, nil, nil, DirectPathfinder)
	if len(chosen) != 0 {
		t.Fatalf("expected no candidates without an availability window, got %d", len(chosen))
	}
}
