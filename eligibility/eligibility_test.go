// eligibility/eligibility_test.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package eligibility

import (
	"testing"

	"github.com/aerodispatch/planner/model"
)

func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestCanServeCapacity(t *testing.T) {
	d := model.Drone{Capability: &model.Capability{Capacity: 5}}
	ok := CanServe(d, model.DispatchRecord{Requirements: model.Requirements{Capacity: floatPtr(10)}})
	if ok {
		t.Errorf("capacity 5 should not serve a request needing 10")
	}
	ok = CanServe(d, model.DispatchRecord{Requirements: model.Requirements{Capacity: floatPtr(5)}})
	if !ok {
		t.Errorf("capacity 5 should serve a request needing exactly 5")
	}
}

func TestCanServeCoolingFalseImposesNoConstraint(t *testing.T) {
	d := model.Drone{Capability: &model.Capability{Cooling: false}}
	ok := CanServe(d, model.DispatchRecord{Requirements: model.Requirements{Cooling: boolPtr(false)}})
	if !ok {
		t.Errorf("cooling=false requirement should impose no constraint")
	}
}

func TestCanServeNoCapability(t *testing.T) {
	d := model.Drone{}
	if CanServe(d, model.DispatchRecord{}) {
		t.Errorf("a drone with no capability cannot serve anything")
	}
}

func windowTable(droneID string) []model.ServicePointDrones {
	return []model.ServicePointDrones{
		{ServicePointID: 1, Drones: []model.DroneWindows{
			{ID: droneID, Availability: []model.Window{{DayOfWeek: "MONDAY", From: "08:00", Until: "18:00"}}},
		}},
	}
}

func TestIsAvailableBoundaryStrict(t *testing.T) {
	table := windowTable("COOL-001")

	ok, err := IsAvailable("COOL-001", "2025-01-20", "08:00:00", table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("exact boundary time should be unavailable (strict)")
	}

	ok, err = IsAvailable("COOL-001", "2025-01-20", "12:00:00", table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("mid-window time should be available")
	}
}

func TestIsAvailableWeekdayMismatch(t *testing.T) {
	table := windowTable("COOL-001")
	ok, err := IsAvailable("COOL-001", "2025-01-25", "10:00", table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("Saturday request against a Monday-only window should be unavailable")
	}
}

func TestIsAvailableInvalidDate(t *testing.T) {
	table := windowTable("COOL-001")
	if _, err := IsAvailable("COOL-001", "not-a-date", "10:00", table); err == nil {
		t.Errorf("expected an error for an unparseable date")
	}
}

func TestIsAvailableAccumulatesAcrossServicePoints(t *testing.T) {
	table := []model.ServicePointDrones{
		{ServicePointID: 1, Drones: []model.DroneWindows{
			{ID: "D1", Availability: []model.Window{{DayOfWeek: "MONDAY", From: "08:00", Until: "10:00"}}},
		}},
		{ServicePointID: 2, Drones: []model.DroneWindows{
			{ID: "D1", Availability: []model.Window{{DayOfWeek: "TUESDAY", From: "08:00", Until: "18:00"}}},
		}},
	}
	ok, err := IsAvailable("D1", "2025-01-21", "09:00", table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("windows should accumulate across service points")
	}
}

func TestHomeServicePointIsFirstListing(t *testing.T) {
	table := []model.ServicePointDrones{
		{ServicePointID: 1, Drones: []model.DroneWindows{{ID: "D1"}}},
		{ServicePointID: 2, Drones: []model.DroneWindows{{ID: "D1"}}},
	}
	points := []model.ServicePoint{
		{ID: 1, Name: "first"},
		{ID: 2, Name: "second"},
	}
	home, ok := HomeServicePoint("D1", table, points)
	if !ok || home.Name != "first" {
		t.Errorf("expected first-listed service point as home, got %+v (ok=%v)", home, ok)
	}
}
