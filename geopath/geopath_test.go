// geopath/geopath_test.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geopath

import (
	"testing"
	"time"

	"github.com/aerodispatch/planner/geo"
)

func TestFindPathDirect(t *testing.T) {
	start := geo.Position{0, 0}
	goal := geo.Position{0.003, 0}

	path := FindPath(start, goal, nil)
	if len(path) < 2 {
		t.Fatalf("expected a multi-point path, got %v", path)
	}
	if !geo.IsClose(path[0], start) {
		t.Errorf("path should start at start, got %v", path[0])
	}
	if !geo.IsClose(path[len(path)-1], goal) {
		t.Errorf("path should end near goal, got %v", path[len(path)-1])
	}
}

func TestFindPathSameStartGoal(t *testing.T) {
	p := geo.Position{10, 10}
	path := FindPath(p, p, nil)
	if len(path) != 1 {
		t.Fatalf("expected single-node path for coincident start/goal, got %v", path)
	}
}

func TestFindPathAvoidsRegion(t *testing.T) {
	start := geo.Position{0, 0}
	goal := geo.Position{0.006, 0}

	// A wall directly between start and goal, spanning well past it in
	// both directions, forces the path to detour.
	wall := geo.Region{
		{0.003, -1}, {0.003, 1}, {0.0031, 1}, {0.0031, -1}, {0.003, -1},
	}

	path := FindPath(start, goal, []geo.Region{wall})
	if len(path) == 0 {
		t.Fatalf("expected a detour path, got none")
	}
	for i := 0; i+1 < len(path); i++ {
		if !geo.IsValidMove(path[i], path[i+1], []geo.Region{wall}) {
			t.Errorf("leg %d->%d crosses the restricted region", i, i+1)
		}
	}
}

func TestFindPathInvalidInput(t *testing.T) {
	bad := geo.Position{1000, 0}
	if path := FindPath(bad, geo.Position{0, 0}, nil); path != nil {
		t.Errorf("expected nil path for invalid start, got %v", path)
	}
}

func TestLegCacheReturnsSameResult(t *testing.T) {
	start := geo.Position{0, 0}
	goal := geo.Position{0.003, 0}

	cache := NewLegCache(16, time.Minute)
	p1 := cache.FindPath(start, goal, nil)
	p2 := cache.FindPath(start, goal, nil)

	if len(p1) != len(p2) {
		t.Fatalf("cached path length mismatch: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("cached path diverges at %d: %v vs %v", i, p1[i], p2[i])
		}
	}
}
