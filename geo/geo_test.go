// geo/geo_test.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	a := Position{10, 20}
	b := Position{10.001, 20.002}

	d1, err := Distance(a, b)
	if err != nil {
		t.Fatalf("Distance(a, b): %v", err)
	}
	d2, err := Distance(b, a)
	if err != nil {
		t.Fatalf("Distance(b, a): %v", err)
	}
	if d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	a := Position{0, 0}
	b := Position{1, 1}
	c := Position{2, 0}

	ab, _ := Distance(a, b)
	bc, _ := Distance(b, c)
	ac, _ := Distance(a, c)

	if ac > ab+bc+1e-12 {
		t.Errorf("triangle inequality violated: ac=%v > ab+bc=%v", ac, ab+bc)
	}
}

func TestDistanceInvalidInput(t *testing.T) {
	bad := Position{1000, 0}
	if _, err := Distance(bad, Position{0, 0}); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIsCloseReflexive(t *testing.T) {
	p := Position{5, 5}
	if !IsClose(p, p) {
		t.Errorf("a position should be close to itself")
	}
}

func TestIsCloseThresholdStrict(t *testing.T) {
	a := Position{0, 0}
	b := Position{CloseThreshold, 0}
	if IsClose(a, b) {
		t.Errorf("distance exactly CloseThreshold should not be close")
	}

	c := Position{CloseThreshold / 2, 0}
	if !IsClose(a, c) {
		t.Errorf("distance under CloseThreshold should be close")
	}
}

func TestNextPositionStep(t *testing.T) {
	start := Position{0, 0}
	next, err := NextPosition(start, 0)
	if err != nil {
		t.Fatalf("NextPosition: %v", err)
	}
	if math.Abs(next[0]-Step) > 1e-12 || next[1] != 0 {
		t.Errorf("east move: got %v, want %v", next, Position{Step, 0})
	}
}

func TestNextPositionInvalidAngle(t *testing.T) {
	if _, err := NextPosition(Position{0, 0}, 10); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for off-grid angle, got %v", err)
	}
}

func TestNextPositionLongitudeWrap(t *testing.T) {
	start := Position{180 - Step/2, 0}
	next, err := NextPosition(start, 0)
	if err != nil {
		t.Fatalf("NextPosition: %v", err)
	}
	if next[0] > -179 {
		t.Errorf("expected longitude to wrap past 180, got %v", next[0])
	}
}

func TestNextPositionPoleBlocked(t *testing.T) {
	start := Position{0, 90 - Step/2}
	if _, err := NextPosition(start, 90); err != ErrInvalidMove {
		t.Errorf("expected ErrInvalidMove crossing the north pole, got %v", err)
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	square := []Position{
		{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0},
	}
	if !PointInPolygon(Position{5, 5}, square) {
		t.Errorf("center point should be inside square")
	}
	if PointInPolygon(Position{20, 20}, square) {
		t.Errorf("far point should be outside square")
	}
	if !PointInPolygon(Position{0, 5}, square) {
		t.Errorf("boundary point should count as inside")
	}
}

func TestIsValidMoveAvoidsRegion(t *testing.T) {
	region := Region{
		{4, 4}, {4, 6}, {6, 6}, {6, 4}, {4, 4},
	}
	if IsValidMove(Position{0, 5}, Position{10, 5}, []Region{region}) {
		t.Errorf("move crossing the restricted square should be invalid")
	}
	if !IsValidMove(Position{0, 0}, Position{1, 0}, []Region{region}) {
		t.Errorf("move nowhere near the region should be valid")
	}
}

func TestIsValidMoveSkipsMalformedRegion(t *testing.T) {
	malformed := Region{{0, 0}, {1, 1}}
	if !IsValidMove(Position{0, 0}, Position{1, 1}, []Region{malformed}) {
		t.Errorf("malformed region should be skipped rather than blocking the move")
	}
}

func TestQuantizeHashStable(t *testing.T) {
	a := Position{1.00001, 2.00001}
	b := Position{1.00002, 2.00002}
	if QuantizeHash(a) != QuantizeHash(b) {
		t.Errorf("nearly identical positions should hash to the same cell")
	}
}
