// geo/geo.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo implements the plane-projected (lng, lat) geometry the
// rest of the planner builds on: a fixed-step, 16-direction compass,
// point-in-polygon containment, and segment/no-fly-zone testing.
package geo

import (
	"errors"
	"math"
)

// Step is the fixed lng/lat delta applied by a single drone move.
const Step = 0.00015

// CloseThreshold is the distance below which two positions are
// considered the same point for path-termination purposes.
const CloseThreshold = 0.00015

// samplesPerMove is how many points are sampled along a candidate move
// when testing it against restricted areas.
const samplesPerMove = 100

// ErrInvalidInput is returned when a Position is out of range or
// non-finite, or when an angle is not one of the 16 legal headings.
var ErrInvalidInput = errors.New("geo: invalid input")

// ErrInvalidMove is returned by NextPosition when the destination
// would cross a pole; poles are impassable on this grid.
var ErrInvalidMove = errors.New("geo: invalid move")

// Position is an ordered (lng, lat) pair. Index 0 is longitude, index
// 1 is latitude, mirroring how the rest of the corpus lays out planar
// points ([2]float64 rather than a {Lng, Lat} struct keeps JSON
// encoding as a plain two-element array).
type Position [2]float64

func (p Position) Lng() float64 { return p[0] }
func (p Position) Lat() float64 { return p[1] }

// Valid reports whether p's components are finite and within the
// legal lng/lat ranges.
func (p Position) Valid() bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) &&
		!math.IsNaN(p[1]) && !math.IsInf(p[1], 0) &&
		p[0] >= -180 && p[0] <= 180 && p[1] >= -90 && p[1] <= 90
}

// Angles holds the 16 legal headings in degrees, east = 0, north = 90,
// increasing counter-clockwise. Neighbour generation always walks this
// slice in order, which (together with the pathfinder's FIFO tie
// break) is what makes the search deterministic.
var Angles = [16]float64{
	0, 22.5, 45, 67.5, 90, 112.5, 135, 157.5,
	180, 202.5, 225, 247.5, 270, 292.5, 315, 337.5,
}

// sinTable/cosTable hold sin/cos of each entry in Angles, computed
// once at float64 precision. The teacher's math package precomputes
// trig into float32 polynomial approximations for a real-time render
// loop (math/transcendentals.go in the retrieved pack); here there are
// only ever 16 distinct angles and the data model requires double
// precision, so a plain lookup table built from the standard library's
// math.Sincos at init time is both simpler and more precise than
// porting that fast-math approximation.
var sinTable, cosTable [16]float64

func init() {
	for i, a := range Angles {
		s, c := math.Sincos(a * math.Pi / 180)
		sinTable[i] = s
		cosTable[i] = c
	}
}

func angleIndex(angleDeg float64) (int, bool) {
	for i, a := range Angles {
		if a == angleDeg {
			return i, true
		}
	}
	return 0, false
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Position) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, ErrInvalidInput
	}
	return distanceUnchecked(a, b), nil
}

func distanceUnchecked(a, b Position) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// IsClose reports whether a and b are within CloseThreshold of each
// other. The comparison is strict: a position exactly CloseThreshold
// away is not close.
func IsClose(a, b Position) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return distanceUnchecked(a, b) < CloseThreshold
}

// NextPosition computes the position reached by moving one Step from
// start along angleDeg, which must be one of the 16 legal headings.
// Longitude wraps modularly; latitude leaving [-90, 90] is rejected
// since poles are impassable.
func NextPosition(start Position, angleDeg float64) (Position, error) {
	if !start.Valid() {
		return Position{}, ErrInvalidInput
	}
	idx, ok := angleIndex(angleDeg)
	if !ok {
		return Position{}, ErrInvalidInput
	}

	dlng := cosTable[idx] * Step
	dlat := sinTable[idx] * Step

	lat := start[1] + dlat
	if lat < -90 || lat > 90 {
		return Position{}, ErrInvalidMove
	}

	lng := start[0] + dlng
	switch {
	case lng > 180:
		lng = -180 + (lng - 180)
	case lng < -180:
		lng = 180 + (lng + 180)
	}

	return Position{lng, lat}, nil
}

// Region is a closed restricted-area polygon: an ordered ring of
// vertices whose first and last entries are equal.
type Region []Position

// WellFormed reports whether r has at least four vertices and a
// repeated closing vertex. The corners are not checked for
// distinctness.
func (r Region) WellFormed() bool {
	if len(r) < 4 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// PointInPolygon reports whether p lies inside (or exactly on the
// boundary of) the closed ring vertices, using ray casting with an
// explicit boundary test.
func PointInPolygon(p Position, vertices []Position) bool {
	n := len(vertices)
	if n < 2 {
		return false
	}

	for i := 0; i < n-1; i++ {
		if onSegment(p, vertices[i], vertices[i+1]) {
			return true
		}
	}

	inside := false
	for i := 0; i < n-1; i++ {
		a, b := vertices[i], vertices[i+1]
		x1, y1 := a[0], a[1]
		x2, y2 := b[0], b[1]
		x, y := p[0], p[1]

		ymin, ymax := math.Min(y1, y2), math.Max(y1, y2)
		if y <= ymin || y > ymax {
			continue
		}
		if x > math.Max(x1, x2) {
			continue
		}

		crosses := x1 == x2 || x <= x1+(y-y1)*(x2-x1)/(y2-y1)
		if crosses {
			inside = !inside
		}
	}
	return inside
}

// onSegment reports whether p lies on the closed segment [a, b],
// within a small cross-product tolerance for collinearity.
func onSegment(p, a, b Position) bool {
	const tol = 1e-12

	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > tol {
		return false
	}

	return p[0] >= math.Min(a[0], b[0])-tol && p[0] <= math.Max(a[0], b[0])+tol &&
		p[1] >= math.Min(a[1], b[1])-tol && p[1] <= math.Max(a[1], b[1])+tol
}

// IsValidMove reports whether the straight segment from start to end
// avoids every well-formed region. Malformed regions (fewer than four
// vertices, or a ring that doesn't close) are skipped.
func IsValidMove(start, end Position, regions []Region) bool {
	for _, region := range regions {
		if !region.WellFormed() {
			continue
		}
		for i := 1; i <= samplesPerMove; i++ {
			t := float64(i) / float64(samplesPerMove)
			sample := Position{
				start[0] + t*(end[0]-start[0]),
				start[1] + t*(end[1]-start[1]),
			}
			if PointInPolygon(sample, region) {
				return false
			}
		}
	}
	return true
}

// QuantizeHash collapses a position to its grid cell for use in the
// pathfinder's visited/recency sets: positions within half a Step of
// the same cell hash identically.
func QuantizeHash(p Position) [2]int64 {
	return [2]int64{
		int64(math.Round(p[0] / Step)),
		int64(math.Round(p[1] / Step)),
	}
}
