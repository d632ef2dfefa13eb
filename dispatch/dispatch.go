// dispatch/dispatch.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package dispatch implements the outer greedy planning loop: at each
// iteration, pick the (drone, home, subset) triple that serves the
// most remaining deliveries in one sortie, build its concrete flight
// path, and repeat until no drone can serve anything more.
package dispatch

import (
	"sort"
	"time"

	"github.com/aerodispatch/planner/eligibility"
	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/geopath"
	"github.com/aerodispatch/planner/log"
	"github.com/aerodispatch/planner/model"
	"github.com/aerodispatch/planner/sortie"
)

// Fleet bundles the four collections C3 returns; Plan and GeoJSONPath
// treat a nil slice exactly like an empty one.
type Fleet struct {
	Drones        []model.Drone
	ServicePoints []model.ServicePoint
	Availability  []model.ServicePointDrones
	Regions       []geo.Region
}

// Plan runs the outer greedy loop described in the driver design:
// repeatedly selects the largest-subset sortie across every eligible
// drone, builds its concrete path, and removes the served records,
// until no drone can serve anything more. logger may be nil, in which
// case no planning trace is emitted.
func Plan(fleet Fleet, recs []model.DispatchRecord, logger *log.Logger) model.Result {
	cache := geopath.NewLegCache(4096, 5*time.Minute)

	remaining := append([]model.DispatchRecord(nil), recs...)
	var result model.Result
	iteration := 0

	for len(remaining) > 0 {
		iteration++
		drone, home, subset := bestSortie(fleet, remaining, cache)
		if len(subset) == 0 {
			break
		}

		path := buildDronePath(drone, home, subset, fleet.Regions, cache)
		result.DronePaths = append(result.DronePaths, path)

		moves, cost := pathTotals(drone, path)
		result.TotalMoves += moves
		result.TotalCost += cost

		if logger != nil {
			logger.Infof("sortie %d: drone=%s home=%d subset=%d moves=%d cumCost=%.2f",
				iteration, drone.ID, home.ID, len(subset), result.TotalMoves, result.TotalCost)
		}

		remaining = removeSubset(remaining, subset)
	}

	if result.DronePaths == nil {
		result.DronePaths = []model.DronePath{}
	}
	return result
}

// bestSortie finds the drone/home/subset triple with the strictly
// largest subset size across the whole fleet; the first such triple
// encountered wins ties.
func bestSortie(fleet Fleet, remaining []model.DispatchRecord, cache *geopath.LegCache) (model.Drone, model.ServicePoint, []model.DispatchRecord) {
	var bestDrone model.Drone
	var bestHome model.ServicePoint
	var bestSubset []model.DispatchRecord

	for _, d := range fleet.Drones {
		home, ok := eligibility.HomeServicePoint(d.ID, fleet.Availability, fleet.ServicePoints)
		if !ok {
			continue
		}
		subset := sortie.FindMaxSubset(d, home, remaining, fleet.Availability, fleet.Regions, cache)
		if len(subset) > len(bestSubset) {
			bestDrone, bestHome, bestSubset = d, home, subset
		}
	}
	return bestDrone, bestHome, bestSubset
}

// buildDronePath walks the chosen subset in ascending id order,
// computing a leg from the current position to each delivery, then a
// final return leg to home. Each leg is appended with its hover
// duplicate before being emitted.
func buildDronePath(drone model.Drone, home model.ServicePoint, subset []model.DispatchRecord, regions []geo.Region, cache *geopath.LegCache) model.DronePath {
	sorted := append([]model.DispatchRecord(nil), subset...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	path := model.DronePath{DroneID: drone.ID}
	current := home.Location

	for _, rec := range sorted {
		leg := cache.FindPath(current, rec.Delivery, regions)
		if len(leg) == 0 {
			return path
		}
		current = leg[len(leg)-1]
		path.Deliveries = append(path.Deliveries, model.DeliveryPath{
			DeliveryID: rec.ID,
			FlightPath: withHover(leg),
		})
	}

	ret := cache.FindPath(current, home.Location, regions)
	if len(ret) > 0 {
		path.Deliveries = append(path.Deliveries, model.DeliveryPath{
			DeliveryID: model.ReturnLegID,
			FlightPath: withHover(ret),
		})
	}

	return path
}

// withHover appends a duplicate of the last position, the hover leg
// every emitted flightPath must end with.
func withHover(leg []geo.Position) []geo.Position {
	out := make([]geo.Position, len(leg)+1)
	copy(out, leg)
	out[len(leg)] = leg[len(leg)-1]
	return out
}

// pathTotals sums moves (leg length minus one, absorbing the hover
// duplicate) and the resulting cost for one drone's sortie.
func pathTotals(drone model.Drone, path model.DronePath) (moves int, cost float64) {
	for _, d := range path.Deliveries {
		moves += d.Moves()
	}
	if drone.Capability != nil {
		cost = drone.Capability.Cost(moves)
	}
	return moves, cost
}

func removeSubset(remaining []model.DispatchRecord, subset []model.DispatchRecord) []model.DispatchRecord {
	served := make(map[int]bool, len(subset))
	for _, rec := range subset {
		served[rec.ID] = true
	}
	out := remaining[:0:0]
	for _, rec := range remaining {
		if !served[rec.ID] {
			out = append(out, rec)
		}
	}
	return out
}

// GeoJSONLineString renders a single drone path's legs concatenated
// into one GeoJSON LineString, in the literal minified shape the
// external boundary contracts for.
func GeoJSONLineString(path model.DronePath) string {
	var coords []geo.Position
	for _, d := range path.Deliveries {
		coords = append(coords, d.FlightPath...)
	}
	return renderLineString(coords)
}

// GeoJSONPath finds a single drone whose FindMaxSubset exactly equals
// the whole record list (first match wins), builds its path, and
// renders the concatenated LineString. If no such drone exists, it
// returns the empty LineString.
func GeoJSONPath(fleet Fleet, recs []model.DispatchRecord, cache *geopath.LegCache) string {
	if len(recs) == 0 {
		return renderLineString(nil)
	}
	if cache == nil {
		cache = geopath.NewLegCache(4096, 5*time.Minute)
	}
	for _, d := range fleet.Drones {
		home, ok := eligibility.HomeServicePoint(d.ID, fleet.Availability, fleet.ServicePoints)
		if !ok {
			continue
		}
		subset := sortie.FindMaxSubset(d, home, recs, fleet.Availability, fleet.Regions, cache)
		if len(subset) != len(recs) {
			continue
		}
		path := buildDronePath(d, home, subset, fleet.Regions, cache)
		return GeoJSONLineString(path)
	}
	return renderLineString(nil)
}
