// sortie/sortie.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package sortie implements findMaxSubset: given one drone and one
// home service point, greedily select the largest subset of the
// remaining dispatch records that drone can carry on a single
// round-trip sortie.
package sortie

import (
	"math"
	"sort"

	"github.com/aerodispatch/planner/eligibility"
	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/geopath"
	"github.com/aerodispatch/planner/model"
)

// Pathfinder is the subset of geopath's API the planner needs; a
// *geopath.LegCache satisfies it directly, letting callers memoize
// legs across candidate drones at the same service point.
type Pathfinder interface {
	FindPath(start, goal geo.Position, regions []geo.Region) []geo.Position
}

type directPathfinder struct{}

func (directPathfinder) FindPath(start, goal geo.Position, regions []geo.Region) []geo.Position {
	return geopath.FindPath(start, goal, regions)
}

// DirectPathfinder computes every leg fresh, uncached.
var DirectPathfinder Pathfinder = directPathfinder{}

// FindMaxSubset returns the subset of remaining that a single greedy
// walk accepts for drone, based at home, on one sortie, honouring
// capacity, maxMoves, and the amortised maxCost rule. Acceptances are
// never revisited, so a larger feasible subset may exist. The chosen subset is
// returned in ascending dispatch-record id order, the same order it
// was walked in.
func FindMaxSubset(
	drone model.Drone,
	home model.ServicePoint,
	remaining []model.DispatchRecord,
	table []model.ServicePointDrones,
	regions []geo.Region,
	paths Pathfinder,
) []model.DispatchRecord {
	if drone.Capability == nil {
		return nil
	}
	capa := *drone.Capability

	candidates := candidatePool(drone, remaining, table)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	var chosen []model.DispatchRecord
	var usedCapacity float64
	var usedMoves int
	currentPos := home.Location
	minMaxCost := math.Inf(1)

	for _, rec := range candidates {
		reqCapacity := 0.0
		if rec.Requirements.Capacity != nil {
			reqCapacity = *rec.Requirements.Capacity
		}
		tentativeCapacity := usedCapacity + reqCapacity
		if tentativeCapacity > capa.Capacity {
			continue
		}

		forward := paths.FindPath(currentPos, rec.Delivery, regions)
		if len(forward) == 0 {
			continue
		}
		ret := paths.FindPath(rec.Delivery, home.Location, regions)
		if len(ret) == 0 {
			continue
		}

		movesIfIncluded := usedMoves + (len(forward) - 1) + (len(ret) - 1)
		if movesIfIncluded > capa.MaxMoves {
			continue
		}

		reqMaxCost := math.Inf(1)
		if rec.Requirements.MaxCost != nil && *rec.Requirements.MaxCost > 0 {
			reqMaxCost = *rec.Requirements.MaxCost
		}
		candidateMin := math.Min(minMaxCost, reqMaxCost)

		if !math.IsInf(candidateMin, 1) {
			flightCost := capa.CostInitial + float64(movesIfIncluded)*capa.CostPerMove + capa.CostFinal
			perDeliveryCost := flightCost / float64(len(chosen)+1)
			if perDeliveryCost > candidateMin {
				continue
			}
		}

		chosen = append(chosen, rec)
		usedCapacity = tentativeCapacity
		usedMoves = movesIfIncluded
		currentPos = rec.Delivery
		minMaxCost = candidateMin
	}

	return chosen
}

// candidatePool filters remaining to the records drone can serve by
// capability and schedule, ignoring cost (cost is handled by the
// amortised rule above, not by eligibility).
func candidatePool(drone model.Drone, remaining []model.DispatchRecord, table []model.ServicePointDrones) []model.DispatchRecord {
	var out []model.DispatchRecord
	for _, rec := range remaining {
		if !eligibility.CanServe(drone, rec) {
			continue
		}
		ok, err := eligibility.IsAvailable(drone.ID, rec.Date, rec.Time, table)
		if err != nil || !ok {
			continue
		}
		out = append(out, rec)
	}
	return out
}
