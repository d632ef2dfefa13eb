// model/model.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package model holds the fleet, service-point, availability, and
// dispatch-record shapes shared by every component above the
// geometry layer. These types are the wire shapes returned by the ILP
// and consumed by the planner; none of them carry behaviour beyond
// small accessors.
package model

import "github.com/aerodispatch/planner/geo"

// Capability describes what a drone can carry and how it costs to
// fly it. A Drone with a nil Capability has no capability recorded:
// every capability-gated attribute reads as false/zero.
type Capability struct {
	Cooling     bool    `json:"cooling"`
	Heating     bool    `json:"heating"`
	Capacity    float64 `json:"capacity"`
	MaxMoves    int     `json:"maxMoves"`
	CostPerMove float64 `json:"costPerMove"`
	CostInitial float64 `json:"costInitial"`
	CostFinal   float64 `json:"costFinal"`
}

// Drone is a fleet member as reported by the ILP.
type Drone struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Capability *Capability `json:"capability,omitempty"`
}

// ServicePoint is a drone's home base: takeoff and landing location.
type ServicePoint struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Location geo.Position `json:"location"`
}

// Window is a (day-of-week, from, until) triple describing when a
// drone may fly. From/Until hold the strings as received, in either
// HH:MM or HH:MM:SS form; they are not canonicalised, and
// eligibility parses both forms when comparing.
type Window struct {
	DayOfWeek string `json:"dayOfWeek"`
	From      string `json:"from"`
	Until     string `json:"until"`
}

// ServicePointDrones is one entry of the availability table: the
// drones based at, or at least listed under, a given service point,
// each with its own availability windows.
type ServicePointDrones struct {
	ServicePointID int             `json:"servicePointId"`
	Drones         []DroneWindows  `json:"drones"`
}

// DroneWindows pairs a drone id with the windows listed for it at one
// service point entry. The same drone id may appear under several
// ServicePointDrones entries; windows accumulate across all of them.
type DroneWindows struct {
	ID           string   `json:"id"`
	Availability []Window `json:"availability"`
}

// Requirements are the optional constraints a dispatch record places
// on the drone that serves it. A nil field pointer (for Cooling/
// Heating) or zero value for Capacity/MaxCost means "no constraint";
// see eligibility.CanServe and sortie.FindMaxSubset for how each is
// consulted.
type Requirements struct {
	Cooling  *bool    `json:"cooling,omitempty"`
	Heating  *bool    `json:"heating,omitempty"`
	Capacity *float64 `json:"capacity,omitempty"`
	MaxCost  *float64 `json:"maxCost,omitempty"`
}

// DispatchRecord is one requested delivery.
type DispatchRecord struct {
	ID           int          `json:"id"`
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	Delivery     geo.Position `json:"delivery"`
	Requirements Requirements `json:"requirements"`
}

// DeliveryPath is one leg of a drone's sortie: either a delivery
// (DeliveryID >= 0) or the return-to-base leg (DeliveryID == -1).
type DeliveryPath struct {
	DeliveryID int            `json:"deliveryId"`
	FlightPath []geo.Position `json:"flightPath"`
}

// ReturnLegID is the sentinel DeliveryID for a drone path's
// return-to-base leg.
const ReturnLegID = -1

// DronePath is the set of legs flown by one drone on one sortie.
type DronePath struct {
	DroneID    string         `json:"droneId"`
	Deliveries []DeliveryPath `json:"deliveries"`
}

// Result is the outcome of a full planning call.
type Result struct {
	DronePaths []DronePath `json:"dronePaths"`
	TotalMoves int         `json:"totalMoves"`
	TotalCost  float64     `json:"totalCost"`
}

// Moves reports the move count of a single leg: the number of
// positions minus two, which discards both the start position and
// the trailing hover duplicate (a two-position leg with its hover
// copy appended is three positions long and is exactly one move).
func (d DeliveryPath) Moves() int {
	if len(d.FlightPath) < 3 {
		return 0
	}
	return len(d.FlightPath) - 2
}

// Cost computes the total sortie cost for moves flown under c.
func (c Capability) Cost(moves int) float64 {
	return c.CostInitial + float64(moves)*c.CostPerMove + c.CostFinal
}
