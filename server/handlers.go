// server/handlers.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"encoding/json"
	"net/http"

	"github.com/aerodispatch/planner/dispatch"
	"github.com/aerodispatch/planner/eligibility"
	"github.com/aerodispatch/planner/geo"
	"github.com/aerodispatch/planner/geopath"
	"github.com/aerodispatch/planner/model"
	"github.com/aerodispatch/planner/query"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// fleet fetches the current snapshot and maps it to the shape the
// dispatch package works in terms of. A fetch failure degrades to an
// empty fleet (graceful degradation per the upstream-unavailable
// error kind) rather than failing the request.
func (s *Server) fleet(r *http.Request) dispatch.Fleet {
	snap, err := s.Fleet.FetchSnapshot(r.Context())
	if err != nil {
		s.Logger.Warnf("ilp fetch failed, degrading to empty fleet: %v", err)
		return dispatch.Fleet{}
	}
	return dispatch.Fleet{
		Drones:        snap.Drones,
		ServicePoints: snap.ServicePoints,
		Availability:  snap.Availability,
		Regions:       snap.Regions,
	}
}

func (s *Server) handleDronesWithCooling(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")
	fleet := s.fleet(r)

	var ids []string
	for _, d := range fleet.Drones {
		if query.MatchPath(d, "cooling", state) {
			ids = append(ids, d.ID)
		}
	}
	writeJSON(w, orEmpty(ids))
}

func (s *Server) handleDroneDetails(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	fleet := s.fleet(r)

	for _, d := range fleet.Drones {
		if d.ID == id {
			writeJSON(w, d)
			return
		}
	}
	http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
}

func (s *Server) handleQueryAsPath(w http.ResponseWriter, r *http.Request) {
	attribute := r.PathValue("attribute")
	value := r.PathValue("value")
	fleet := s.fleet(r)

	var ids []string
	for _, d := range fleet.Drones {
		if query.MatchPath(d, attribute, value) {
			ids = append(ids, d.ID)
		}
	}
	writeJSON(w, orEmpty(ids))
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var queries []query.Attribute
	if err := json.NewDecoder(r.Body).Decode(&queries); err != nil {
		writeJSON(w, []string{})
		return
	}
	fleet := s.fleet(r)

	var ids []string
	for _, d := range fleet.Drones {
		if query.MatchQuery(d, queries) {
			ids = append(ids, d.ID)
		}
	}
	writeJSON(w, orEmpty(ids))
}

func (s *Server) handleQueryAvailableDrones(w http.ResponseWriter, r *http.Request) {
	var recs []model.DispatchRecord
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		writeJSON(w, []string{})
		return
	}
	fleet := s.fleet(r)

	var ids []string
	for _, d := range fleet.Drones {
		if canServeAll(d, recs, fleet.Availability) {
			ids = append(ids, d.ID)
		}
	}
	writeJSON(w, orEmpty(ids))
}

func canServeAll(d model.Drone, recs []model.DispatchRecord, table []model.ServicePointDrones) bool {
	for _, rec := range recs {
		if !eligibility.CanServe(d, rec) {
			return false
		}
		ok, err := eligibility.IsAvailable(d.ID, rec.Date, rec.Time, table)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func (s *Server) handleCalcDeliveryPath(w http.ResponseWriter, r *http.Request) {
	var recs []model.DispatchRecord
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		writeJSON(w, model.Result{DronePaths: []model.DronePath{}})
		return
	}
	fleet := s.fleet(r)
	result := dispatch.Plan(fleet, recs, s.Logger)
	writeJSON(w, result)
}

func (s *Server) handleCalcDeliveryPathAsGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var recs []model.DispatchRecord
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		_, _ = w.Write([]byte(`{"type":"LineString","coordinates":[]}`))
		return
	}
	fleet := s.fleet(r)
	line := dispatch.GeoJSONPath(fleet, recs, geopath.NewLegCache(4096, 0))
	_, _ = w.Write([]byte(line))
}

// orEmpty normalises a nil id slice to an empty (non-null) JSON array.
func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

///////////////////////////////////////////////////////////////////////////
// Geometry wrappers: thin pass-throughs to package geo that answer
// invalid input with HTTP 200 and a null body, per the error policy.

func (s *Server) handleDistanceTo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		A geo.Position `json:"a"`
		B geo.Position `json:"b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, nil)
		return
	}
	d, err := geo.Distance(body.A, body.B)
	if err != nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, d)
}

func (s *Server) handleIsCloseTo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		A geo.Position `json:"a"`
		B geo.Position `json:"b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, nil)
		return
	}
	if !body.A.Valid() || !body.B.Valid() {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, geo.IsClose(body.A, body.B))
}

func (s *Server) handleNextPosition(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Start geo.Position `json:"start"`
		Angle float64      `json:"angle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, nil)
		return
	}
	next, err := geo.NextPosition(body.Start, body.Angle)
	if err != nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, next)
}

func (s *Server) handleIsInRegion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Point  geo.Position `json:"point"`
		Region geo.Region   `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, nil)
		return
	}
	if !body.Point.Valid() {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, geo.PointInPolygon(body.Point, body.Region))
}
