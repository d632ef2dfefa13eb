// query/query_test.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package query

import (
	"testing"

	"github.com/aerodispatch/planner/model"
)

func coolDrone() model.Drone {
	return model.Drone{
		ID:   "COOL-001",
		Name: "Coolant Carrier",
		Capability: &model.Capability{
			Cooling: true, Capacity: 100, MaxMoves: 500,
			CostPerMove: 1, CostInitial: 2, CostFinal: 3,
		},
	}
}

func TestMatchPathString(t *testing.T) {
	d := coolDrone()
	if !MatchPath(d, "id", "COOL-001") {
		t.Errorf("expected id match")
	}
	if MatchPath(d, "id", "OTHER") {
		t.Errorf("expected id mismatch to fail")
	}
}

func TestMatchPathBool(t *testing.T) {
	d := coolDrone()
	if !MatchPath(d, "cooling", "true") {
		t.Errorf("expected cooling=true match")
	}
	if MatchPath(d, "cooling", "not-a-bool") {
		t.Errorf("unparseable bool value should not match")
	}
}

func TestMatchPathAbsentCapability(t *testing.T) {
	d := model.Drone{ID: "X", Name: "no-cap"}
	if MatchPath(d, "cooling", "true") {
		t.Errorf("absent capability should read cooling as false")
	}
	if !MatchPath(d, "cooling", "false") {
		t.Errorf("absent capability should match cooling=false")
	}
}

func TestMatchPathUnknownAttribute(t *testing.T) {
	if MatchPath(coolDrone(), "bogus", "value") {
		t.Errorf("unknown attribute should never match")
	}
}

func TestMatchQueryAnd(t *testing.T) {
	d := coolDrone()
	pass := []Attribute{
		{Attribute: "cooling", Operator: "=", Value: "true"},
		{Attribute: "capacity", Operator: ">", Value: "50"},
	}
	if !MatchQuery(d, pass) {
		t.Errorf("expected AND of satisfied clauses to match")
	}

	fail := []Attribute{
		{Attribute: "cooling", Operator: "=", Value: "true"},
		{Attribute: "capacity", Operator: ">", Value: "200"},
	}
	if MatchQuery(d, fail) {
		t.Errorf("expected AND with an unsatisfied clause to fail")
	}
}

func TestMatchQueryInvalidClauseDropped(t *testing.T) {
	d := coolDrone()
	queries := []Attribute{{Attribute: "", Operator: "=", Value: "x"}}
	if !MatchQuery(d, queries) {
		t.Errorf("an entirely-invalid query list should match every drone")
	}
}

func TestMatchQueryUnknownAttributeEvaluatesFalse(t *testing.T) {
	d := coolDrone()
	queries := []Attribute{{Attribute: "bogus", Operator: "=", Value: "x"}}
	if MatchQuery(d, queries) {
		t.Errorf("a fully-populated query with an unknown attribute should evaluate and fail")
	}
}

func TestMatchQueryStringOperatorRestriction(t *testing.T) {
	d := coolDrone()
	queries := []Attribute{{Attribute: "id", Operator: "<", Value: "Z"}}
	if MatchQuery(d, queries) {
		t.Errorf("string attributes should only accept =")
	}
}
