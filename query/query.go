// query/query.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package query implements the typed attribute predicate language
// used by the standalone drone-query endpoints: single-attribute path
// matching and multi-attribute structured queries.
package query

import (
	"strconv"

	"github.com/iancoleman/orderedmap"

	"github.com/aerodispatch/planner/model"
)

// attributeOrder is the fixed universe of queryable drone attributes,
// in the order they are projected by Attributes.
var attributeOrder = []string{
	"id", "name", "cooling", "heating",
	"capacity", "maxMoves", "costPerMove", "costInitial", "costFinal",
}

// Attributes projects a drone's queryable fields into a stable,
// order-preserving map. This is the single place that knows how to
// pull an attribute value off a drone; both MatchPath and MatchQuery
// consult it so the two matchers can never disagree about a value.
func Attributes(d model.Drone) *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("id", d.ID)
	m.Set("name", d.Name)

	var c model.Capability
	if d.Capability != nil {
		c = *d.Capability
	}
	m.Set("cooling", c.Cooling)
	m.Set("heating", c.Heating)
	m.Set("capacity", c.Capacity)
	m.Set("maxMoves", float64(c.MaxMoves))
	m.Set("costPerMove", c.CostPerMove)
	m.Set("costInitial", c.CostInitial)
	m.Set("costFinal", c.CostFinal)
	return m
}

func isNumericAttribute(attribute string) bool {
	switch attribute {
	case "capacity", "maxMoves", "costPerMove", "costInitial", "costFinal":
		return true
	}
	return false
}

func isBoolAttribute(attribute string) bool {
	return attribute == "cooling" || attribute == "heating"
}

func isStringAttribute(attribute string) bool {
	return attribute == "id" || attribute == "name"
}

func knownAttribute(attribute string) bool {
	for _, a := range attributeOrder {
		if a == attribute {
			return true
		}
	}
	return false
}

// MatchPath reports whether drone d's named attribute equals value,
// under the attribute's type. An unknown attribute, or a value that
// fails to parse under a numeric attribute, evaluates to false.
func MatchPath(d model.Drone, attribute, value string) bool {
	if !knownAttribute(attribute) {
		return false
	}

	attrs := Attributes(d)
	raw, _ := attrs.Get(attribute)

	switch {
	case isStringAttribute(attribute):
		return raw.(string) == value
	case isBoolAttribute(attribute):
		want, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		return raw.(bool) == want
	case isNumericAttribute(attribute):
		want, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		return raw.(float64) == want
	}
	return false
}

// Attribute is one clause of a structured query.
type Attribute struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// valid reports whether all three fields are present and non-blank.
// Invalid queries are silently dropped by MatchQuery before matching,
// so a query list that is entirely invalid matches every drone
// (vacuous truth over zero surviving clauses).
func (a Attribute) valid() bool {
	return a.Attribute != "" && a.Operator != "" && a.Value != ""
}

// MatchQuery reports whether drone d satisfies every valid clause in
// queries (logical AND). Clauses with a blank field are dropped
// first; clauses with all fields present but an unknown
// attribute/operator/value combination are evaluated and fail.
func MatchQuery(d model.Drone, queries []Attribute) bool {
	attrs := Attributes(d)
	for _, q := range queries {
		if !q.valid() {
			continue
		}
		if !matchOne(attrs, q) {
			return false
		}
	}
	return true
}

func matchOne(attrs *orderedmap.OrderedMap, q Attribute) bool {
	if !knownAttribute(q.Attribute) {
		return false
	}
	raw, _ := attrs.Get(q.Attribute)

	switch {
	case isStringAttribute(q.Attribute):
		if q.Operator != "=" {
			return false
		}
		return raw.(string) == q.Value

	case isBoolAttribute(q.Attribute):
		if q.Operator != "=" {
			return false
		}
		want, err := strconv.ParseBool(q.Value)
		if err != nil {
			return false
		}
		return raw.(bool) == want

	case isNumericAttribute(q.Attribute):
		want, err := strconv.ParseFloat(q.Value, 64)
		if err != nil {
			return false
		}
		have := raw.(float64)
		switch q.Operator {
		case "=":
			return have == want
		case "!=":
			return have != want
		case "<":
			return have < want
		case ">":
			return have > want
		}
		return false
	}
	return false
}
