// eligibility/eligibility.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package eligibility decides which drones can serve a dispatch
// record: capability matching (CanServe) and schedule matching
// (IsAvailable), independent of cost or path feasibility.
package eligibility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aerodispatch/planner/model"
)

// ErrInvalidInput is returned by IsAvailable when the date or time
// string cannot be parsed. This is the one place in the core where a
// caller error is raised rather than degraded to an empty result: an
// unparseable date/time is the caller's mistake, not missing data.
var ErrInvalidInput = errors.New("eligibility: invalid date or time")

var dayNames = [...]string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

// CanServe reports whether drone's capability satisfies record's
// requirements, ignoring cost (maxCost is consulted only by the
// sortie planner) and ignoring schedule (see IsAvailable).
func CanServe(d model.Drone, r model.DispatchRecord) bool {
	if d.Capability == nil {
		return false
	}
	c := *d.Capability
	req := r.Requirements

	if req.Capacity != nil && c.Capacity < *req.Capacity {
		return false
	}
	if req.Cooling != nil && *req.Cooling && !c.Cooling {
		return false
	}
	if req.Heating != nil && *req.Heating && !c.Heating {
		return false
	}
	return true
}

// IsAvailable reports whether the drone identified by droneID has a
// window, merged across every service point that lists it in table,
// whose day of week matches date and whose from/until strictly
// bracket time (exact boundary times are rejected).
func IsAvailable(droneID, date, timeStr string, table []model.ServicePointDrones) (bool, error) {
	day, err := dayOfWeek(date)
	if err != nil {
		return false, err
	}
	t, err := parseClock(timeStr)
	if err != nil {
		return false, err
	}

	for _, w := range mergedWindows(droneID, table) {
		if w.DayOfWeek != day {
			continue
		}
		from, err := parseClock(w.From)
		if err != nil {
			continue
		}
		until, err := parseClock(w.Until)
		if err != nil {
			continue
		}
		if from < t && t < until {
			return true, nil
		}
	}
	return false, nil
}

// mergedWindows collects every window listed for droneID across all
// service-point entries, de-duplicating identical (day, from, until)
// triples. The same drone commonly appears under more than one
// service point with the same windows repeated; de-duplication is a
// pure speed optimization here since the check below only asks
// whether at least one window matches.
func mergedWindows(droneID string, table []model.ServicePointDrones) []model.Window {
	seen := make(map[model.Window]bool)
	var merged []model.Window
	for _, sp := range table {
		for _, dw := range sp.Drones {
			if dw.ID != droneID {
				continue
			}
			for _, w := range dw.Availability {
				if seen[w] {
					continue
				}
				seen[w] = true
				merged = append(merged, w)
			}
		}
	}
	return merged
}

// HomeServicePoint returns the first service-point entry in table
// whose Drones list contains droneID, which the spec defines as that
// drone's home for path planning.
func HomeServicePoint(droneID string, table []model.ServicePointDrones, points []model.ServicePoint) (model.ServicePoint, bool) {
	for _, sp := range table {
		for _, dw := range sp.Drones {
			if dw.ID == droneID {
				for _, p := range points {
					if p.ID == sp.ServicePointID {
						return p, true
					}
				}
				return model.ServicePoint{}, false
			}
		}
	}
	return model.ServicePoint{}, false
}

func dayOfWeek(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return dayNames[int(t.Weekday()+6)%7], nil
}

// parseClock accepts both HH:MM and HH:MM:SS, returning seconds since
// midnight so that comparisons are a single integer comparison.
func parseClock(s string) (int, error) {
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}
