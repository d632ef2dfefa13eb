// server/errors.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import "errors"

// The four error kinds the external boundary distinguishes. Geometry
// endpoints answer invalid input with HTTP 200 and a null body;
// droneDetails answers not-found with 404; every other case degrades
// to 200 with an empty list or default result rather than raising an
// error across the boundary.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrInfeasible          = errors.New("infeasible")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

var errorStringToError = map[string]error{
	ErrInvalidInput.Error():        ErrInvalidInput,
	ErrNotFound.Error():            ErrNotFound,
	ErrInfeasible.Error():          ErrInfeasible,
	ErrUpstreamUnavailable.Error(): ErrUpstreamUnavailable,
}

func TryDecodeError(e error) error {
	if e == nil {
		return e
	}
	if err, ok := errorStringToError[e.Error()]; ok {
		return err
	}
	return e
}

func TryDecodeErrorString(s string) error {
	if err, ok := errorStringToError[s]; ok {
		return err
	}
	return nil
}
