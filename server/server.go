// server/server.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package server implements the HTTP external boundary: request
// routing, the error taxonomy's HTTP mapping, and the ambient
// middleware (correlation ids, structured request logging, panic
// recovery, response compression) around the core planner packages.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"github.com/aerodispatch/planner/ilp"
	"github.com/aerodispatch/planner/log"
)

// BuildID is the fixed identifier GET /uid returns.
const BuildID = "dispatchd-1"

// FleetFetcher returns the current ILP snapshot for one planning
// call. *ilp.CachingClient satisfies it directly; cmd/dispatchd wraps
// its *ilp.HTTPClient in one.
type FleetFetcher interface {
	FetchSnapshot(ctx context.Context) (ilp.Snapshot, error)
}

// Server holds everything a request handler needs: the ILP accessor,
// the logger, and process start time for the status page.
type Server struct {
	Fleet     FleetFetcher
	Logger    *log.Logger
	StartTime time.Time
}

// NewServer builds a Server ready to have Mux called on it.
func NewServer(fleet FleetFetcher, logger *log.Logger) *Server {
	return &Server{Fleet: fleet, Logger: logger, StartTime: time.Now()}
}

// Mux builds the full route table described by the external boundary.
func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /dronesWithCooling/{state}", s.handleDronesWithCooling)
	mux.HandleFunc("GET /droneDetails/{id}", s.handleDroneDetails)
	mux.HandleFunc("GET /queryAsPath/{attribute}/{value}", s.handleQueryAsPath)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /queryAvailableDrones", s.handleQueryAvailableDrones)
	mux.Handle("POST /calcDeliveryPath", gzhttp.GzipHandler(http.HandlerFunc(s.handleCalcDeliveryPath)))
	mux.Handle("POST /calcDeliveryPathAsGeoJson", gzhttp.GzipHandler(http.HandlerFunc(s.handleCalcDeliveryPathAsGeoJSON)))
	mux.HandleFunc("POST /distanceTo", s.handleDistanceTo)
	mux.HandleFunc("POST /isCloseTo", s.handleIsCloseTo)
	mux.HandleFunc("POST /nextPosition", s.handleNextPosition)
	mux.HandleFunc("POST /isInRegion", s.handleIsInRegion)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /uid", s.handleUID)

	return s.withRequestLogging(s.withRecovery(mux))
}

// withRecovery adapts the teacher's CatchAndReportCrash into HTTP
// middleware: a panicking handler is logged with a captured call
// stack and answered with a 500 instead of taking the process down.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		crashed := true
		defer func() {
			if crashed {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		// Deferred directly so that its recover() call takes effect.
		defer s.Logger.CatchAndReportCrash()
		next.ServeHTTP(w, r)
		crashed = false
	})
}

type correlationIDKey struct{}

// withRequestLogging attaches a request-scoped correlation id and
// logs method, path, status, and duration for every request.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		ctx := context.WithValue(r.Context(), correlationIDKey{}, id)
		r = r.WithContext(ctx)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		s.Logger.Infof("%s %s -> %d (%s) [%s]", r.Method, r.URL.Path, sw.status, time.Since(start), id)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// ListenAndServe binds addr, retrying on the following 9 ports if it
// is already in use, mirroring the teacher's port-retry loop for its
// own HTTP server.
func ListenAndServe(addr string, handler http.Handler, logger *log.Logger) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("server: invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("server: invalid port in %q: %w", addr, err)
	}

	var listener net.Listener
	for i := range 10 {
		candidate := net.JoinHostPort(host, strconv.Itoa(port+i))
		if listener, err = net.Listen("tcp", candidate); err == nil {
			logger.Infof("Listening on %s", candidate)
			break
		}
	}
	if listener == nil {
		return fmt.Errorf("server: unable to bind any port starting at %s: %w", addr, err)
	}

	return http.Serve(listener, handler)
}
