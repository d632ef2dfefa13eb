// cmd/dispatchd/main.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command dispatchd serves the medical-delivery dispatch planner's
// HTTP boundary: it wires an ILP client (optionally cached,
// optionally OAuth2-authenticated) to the planner and the route table
// in package server.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/aerodispatch/planner/ilp"
	"github.com/aerodispatch/planner/log"
	"github.com/aerodispatch/planner/server"
)

func main() {
	cpuprofile := flag.String("cpuprofile", "", "write CPU profile to this file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *cpuprofile, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "unable to start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	logger := log.New(envOr("DISPATCH_LOG_LEVEL", "info"), os.Getenv("DISPATCH_LOG_DIR"))

	fleet := buildFleetFetcher(logger)
	srv := server.NewServer(fleet, logger)

	addr := envOr("DISPATCH_LISTEN_ADDR", ":8080")
	logger.Infof("dispatchd starting, listening on %s", addr)
	if err := server.ListenAndServe(addr, srv.Mux(), logger); err != nil {
		logger.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}

func buildFleetFetcher(logger *log.Logger) server.FleetFetcher {
	endpoint := envOr("ILP_ENDPOINT", ilp.DefaultEndpoint)
	auth := ilp.AuthConfig{
		ClientID:     os.Getenv("ILP_AUTH_CLIENT_ID"),
		ClientSecret: os.Getenv("ILP_AUTH_CLIENT_SECRET"),
		TokenURL:     os.Getenv("ILP_AUTH_TOKEN_URL"),
	}

	client := ilp.NewHTTPClient(endpoint, auth, 30*time.Second)

	cacheDir := os.Getenv("DISPATCH_CACHE_DIR")
	return ilp.NewCachingClient(client, cacheDir, time.Hour, logger)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
