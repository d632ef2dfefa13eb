// ilp/caching.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ilp

import (
	"context"
	"time"

	"github.com/aerodispatch/planner/log"
	"github.com/aerodispatch/planner/util"
)

const snapshotCacheFile = "ilp-snapshot"

// CachingClient wraps a Client with an on-disk snapshot cache so a
// transient upstream outage degrades to the last-known-good snapshot
// instead of an empty result. If BaseDir is empty, caching happens
// under the user cache directory; if MaxAge elapses, a stale snapshot
// is no longer served and a failed fetch instead falls through to the
// wrapped client's (graceful, empty) behaviour.
type CachingClient struct {
	inner   Client
	BaseDir string
	MaxAge  time.Duration
	Logger  *log.Logger
}

// NewCachingClient wraps inner, persisting snapshots under baseDir
// (or the user cache dir if blank) and serving a cached snapshot for
// up to maxAge after a failed live fetch.
func NewCachingClient(inner Client, baseDir string, maxAge time.Duration, logger *log.Logger) *CachingClient {
	return &CachingClient{inner: inner, BaseDir: baseDir, MaxAge: maxAge, Logger: logger}
}

// FetchSnapshot tries a live fetch first; on success it persists the
// snapshot to disk before returning it. On failure, it falls back to
// the most recently cached snapshot if one exists and is within
// MaxAge, and otherwise propagates the live-fetch error so the caller
// degrades to the spec's empty-result behaviour.
func (c *CachingClient) FetchSnapshot(ctx context.Context) (Snapshot, error) {
	snap, err := FetchSnapshot(ctx, c.inner)
	if err == nil {
		if storeErr := util.CacheStoreObject(c.BaseDir, snapshotCacheFile, snap); storeErr != nil {
			c.Logger.Warnf("ilp: failed to persist snapshot cache: %v", storeErr)
		}
		return snap, nil
	}

	var cached Snapshot
	modTime, cacheErr := util.CacheRetrieveObject(c.BaseDir, snapshotCacheFile, &cached)
	if cacheErr != nil {
		c.Logger.Warnf("ilp: live fetch failed (%v) and no cached snapshot is available", err)
		return Snapshot{}, err
	}
	if c.MaxAge > 0 && time.Since(modTime) > c.MaxAge {
		c.Logger.Warnf("ilp: live fetch failed (%v) and cached snapshot is stale (age %s)", err, time.Since(modTime))
		return Snapshot{}, err
	}

	c.Logger.Warnf("ilp: live fetch failed (%v); serving cached snapshot from %s", err, modTime)
	return cached, nil
}
