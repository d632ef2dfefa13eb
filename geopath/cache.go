// geopath/cache.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geopath

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aerodispatch/planner/geo"
)

// LegCache memoizes FindPath results for the lifetime of one planning
// call. Repeated outer-loop iterations and candidate drones at the
// same service point recompute identical legs; this cache turns those
// repeats into a lookup. It must never change which path is returned,
// so the key includes a fingerprint of the active region set.
type LegCache struct {
	cache *expirable.LRU[string, []geo.Position]
}

// NewLegCache builds a cache holding up to size entries, each valid
// for ttl. A planning call typically constructs one LegCache and
// discards it when the call finishes.
func NewLegCache(size int, ttl time.Duration) *LegCache {
	return &LegCache{cache: expirable.NewLRU[string, []geo.Position](size, nil, ttl)}
}

// FindPath returns the cached path for (start, goal, regions) if
// present, otherwise computes it via FindPath and stores the result.
func (c *LegCache) FindPath(start, goal geo.Position, regions []geo.Region) []geo.Position {
	if c == nil || c.cache == nil {
		return FindPath(start, goal, regions)
	}

	key := legKey(start, goal, regions)
	if path, ok := c.cache.Get(key); ok {
		return path
	}

	path := FindPath(start, goal, regions)
	c.cache.Add(key, path)
	return path
}

func legKey(start, goal geo.Position, regions []geo.Region) string {
	return fmt.Sprintf("%v|%v|%s", start, goal, regionFingerprint(regions))
}

// regionFingerprint produces a stable string summary of the active
// restricted-area set so that two planning calls with different
// no-fly zones never share a cache entry.
func regionFingerprint(regions []geo.Region) string {
	fp := make([]byte, 0, 32*len(regions))
	for _, r := range regions {
		for _, v := range r {
			fp = fmt.Appendf(fp, "%v,%v;", v[0], v[1])
		}
		fp = append(fp, '|')
	}
	return string(fp)
}
