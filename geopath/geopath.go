// geopath/geopath.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geopath implements A* search over the implicit 16-direction
// grid defined by package geo. The grid is continuous and unbounded
// in principle; the recency window and the quantised-hash closed set
// below are what keep the search finite in practice.
package geopath

import (
	"container/heap"

	"github.com/aerodispatch/planner/geo"
)

// recencyWindow caps the FIFO list of recently-closed cells. Rejecting
// neighbours whose quantised hash appears in it is a local-minima
// escape hack: without it, A* can oscillate between two cells forever
// when a no-fly zone forces a detour.
const recencyWindow = 10

type node struct {
	pos    geo.Position
	g      float64
	f      float64
	parent *node
	index  int // heap housekeeping
	seq    int // insertion order, for FIFO tie-break
}

type openSet []*node

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index, o[j].index = i, j
}
func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}

// FindPath runs A* from start to goal, treating any well-formed
// region in regions as impassable. It returns the path in
// start-to-goal order, or an empty slice if no route exists (open set
// exhausted). The heuristic is distance-to-goal measured in grid
// steps, while g grows by geo.Step per move; the two are on different
// scales, so f is dominated by the heuristic and the returned path is
// not guaranteed to be the shortest.
func FindPath(start, goal geo.Position, regions []geo.Region) []geo.Position {
	if !start.Valid() || !goal.Valid() {
		return nil
	}

	startNode := &node{pos: start, g: 0}
	startNode.f = heuristic(start, goal)

	open := &openSet{startNode}
	heap.Init(open)

	closed := make(map[[2]int64]bool)
	best := make(map[[2]int64]*node)
	best[geo.QuantizeHash(start)] = startNode

	var recency [][2]int64
	seq := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		hash := geo.QuantizeHash(current.pos)
		if closed[hash] {
			continue
		}
		closed[hash] = true

		if geo.IsClose(current.pos, goal) {
			return reconstruct(current)
		}

		recency = pushRecency(recency, hash)

		for _, angle := range geo.Angles {
			next, err := geo.NextPosition(current.pos, angle)
			if err != nil {
				continue
			}
			nextHash := geo.QuantizeHash(next)
			if closed[nextHash] {
				continue
			}
			if !geo.IsValidMove(current.pos, next, regions) {
				continue
			}
			if inRecency(recency, nextHash) {
				continue
			}

			tentativeG := current.g + geo.Step
			if existing, ok := best[nextHash]; ok && existing.g <= tentativeG {
				continue
			}

			seq++
			n := &node{
				pos:    next,
				g:      tentativeG,
				f:      tentativeG + heuristic(next, goal),
				parent: current,
				seq:    seq,
			}
			best[nextHash] = n
			heap.Push(open, n)
		}
	}

	return nil
}

func heuristic(p, goal geo.Position) float64 {
	d, err := geo.Distance(p, goal)
	if err != nil {
		return 0
	}
	return d / geo.Step
}

func pushRecency(recency [][2]int64, hash [2]int64) [][2]int64 {
	recency = append(recency, hash)
	if len(recency) > recencyWindow {
		recency = recency[len(recency)-recencyWindow:]
	}
	return recency
}

func inRecency(recency [][2]int64, hash [2]int64) bool {
	for _, h := range recency {
		if h == hash {
			return true
		}
	}
	return false
}

func reconstruct(n *node) []geo.Position {
	var path []geo.Position
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
