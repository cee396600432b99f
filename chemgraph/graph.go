/*
 * graph.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package chemgraph wraps gonum's graph packages for the graph algorithms atomstruct
//needs on molecular connectivity, mostly ring perception. Atoms are nodes
//identified by int64 ids, bonds are undirected edges.
package chemgraph

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Edge is an undirected pair of node ids, stored with the smaller id first.
type Edge [2]int64

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b int64) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// Graph is an undirected molecular graph. Edges are remembered in insertion
// order so that results are deterministic.
type Graph struct {
	g     *simple.UndirectedGraph
	edges []Edge
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{g: simple.NewUndirectedGraph()}
}

// AddNode adds an isolated node. Adding an existing node does nothing.
func (G *Graph) AddNode(id int64) {
	if G.g.Node(id) == nil {
		G.g.AddNode(simple.Node(id))
	}
}

// AddEdge connects a and b, adding the nodes if needed. Self loops and
// repeated edges are ignored.
func (G *Graph) AddEdge(a, b int64) {
	if a == b || G.g.HasEdgeBetween(a, b) {
		return
	}
	G.AddNode(a)
	G.AddNode(b)
	G.g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	G.edges = append(G.edges, NewEdge(a, b))
}

// Len returns the number of nodes.
func (G *Graph) Len() int {
	return G.g.Nodes().Len()
}

// Edges returns the edges in insertion order.
func (G *Graph) Edges() []Edge {
	return G.edges
}

// Components returns the connected components as sorted id slices, ordered
// by their smallest id.
func (G *Graph) Components() [][]int64 {
	cc := topo.ConnectedComponents(G.g)
	ret := make([][]int64, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, sortedIDs(c))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// RingEdges returns the edges that belong to at least one cycle, i.e. the
// edges that are not bridges, in insertion order.
func (G *Graph) RingEdges() []Edge {
	inCycle := make(map[Edge]bool)
	for _, c := range topo.UndirectedCyclesIn(G.g) {
		//cycles are returned closed: the first node is repeated at the end.
		for i := 0; i < len(c)-1; i++ {
			inCycle[NewEdge(c[i].ID(), c[i+1].ID())] = true
		}
	}
	ret := make([]Edge, 0, len(inCycle))
	for _, e := range G.edges {
		if inCycle[e] {
			ret = append(ret, e)
		}
	}
	return ret
}

// Ring is a cycle given as node ids in walk order (not closed).
type Ring []int64

// Edges returns the ring's edges, normalized.
func (R Ring) Edges() []Edge {
	ret := make([]Edge, len(R))
	for i := range R {
		ret[i] = NewEdge(R[i], R[(i+1)%len(R)])
	}
	return ret
}

func (R Ring) key() string {
	e := R.Edges()
	sort.Slice(e, func(i, j int) bool {
		if e[i][0] != e[j][0] {
			return e[i][0] < e[j][0]
		}
		return e[i][1] < e[j][1]
	})
	var b strings.Builder
	for _, v := range e {
		fmt.Fprintf(&b, "%d-%d,", v[0], v[1])
	}
	return b.String()
}

// ringSubgraph returns the graph formed by the ring edges only.
func (G *Graph) ringSubgraph() *Graph {
	rg := New()
	for _, e := range G.RingEdges() {
		rg.AddEdge(e[0], e[1])
	}
	return rg
}

// MinimalRings returns, for every ring edge, all the smallest rings that go
// through it. The union of these is a superset of the smallest set of
// smallest rings. Rings are returned in discovery order, without repeats.
func (G *Graph) MinimalRings() []Ring {
	rg := G.ringSubgraph()
	seen := make(map[string]bool)
	var ret []Ring
	for _, e := range rg.edges {
		rg.g.RemoveEdge(e[0], e[1])
		alts := path.DijkstraAllFrom(simple.Node(e[0]), rg.g)
		paths, _ := alts.AllTo(e[1])
		rg.g.SetEdge(simple.Edge{F: simple.Node(e[0]), T: simple.Node(e[1])})
		for _, p := range paths {
			if len(p) < 3 {
				continue
			}
			r := make(Ring, len(p))
			for i, n := range p {
				r[i] = n.ID()
			}
			k := r.key()
			if seen[k] {
				continue
			}
			seen[k] = true
			ret = append(ret, r)
		}
	}
	return ret
}

// AllRings returns every simple cycle with at most maxSize nodes.
func (G *Graph) AllRings(maxSize int) []Ring {
	if maxSize < 3 {
		return nil
	}
	rg := G.ringSubgraph()
	ids := sortedIDs(graph.NodesOf(rg.g.Nodes()))
	var ret []Ring
	seen := make(map[string]bool)
	onPath := make(map[int64]bool)
	var walk func(start int64, p []int64)
	walk = func(start int64, p []int64) {
		last := p[len(p)-1]
		nb := sortedIDs(graph.NodesOf(rg.g.From(last)))
		for _, n := range nb {
			if n == start && len(p) >= 3 {
				r := append(Ring(nil), p...)
				if k := r.key(); !seen[k] {
					seen[k] = true
					ret = append(ret, r)
				}
				continue
			}
			//only visit nodes with a larger id than the start, so that each
			//ring is found from its smallest node.
			if n <= start || onPath[n] || len(p) >= maxSize {
				continue
			}
			onPath[n] = true
			walk(start, append(p, n))
			onPath[n] = false
		}
	}
	for _, s := range ids {
		onPath[s] = true
		walk(s, []int64{s})
		onPath[s] = false
	}
	return ret
}

// Rings returns the minimal rings plus, if allSizeThreshold is at least 3,
// every ring up to that size.
func (G *Graph) Rings(allSizeThreshold int) []Ring {
	ret := G.MinimalRings()
	if allSizeThreshold < 3 {
		return ret
	}
	seen := make(map[string]bool, len(ret))
	for _, r := range ret {
		seen[r.key()] = true
	}
	for _, r := range G.AllRings(allSizeThreshold) {
		if k := r.key(); !seen[k] {
			seen[k] = true
			ret = append(ret, r)
		}
	}
	return ret
}

func sortedIDs(nodes []graph.Node) []int64 {
	ret := make([]int64, len(nodes))
	for i, n := range nodes {
		ret[i] = n.ID()
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}
