package community

import (
	"slices"

	"github.com/agenthands/kinship/internal/core/model"
)

// adjacency is the undirected view of a node/link graph used for clustering.
// Nodes are addressed by their position in the input slice; duplicate IDs keep
// the first position.
type adjacency struct {
	nodes     []model.Node
	index     map[string]int
	neighbors [][]int
	weights   []map[int]int
	edges     int
}

// newAdjacency keeps only links whose source and target are both present.
// Self-loops carry no community information and are skipped.
func newAdjacency(nodes []model.Node, links []model.Link) *adjacency {
	g := &adjacency{
		index: make(map[string]int, len(nodes)),
	}
	for _, n := range nodes {
		if _, ok := g.index[n.ID]; ok {
			continue
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}
	g.neighbors = make([][]int, len(g.nodes))
	g.weights = make([]map[int]int, len(g.nodes))
	for i := range g.weights {
		g.weights[i] = make(map[int]int)
	}

	for _, l := range links {
		u, okSource := g.index[l.Source]
		v, okTarget := g.index[l.Target]
		if !okSource || !okTarget || u == v {
			continue
		}
		if g.weights[u][v] == 0 {
			g.neighbors[u] = append(g.neighbors[u], v)
			g.neighbors[v] = append(g.neighbors[v], u)
			g.edges++
		}
		g.weights[u][v]++
		g.weights[v][u]++
	}

	return g
}

func (g *adjacency) members(positions []int) []model.Node {
	slices.Sort(positions)
	result := make([]model.Node, len(positions))
	for i, p := range positions {
		result[i] = g.nodes[p]
	}
	return result
}

// ordered sorts communities by their earliest member so that ids derived from
// the slice position do not depend on map iteration.
func (g *adjacency) ordered(groups [][]int) [][]model.Node {
	for _, grp := range groups {
		slices.Sort(grp)
	}
	slices.SortFunc(groups, func(a, b []int) int {
		return a[0] - b[0]
	})
	result := make([][]model.Node, 0, len(groups))
	for _, grp := range groups {
		result = append(result, g.members(grp))
	}
	return result
}
