package community

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/agenthands/kinship/internal/core/model"
)

const (
	DefaultSeed       = 1
	DefaultResolution = 1.0
)

// LouvainDetector maximises modularity with the Louvain method. For a fixed seed
// and a fixed input order the partition, and therefore cluster ids and colours,
// are reproducible.
type LouvainDetector struct {
	seed       uint64
	resolution float64
}

func NewLouvainDetector() *LouvainDetector {
	return &LouvainDetector{
		seed:       DefaultSeed,
		resolution: DefaultResolution,
	}
}

func (d *LouvainDetector) WithSeed(seed uint64) *LouvainDetector {
	d.seed = seed
	return d
}

// WithResolution sets the modularity resolution; non-positive values reset it to the default.
func (d *LouvainDetector) WithResolution(resolution float64) *LouvainDetector {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	d.resolution = resolution
	return d
}

func (d *LouvainDetector) Detect(nodes []model.Node, links []model.Link) ([][]model.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	adj := newAdjacency(nodes, links)

	// Without edges modularity is undefined; every node is its own community.
	if adj.edges == 0 {
		groups := make([][]int, len(adj.nodes))
		for i := range groups {
			groups[i] = []int{i}
		}
		return adj.ordered(groups), nil
	}

	g := simple.NewUndirectedGraph()
	for i := range adj.nodes {
		g.AddNode(simple.Node(int64(i)))
	}
	for u, neighbors := range adj.neighbors {
		for _, v := range neighbors {
			if u < v {
				g.SetEdge(g.NewEdge(simple.Node(int64(u)), simple.Node(int64(v))))
			}
		}
	}

	src := rand.NewPCG(d.seed, d.seed)
	reduced := community.Modularize(g, d.resolution, src)

	var groups [][]int
	for _, members := range reduced.Communities() {
		if len(members) == 0 {
			continue
		}
		grp := make([]int, len(members))
		for i, n := range members {
			grp[i] = int(n.ID())
		}
		groups = append(groups, grp)
	}

	return adj.ordered(groups), nil
}
