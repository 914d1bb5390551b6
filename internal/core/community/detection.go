package community

import (
	"fmt"
	"strings"

	"github.com/agenthands/kinship/internal/config"
	"github.com/agenthands/kinship/internal/core/model"
)

// Detector partitions nodes into communities. Every node must appear in exactly
// one returned community.
type Detector interface {
	Detect(nodes []model.Node, links []model.Link) ([][]model.Node, error)
}

// NewDetector builds the detector named by the clustering configuration.
func NewDetector(cfg config.ClusteringConfig) (Detector, error) {
	switch strings.ToLower(cfg.Algorithm) {
	case "", "louvain":
		return NewLouvainDetector().WithSeed(cfg.Seed).WithResolution(cfg.Resolution), nil
	case "lpa":
		d := NewLabelPropagationDetector()
		if cfg.MaxIterations > 0 {
			d.MaxIterations = cfg.MaxIterations
		}
		return d, nil
	case "components":
		return &ComponentDetector{}, nil
	default:
		return nil, fmt.Errorf("unsupported clustering algorithm: %s", cfg.Algorithm)
	}
}

// ComponentDetector treats every connected component as one community.
type ComponentDetector struct{}

func (d *ComponentDetector) Detect(nodes []model.Node, links []model.Link) ([][]model.Node, error) {
	g := newAdjacency(nodes, links)

	visited := make([]bool, len(g.nodes))
	var communities [][]model.Node

	for i := range g.nodes {
		if visited[i] {
			continue
		}
		var component []int
		d.dfs(i, g, visited, &component)
		communities = append(communities, g.members(component))
	}

	return communities, nil
}

func (d *ComponentDetector) dfs(u int, g *adjacency, visited []bool, component *[]int) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range g.neighbors[u] {
		if !visited[v] {
			d.dfs(v, g, visited, component)
		}
	}
}
