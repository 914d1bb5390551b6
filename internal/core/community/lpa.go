package community

import (
	"sort"

	"github.com/agenthands/kinship/internal/core/model"
)

// LabelPropagationDetector implements community detection using the Label Propagation Algorithm (LPA).
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []model.Node, links []model.Link) ([][]model.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// Multiple links between the same pair count as a stronger connection.
	g := newAdjacency(nodes, links)

	// Each node starts with its own ID as label.
	labels := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		labels[i] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for u := range g.nodes {
			if len(g.neighbors[u]) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for _, v := range g.neighbors[u] {
				label := labels[v]
				labelCounts[label] += g.weights[u][v]
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Lexicographically largest candidate wins for stability.
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	byLabel := make(map[string]int)
	var groups [][]int
	for u, label := range labels {
		i, ok := byLabel[label]
		if !ok {
			i = len(groups)
			byLabel[label] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], u)
	}

	return g.ordered(groups), nil
}
