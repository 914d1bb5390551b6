package community

import (
	"testing"

	"github.com/agenthands/kinship/internal/config"
	"github.com/agenthands/kinship/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persons(ids ...string) []model.Node {
	nodes := make([]model.Node, len(ids))
	for i, id := range ids {
		nodes[i] = model.Node{ID: id, Type: model.NodeTypePerson}
	}
	return nodes
}

func ids(community []model.Node) []string {
	result := make([]string, len(community))
	for i, n := range community {
		result[i] = n.ID
	}
	return result
}

// assertPartition checks that every node appears in exactly one community.
func assertPartition(t *testing.T, nodes []model.Node, communities [][]model.Node) {
	t.Helper()
	seen := make(map[string]int)
	for _, c := range communities {
		assert.NotEmpty(t, c)
		for _, n := range c {
			seen[n.ID]++
		}
	}
	assert.Len(t, seen, len(nodes))
	for _, n := range nodes {
		assert.Equal(t, 1, seen[n.ID], "node %s", n.ID)
	}
}

func TestComponentDetector(t *testing.T) {
	nodes := persons("1", "2", "3", "4")
	links := []model.Link{
		{Source: "1", Target: "2"},
		{Source: "2", Target: "3"},
		// 4 is isolated
	}

	communities, err := (&ComponentDetector{}).Detect(nodes, links)

	require.NoError(t, err)
	require.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, ids(communities[0]))
	assert.Equal(t, []string{"4"}, ids(communities[1]))
	assertPartition(t, nodes, communities)
}

func TestComponentDetector_MultipleCommunities(t *testing.T) {
	nodes := persons("1", "2", "3", "4")
	links := []model.Link{
		{Source: "1", Target: "2"},
		{Source: "3", Target: "4"},
	}

	communities, err := (&ComponentDetector{}).Detect(nodes, links)

	assert.NoError(t, err)
	assert.Len(t, communities, 2)
}

func TestAdjacency_RequiresBothEndpoints(t *testing.T) {
	nodes := persons("1", "2")
	links := []model.Link{
		{Source: "1", Target: "missing"},
		{Source: "missing", Target: "2"},
		{Source: "1", Target: "1"},
	}

	g := newAdjacency(nodes, links)

	// a single present endpoint is not enough to keep the link
	assert.Equal(t, 0, g.edges)
	assert.Empty(t, g.neighbors[0])
	assert.Empty(t, g.neighbors[1])
}

func TestNewDetector(t *testing.T) {
	tests := []struct {
		algorithm string
		want      Detector
	}{
		{"louvain", &LouvainDetector{}},
		{"", &LouvainDetector{}},
		{"LPA", &LabelPropagationDetector{}},
		{"components", &ComponentDetector{}},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			d, err := NewDetector(config.ClusteringConfig{Algorithm: tt.algorithm, Resolution: 1})
			require.NoError(t, err)
			assert.IsType(t, tt.want, d)
		})
	}

	_, err := NewDetector(config.ClusteringConfig{Algorithm: "kmeans"})
	assert.Error(t, err)
}

func TestNewDetector_LPAIterations(t *testing.T) {
	d, err := NewDetector(config.ClusteringConfig{Algorithm: "lpa", MaxIterations: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, d.(*LabelPropagationDetector).MaxIterations)
}
