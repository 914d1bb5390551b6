package community

import (
	"testing"

	"github.com/agenthands/kinship/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTriangles(bridge bool) ([]model.Node, []model.Link) {
	nodes := persons("1", "2", "3", "4", "5", "6")
	links := []model.Link{
		{Source: "1", Target: "2"}, {Source: "2", Target: "3"}, {Source: "3", Target: "1"},
		{Source: "4", Target: "5"}, {Source: "5", Target: "6"}, {Source: "6", Target: "4"},
	}
	if bridge {
		links = append(links, model.Link{Source: "3", Target: "4"})
	}
	return nodes, links
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	nodes, links := twoTriangles(false)

	communities, err := NewLabelPropagationDetector().Detect(nodes, links)
	require.NoError(t, err)

	require.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, ids(communities[0]))
	assert.Equal(t, []string{"4", "5", "6"}, ids(communities[1]))
}

func TestLPA_BridgeNode(t *testing.T) {
	// 3 and 4 each have two strong neighbours against one bridge neighbour.
	nodes, links := twoTriangles(true)

	communities, err := NewLabelPropagationDetector().Detect(nodes, links)
	require.NoError(t, err)

	require.Len(t, communities, 2)
	assert.Equal(t, []string{"1", "2", "3"}, ids(communities[0]))
	assert.Equal(t, []string{"4", "5", "6"}, ids(communities[1]))
}

func TestLPA_LargeClique(t *testing.T) {
	nodes := persons("1", "2", "3", "4", "5")
	var links []model.Link
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			links = append(links, model.Link{Source: nodes[i].ID, Target: nodes[j].ID})
		}
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, links)
	require.NoError(t, err)

	assert.Len(t, communities, 1)
	assert.Len(t, communities[0], 5)
}

func TestLPA_KeepsSingletons(t *testing.T) {
	nodes := persons("1", "2", "3")
	links := []model.Link{{Source: "1", Target: "2"}}

	communities, err := NewLabelPropagationDetector().Detect(nodes, links)
	require.NoError(t, err)

	assert.Len(t, communities, 2)
	assertPartition(t, nodes, communities)
}

func TestLPA_Empty(t *testing.T) {
	communities, err := NewLabelPropagationDetector().Detect(nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, communities)
}
