package community

import (
	"errors"
	"fmt"
	"testing"

	"github.com/agenthands/kinship/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDetector struct{}

func (failingDetector) Detect([]model.Node, []model.Link) ([][]model.Node, error) {
	return nil, errors.New("boom")
}

func TestClusterize(t *testing.T) {
	nodes := []model.Node{
		{ID: "Smith", Type: model.NodeTypeSurname, Length: 2, Color: model.Palette[0]},
		{ID: "Jones", Type: model.NodeTypeSurname, Length: 1, Color: model.Palette[1]},
		{ID: "Alice", Type: model.NodeTypePerson},
		{ID: "Bob", Type: model.NodeTypePerson},
		{ID: "Carol", Type: model.NodeTypePerson},
	}
	links := []model.Link{
		{Source: "Smith", Target: "Alice"},
		{Source: "Smith", Target: "Bob"},
		{Source: "Jones", Target: "Carol"},
	}

	clusters, err := Clusterize(nodes, links, &ComponentDetector{})
	require.NoError(t, err)

	require.Len(t, clusters, 2)
	assert.Equal(t, "0", clusters[0].ID)
	assert.Equal(t, model.Palette[0], clusters[0].Color)
	assert.Equal(t, []model.Node{nodes[0]}, clusters[0].Surnames)
	assert.Equal(t, []model.Node{nodes[2], nodes[3]}, clusters[0].Persons)

	assert.Equal(t, "1", clusters[1].ID)
	assert.Equal(t, model.Palette[1], clusters[1].Color)
	assert.Equal(t, []string{"Jones"}, ids(clusters[1].Surnames))
	assert.Equal(t, []string{"Carol"}, ids(clusters[1].Persons))
}

func TestClusterize_PartitionsAllNodes(t *testing.T) {
	nodes, links := starGraph(4, 6)

	clusters, err := Clusterize(nodes, links, NewLouvainDetector())
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, c := range clusters {
		for _, n := range c.Surnames {
			assert.Equal(t, model.NodeTypeSurname, n.Type)
			seen[n.ID]++
		}
		for _, n := range c.Persons {
			assert.Equal(t, model.NodeTypePerson, n.Type)
			seen[n.ID]++
		}
	}
	assert.Len(t, seen, len(nodes))
	for _, n := range nodes {
		assert.Equal(t, 1, seen[n.ID], "node %s", n.ID)
	}
}

func TestClusterize_PaletteFallback(t *testing.T) {
	var nodes []model.Node
	for i := 0; i < len(model.Palette)+1; i++ {
		nodes = append(nodes, model.Node{ID: fmt.Sprintf("P%02d", i), Type: model.NodeTypePerson})
	}

	clusters, err := Clusterize(nodes, nil, &ComponentDetector{})
	require.NoError(t, err)

	require.Len(t, clusters, len(model.Palette)+1)
	assert.Equal(t, model.FallbackColor, clusters[len(model.Palette)].Color)
}

func TestClusterize_Empty(t *testing.T) {
	clusters, err := Clusterize(nil, nil, NewLouvainDetector())
	require.NoError(t, err)
	assert.NotNil(t, clusters)
	assert.Empty(t, clusters)
}

func TestClusterize_DetectorError(t *testing.T) {
	_, err := Clusterize(persons("a"), nil, failingDetector{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestColorByCluster(t *testing.T) {
	nodes := []model.Node{
		{ID: "Smith", Type: model.NodeTypeSurname, Color: "#000000"},
		{ID: "Alice", Type: model.NodeTypePerson},
		{ID: "Orphan", Type: model.NodeTypePerson},
	}
	clusters := []model.Cluster{
		{ID: "0", Color: "#123456", Surnames: nodes[:1], Persons: nodes[1:2]},
	}

	colored := ColorByCluster(nodes, clusters)

	assert.Equal(t, "#123456", colored[0].Color)
	assert.Equal(t, "#123456", colored[1].Color)
	assert.Equal(t, model.FallbackColor, colored[2].Color)
	// read-side copy only
	assert.Equal(t, "#000000", nodes[0].Color)
	assert.Empty(t, nodes[1].Color)
}
