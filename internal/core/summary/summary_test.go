package summary

import (
	"testing"

	"github.com/agenthands/kinship/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() (model.Graph, []model.Cluster) {
	smith := model.Node{ID: "Smith", Type: model.NodeTypeSurname, Length: 2}
	jones := model.Node{ID: "Jones", Type: model.NodeTypeSurname, Length: 5}
	brown := model.Node{ID: "Brown", Type: model.NodeTypeSurname, Length: 3}
	alice := model.Node{ID: "Alice", Type: model.NodeTypePerson}
	bob := model.Node{ID: "Bob", Type: model.NodeTypePerson}

	g := model.Graph{
		Nodes: []model.Node{smith, jones, brown, alice, bob},
		Links: []model.Link{
			{Source: "Smith", Target: "Alice"},
			{Source: "Jones", Target: "Alice"},
			{Source: "Smith", Target: "Bob"},
		},
	}
	clusters := []model.Cluster{
		{ID: "0", Color: "#408080", Surnames: []model.Node{smith, jones, brown}, Persons: []model.Node{alice}},
		{ID: "1", Color: "#fe7f2d", Surnames: []model.Node{}, Persons: []model.Node{bob}},
	}
	return g, clusters
}

func TestDescribeNode_Surname(t *testing.T) {
	g, clusters := fixture()

	detail, err := NewSummarizer().DescribeNode(g, clusters, "Smith")
	require.NoError(t, err)

	assert.Equal(t, "Smith", detail.Node.ID)
	assert.Equal(t, "0", detail.ClusterID)
	assert.Equal(t, []string{"Alice", "Bob"}, detail.Targets)
	assert.Empty(t, detail.Sources)
}

func TestDescribeNode_Person(t *testing.T) {
	g, clusters := fixture()

	detail, err := NewSummarizer().DescribeNode(g, clusters, "Alice")
	require.NoError(t, err)

	assert.Equal(t, "0", detail.ClusterID)
	assert.Empty(t, detail.Targets)
	assert.Equal(t, []string{"Smith", "Jones"}, detail.Sources)

	detail, err = NewSummarizer().DescribeNode(g, clusters, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "1", detail.ClusterID)
}

func TestDescribeNode_NotFound(t *testing.T) {
	g, clusters := fixture()

	_, err := NewSummarizer().DescribeNode(g, clusters, "Nobody")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestSummarizeCluster(t *testing.T) {
	_, clusters := fixture()
	s := &Summarizer{TopSurnames: 2}

	summaries := s.SummarizeClusters(clusters)

	require.Len(t, summaries, 2)
	assert.Equal(t, ClusterSummary{
		ID:           "0",
		Color:        "#408080",
		SurnameCount: 3,
		PersonCount:  1,
		Size:         4,
		TopSurnames:  []string{"Jones", "Brown"},
	}, summaries[0])
	assert.Empty(t, summaries[1].TopSurnames)
	assert.Equal(t, 1, summaries[1].PersonCount)
	assert.Equal(t, 1, summaries[1].Size)
}
