package summary

import (
	"errors"
	"fmt"
	"slices"

	"github.com/agenthands/kinship/internal/core/model"
)

var ErrNodeNotFound = errors.New("node not found")

// NodeDetail describes a node and its immediate neighbourhood.
type NodeDetail struct {
	Node      model.Node `json:"node"`
	ClusterID string     `json:"clusterId,omitempty"`
	Targets   []string   `json:"targets"`
	Sources   []string   `json:"sources"`
}

type ClusterSummary struct {
	ID           string   `json:"id"`
	Color        string   `json:"color"`
	SurnameCount int      `json:"surnameCount"`
	PersonCount  int      `json:"personCount"`
	Size         int      `json:"size"`
	TopSurnames  []string `json:"topSurnames"`
}

type Summarizer struct {
	TopSurnames int
}

func NewSummarizer() *Summarizer {
	return &Summarizer{
		TopSurnames: 5,
	}
}

func (s *Summarizer) DescribeNode(g model.Graph, clusters []model.Cluster, id string) (NodeDetail, error) {
	idx := slices.IndexFunc(g.Nodes, func(n model.Node) bool { return n.ID == id })
	if idx < 0 {
		return NodeDetail{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	node := g.Nodes[idx]

	detail := NodeDetail{
		Node:    node,
		Targets: []string{},
		Sources: []string{},
	}
	for _, l := range g.Links {
		if l.Source == id {
			detail.Targets = append(detail.Targets, l.Target)
		}
		if l.Target == id {
			detail.Sources = append(detail.Sources, l.Source)
		}
	}

	// persons are looked up among persons, surnames among surnames
	for _, c := range clusters {
		members := c.Surnames
		if node.Type == model.NodeTypePerson {
			members = c.Persons
		}
		if slices.ContainsFunc(members, func(n model.Node) bool { return n.ID == id }) {
			detail.ClusterID = c.ID
			break
		}
	}

	return detail, nil
}

// SummarizeCluster reports member counts and the largest surnames of a cluster.
func (s *Summarizer) SummarizeCluster(c model.Cluster) ClusterSummary {
	surnames := slices.Clone(c.Surnames)
	slices.SortStableFunc(surnames, func(a, b model.Node) int {
		return b.Length - a.Length
	})

	limit := min(s.TopSurnames, len(surnames))
	top := make([]string, 0, limit)
	for _, n := range surnames[:limit] {
		top = append(top, n.ID)
	}

	return ClusterSummary{
		ID:           c.ID,
		Color:        c.Color,
		SurnameCount: len(c.Surnames),
		PersonCount:  len(c.Persons),
		Size:         c.Size(),
		TopSurnames:  top,
	}
}

func (s *Summarizer) SummarizeClusters(clusters []model.Cluster) []ClusterSummary {
	result := make([]ClusterSummary, 0, len(clusters))
	for _, c := range clusters {
		result = append(result, s.SummarizeCluster(c))
	}
	return result
}
