package community

import (
	"fmt"
	"strconv"

	"github.com/agenthands/kinship/internal/core/model"
)

// Clusterize partitions the graph with detector and turns each community into
// a Cluster. Colours come from the palette by enumeration order, independently
// of the colours given to surname nodes at assembly time.
func Clusterize(nodes []model.Node, links []model.Link, detector Detector) ([]model.Cluster, error) {
	if len(nodes) == 0 {
		return []model.Cluster{}, nil
	}

	communities, err := detector.Detect(nodes, links)
	if err != nil {
		return nil, fmt.Errorf("failed to detect communities: %w", err)
	}

	clusters := make([]model.Cluster, 0, len(communities))
	for i, members := range communities {
		c := model.Cluster{
			ID:       strconv.Itoa(i),
			Color:    model.ColorOr(model.PaletteColor(i)),
			Surnames: []model.Node{},
			Persons:  []model.Node{},
		}
		for _, n := range members {
			if n.Type == model.NodeTypePerson {
				c.Persons = append(c.Persons, n)
			} else {
				c.Surnames = append(c.Surnames, n)
			}
		}
		clusters = append(clusters, c)
	}

	return clusters, nil
}

// ColorByCluster returns a copy of nodes in which every node carries the colour
// of the cluster that owns it. The input is not modified.
func ColorByCluster(nodes []model.Node, clusters []model.Cluster) []model.Node {
	owner := make(map[string]string)
	for _, c := range clusters {
		for _, n := range c.Surnames {
			owner[n.ID] = c.Color
		}
		for _, n := range c.Persons {
			owner[n.ID] = c.Color
		}
	}

	result := make([]model.Node, len(nodes))
	for i, n := range nodes {
		n.Color = model.ColorOr(owner[n.ID])
		result[i] = n
	}
	return result
}
