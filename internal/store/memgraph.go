package store

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/kinship/internal/core/model"
	"github.com/agenthands/kinship/internal/driver"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MemgraphStore keeps matches as (:Match) nodes and the surname graph as
// (:GraphNode)-[:LINKS]->(:GraphNode). Every row carries an ord property
// holding its position in the last replace.
type MemgraphStore struct {
	Driver driver.GraphDriver
}

func NewMemgraphStore(d driver.GraphDriver) *MemgraphStore {
	return &MemgraphStore{Driver: d}
}

func (s *MemgraphStore) ListMatches(ctx context.Context) ([]model.MatchRecord, error) {
	return s.queryMatches(ctx, driver.ListMatchesQuery, nil)
}

func (s *MemgraphStore) FindMatchesByName(ctx context.Context, name string) ([]model.MatchRecord, error) {
	return s.queryMatches(ctx, driver.FindMatchesByNameQuery, map[string]interface{}{"name": name})
}

func (s *MemgraphStore) FindMatchesBySurname(ctx context.Context, surname string) ([]model.MatchRecord, error) {
	return s.queryMatches(ctx, driver.FindMatchesBySurnameQuery, map[string]interface{}{"surname": surname})
}

func (s *MemgraphStore) queryMatches(ctx context.Context, query string, params map[string]interface{}) ([]model.MatchRecord, error) {
	res, err := s.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}

	matches := make([]model.MatchRecord, 0, len(res.Records))
	for _, rec := range res.Records {
		v, _ := rec.Get("m")
		node, ok := v.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected match value %T", v)
		}
		matches = append(matches, matchFromProps(node.Props))
	}
	return matches, nil
}

func (s *MemgraphStore) ListNodes(ctx context.Context) ([]model.Node, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.ListNodesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	nodes := make([]model.Node, 0, len(res.Records))
	for _, rec := range res.Records {
		id, _ := rec.Get("id")
		nodeType, _ := rec.Get("type")
		length, _ := rec.Get("length")
		color, _ := rec.Get("color")
		nodes = append(nodes, model.Node{
			ID:     asString(id),
			Type:   model.NodeType(asString(nodeType)),
			Length: int(asInt(length)),
			Color:  asString(color),
		})
	}
	return nodes, nil
}

func (s *MemgraphStore) ListLinks(ctx context.Context) ([]model.Link, error) {
	res, err := s.Driver.ExecuteQuery(ctx, driver.ListLinksQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	links := make([]model.Link, 0, len(res.Records))
	for _, rec := range res.Records {
		source, _ := rec.Get("source")
		target, _ := rec.Get("target")
		links = append(links, model.Link{Source: asString(source), Target: asString(target)})
	}
	return links, nil
}

func (s *MemgraphStore) ReplaceAllMatches(ctx context.Context, matches []model.MatchRecord) error {
	rows := make([]map[string]interface{}, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, matchToProps(i, m))
	}

	if _, err := s.Driver.ExecuteQuery(ctx, driver.ReplaceMatchesQuery, map[string]interface{}{"matches": rows}); err != nil {
		return fmt.Errorf("failed to replace matches: %w", err)
	}
	return nil
}

func (s *MemgraphStore) ReplaceAllNodes(ctx context.Context, nodes []model.Node) error {
	rows := make([]map[string]interface{}, 0, len(nodes))
	for i, n := range nodes {
		row := map[string]interface{}{
			"ord":  i,
			"id":   n.ID,
			"type": string(n.Type),
		}
		if n.Length != 0 {
			row["length"] = n.Length
		}
		if n.Color != "" {
			row["color"] = n.Color
		}
		rows = append(rows, row)
	}

	if _, err := s.Driver.ExecuteQuery(ctx, driver.ReplaceNodesQuery, map[string]interface{}{"nodes": rows}); err != nil {
		return fmt.Errorf("failed to replace nodes: %w", err)
	}
	return nil
}

func (s *MemgraphStore) ReplaceAllLinks(ctx context.Context, links []model.Link) error {
	rows := make([]map[string]interface{}, 0, len(links))
	for i, l := range links {
		rows = append(rows, map[string]interface{}{
			"ord":    i,
			"source": l.Source,
			"target": l.Target,
		})
	}

	if _, err := s.Driver.ExecuteQuery(ctx, driver.ReplaceLinksQuery, map[string]interface{}{"links": rows}); err != nil {
		return fmt.Errorf("failed to replace links: %w", err)
	}
	return nil
}

func (s *MemgraphStore) BuildIndices(ctx context.Context) error {
	return s.Driver.BuildIndices(ctx)
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func matchToProps(ord int, m model.MatchRecord) map[string]interface{} {
	props := map[string]interface{}{
		"ord":                     ord,
		"id":                      m.ID,
		"matchID":                 m.MatchID,
		"name":                    m.Name,
		"age":                     m.Age,
		"country":                 m.Country,
		"contactUrl":              m.ContactURL,
		"managedByName":           m.ManagedByName,
		"status":                  m.Status,
		"possibleRelationships":   m.PossibleRelationships,
		"totalCmShared":           m.TotalCMShared,
		"percentDnaShared":        m.PercentDNAShared,
		"sharedSegments":          m.SharedSegments,
		"largestSegmentCm":        m.LargestSegmentCM,
		"hasFamilyTree":           m.HasFamilyTree,
		"treeManagedBy":           m.TreeManagedBy,
		"treeUrl":                 m.TreeURL,
		"sharedAncestralSurnames": m.SharedAncestralSurnames,
		"allAncestralSurnames":    m.AllAncestralSurnames,
		"createdAt":               m.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updatedAt":               m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if m.IndividualsInTree != nil {
		props["individualsInTree"] = *m.IndividualsInTree
	}
	return props
}

func matchFromProps(props map[string]any) model.MatchRecord {
	m := model.MatchRecord{
		ID:                      asString(props["id"]),
		MatchID:                 asString(props["matchID"]),
		Name:                    asString(props["name"]),
		Age:                     asString(props["age"]),
		Country:                 asString(props["country"]),
		ContactURL:              asString(props["contactUrl"]),
		ManagedByName:           asString(props["managedByName"]),
		Status:                  asString(props["status"]),
		PossibleRelationships:   asString(props["possibleRelationships"]),
		TotalCMShared:           asFloat(props["totalCmShared"]),
		PercentDNAShared:        asFloat(props["percentDnaShared"]),
		SharedSegments:          int(asInt(props["sharedSegments"])),
		LargestSegmentCM:        asFloat(props["largestSegmentCm"]),
		TreeManagedBy:           asString(props["treeManagedBy"]),
		TreeURL:                 asString(props["treeUrl"]),
		SharedAncestralSurnames: asString(props["sharedAncestralSurnames"]),
		AllAncestralSurnames:    asString(props["allAncestralSurnames"]),
		CreatedAt:               asTime(props["createdAt"]),
		UpdatedAt:               asTime(props["updatedAt"]),
	}
	m.HasFamilyTree, _ = props["hasFamilyTree"].(bool)
	if v, ok := props["individualsInTree"]; ok && v != nil {
		n := int(asInt(v))
		m.IndividualsInTree = &n
	}
	return m
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asTime(v any) time.Time {
	t, err := time.Parse(time.RFC3339Nano, asString(v))
	if err != nil {
		return time.Time{}
	}
	return t
}
