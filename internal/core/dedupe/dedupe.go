package dedupe

import (
	"github.com/agenthands/kinship/internal/core/model"
)

// Dedupe returns the items whose key has not been seen before, keeping the
// first occurrence and the original relative order. Keys must be comparable
// values built from primitive fields.
func Dedupe[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, item)
	}

	return result
}

// LinkPair is the composite key of a link.
type LinkPair struct {
	Target string
	Source string
}

func NodeKey(n model.Node) string {
	return n.ID
}

func LinkKey(l model.Link) LinkPair {
	return LinkPair{Target: l.Target, Source: l.Source}
}

func Nodes(nodes []model.Node) []model.Node {
	return Dedupe(nodes, NodeKey)
}

func Links(links []model.Link) []model.Link {
	return Dedupe(links, LinkKey)
}
