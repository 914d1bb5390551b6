package assembly

import (
	"strings"
	"unicode/utf8"

	"github.com/agenthands/kinship/internal/core/dedupe"
	"github.com/agenthands/kinship/internal/core/model"
)

// MinGroupSize is the exclusive lower bound on the number of matches a surname
// needs before it becomes a node. Smaller groups are treated as noise.
const MinGroupSize = 20

type Options struct {
	MinGroupSize int
}

func DefaultOptions() Options {
	return Options{MinGroupSize: MinGroupSize}
}

// ValidSurname rejects short strings and the "unknown" placeholder. It is also
// applied to person names.
func ValidSurname(s string) bool {
	return utf8.RuneCountInString(s) > 3 && strings.ToLower(s) != "unknown"
}

// Assemble turns match projections into the surname/person graph. Surname nodes
// come first, so a person whose name equals a tracked surname collapses into the
// surname node.
func Assemble(matches []model.ShortMatch, opts Options) model.Graph {
	return AssembleGroups(GroupBySurname(matches), opts)
}

// AssembleGroups builds the graph from groups already produced by GroupBySurname.
func AssembleGroups(all []model.SurnameGroup, opts Options) model.Graph {
	groups := qualifyingGroups(all, opts.MinGroupSize)

	nodes := make([]model.Node, 0, len(groups))
	for _, g := range groups {
		nodes = append(nodes, model.Node{
			ID:     g.Surname,
			Type:   model.NodeTypeSurname,
			Length: len(g.Matches),
		})
	}
	for _, g := range groups {
		for _, m := range g.Matches {
			nodes = append(nodes, model.Node{ID: m.Name, Type: model.NodeTypePerson})
		}
	}
	nodes = dedupe.Nodes(nodes)

	present := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		present[n.ID] = struct{}{}
	}

	var links []model.Link
	for _, g := range groups {
		if _, ok := present[g.Surname]; !ok {
			continue
		}
		for _, m := range g.Matches {
			links = append(links, model.Link{Source: g.Surname, Target: m.Name})
		}
	}
	links = dedupe.Links(links)

	colorSurnames(nodes)

	return model.Graph{Nodes: nodes, Links: links}
}

func qualifyingGroups(groups []model.SurnameGroup, minSize int) []model.SurnameGroup {
	var result []model.SurnameGroup
	for _, g := range groups {
		if len(g.Matches) <= minSize || !ValidSurname(g.Surname) {
			continue
		}

		members := make([]model.ShortMatch, 0, len(g.Matches))
		for _, m := range g.Matches {
			if !ValidSurname(m.Name) {
				continue
			}
			m.Surnames = validSurnames(m.Surnames)
			members = append(members, m)
		}
		result = append(result, model.SurnameGroup{Surname: g.Surname, Matches: members})
	}
	return result
}

func validSurnames(surnames []string) []string {
	result := make([]string, 0, len(surnames))
	for _, s := range surnames {
		if ValidSurname(s) {
			result = append(result, s)
		}
	}
	return result
}

// colorSurnames assigns palette entries to surname nodes in array order. Nodes
// past the end of the palette are left without a colour.
func colorSurnames(nodes []model.Node) {
	i := 0
	for k := range nodes {
		if !nodes[k].IsSurname() {
			continue
		}
		nodes[k].Color = model.PaletteColor(i)
		i++
	}
}
