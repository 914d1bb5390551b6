package visibility

import (
	"github.com/agenthands/kinship/internal/core/model"
)

// RelatedTargets returns the targets reached from a disabled source whose every
// inbound link comes from a disabled source. Targets are returned in the order
// they first appear among disabled-sourced links.
func RelatedTargets(links []model.Link, disabled []string) []string {
	off := toSet(disabled)

	var candidates []string
	seen := make(map[string]bool)
	for _, l := range links {
		if _, ok := off[l.Source]; !ok || seen[l.Target] {
			continue
		}
		seen[l.Target] = true
		candidates = append(candidates, l.Target)
	}

	// one pass over all links marks targets that still have a live source
	live := make(map[string]bool)
	for _, l := range links {
		if !seen[l.Target] {
			continue
		}
		if _, ok := off[l.Source]; !ok {
			live[l.Target] = true
		}
	}

	result := []string{}
	for _, target := range candidates {
		if !live[target] {
			result = append(result, target)
		}
	}
	return result
}

// Toggle flips membership of ids in the disabled set: ids already disabled are
// re-enabled, the rest are appended. The result is never nil and holds each id once.
func Toggle(disabled []string, ids []string) []string {
	flip := toSet(ids)
	current := toSet(disabled)

	result := []string{}
	added := make(map[string]bool)
	for _, id := range disabled {
		if _, ok := flip[id]; ok || added[id] {
			continue
		}
		added[id] = true
		result = append(result, id)
	}
	for _, id := range ids {
		if _, ok := current[id]; ok || added[id] {
			continue
		}
		added[id] = true
		result = append(result, id)
	}
	return result
}

type State struct {
	Disabled    []string     `json:"disabled"`
	Related     []string     `json:"related"`
	HiddenNodes []string     `json:"hiddenNodes"`
	HiddenLinks []model.Link `json:"hiddenLinks"`
}

// Compute derives what a viewer hides for a disabled set: the disabled nodes,
// their related targets, and every link leaving a disabled node.
func Compute(links []model.Link, disabled []string) State {
	disabled = Toggle(disabled, nil)
	related := RelatedTargets(links, disabled)
	off := toSet(disabled)

	hiddenNodes := make([]string, 0, len(disabled)+len(related))
	hiddenNodes = append(hiddenNodes, disabled...)
	for _, id := range related {
		if _, ok := off[id]; !ok {
			hiddenNodes = append(hiddenNodes, id)
		}
	}

	hiddenLinks := []model.Link{}
	for _, l := range links {
		if _, ok := off[l.Source]; ok {
			hiddenLinks = append(hiddenLinks, l)
		}
	}

	return State{
		Disabled:    disabled,
		Related:     related,
		HiddenNodes: hiddenNodes,
		HiddenLinks: hiddenLinks,
	}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
