package assembly

import (
	"slices"

	"github.com/agenthands/kinship/internal/core/model"
)

// GroupBySurname returns one group per distinct surname listed by any match,
// holding every match that lists it. Groups are ordered by descending size;
// ties keep the order in which surnames were first encountered.
func GroupBySurname(matches []model.ShortMatch) []model.SurnameGroup {
	index := make(map[string]int)
	var groups []model.SurnameGroup
	var lastMatch []int // per group: input index of the last match added

	for mi, m := range matches {
		for _, surname := range m.Surnames {
			gi, ok := index[surname]
			if !ok {
				gi = len(groups)
				index[surname] = gi
				groups = append(groups, model.SurnameGroup{Surname: surname})
				lastMatch = append(lastMatch, -1)
			}
			// a match listing the same surname twice belongs to the group once
			if lastMatch[gi] == mi {
				continue
			}
			lastMatch[gi] = mi
			groups[gi].Matches = append(groups[gi].Matches, m)
		}
	}

	slices.SortStableFunc(groups, func(a, b model.SurnameGroup) int {
		return len(b.Matches) - len(a.Matches)
	})

	return groups
}
