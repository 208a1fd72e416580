package family

import (
	"strings"

	"github.com/dukerupert/familytree/internal/model"
)

const (
	// SuggestionLimit caps the inline suggestion list.
	SuggestionLimit = 8

	featuredCount = 6
)

// IsBlank reports whether q is empty or only whitespace. Blank queries
// return no results; callers use this to show a prompt instead of a
// "no matches" state.
func IsBlank(q string) bool {
	return strings.TrimSpace(q) == ""
}

// Search returns every member whose name or bio contains q, ignoring case,
// in registry order.
func (r *Registry) Search(q string) []model.FamilyMember {
	return r.search(q, 0)
}

// Suggest is Search capped at SuggestionLimit results.
func (r *Registry) Suggest(q string) []model.FamilyMember {
	return r.search(q, SuggestionLimit)
}

// Featured returns the first members of the registry, shown alongside an
// empty search prompt.
func (r *Registry) Featured() []model.FamilyMember {
	n := min(featuredCount, len(r.members))
	out := make([]model.FamilyMember, n)
	for i := range n {
		out[i] = clone(r.members[i])
	}
	return out
}

func (r *Registry) search(q string, limit int) []model.FamilyMember {
	if IsBlank(q) {
		return nil
	}
	needle := strings.ToLower(q)

	var out []model.FamilyMember
	for i, m := range r.members {
		if limit > 0 && len(out) == limit {
			break
		}
		if strings.Contains(r.names[i], needle) || strings.Contains(r.bios[i], needle) {
			out = append(out, clone(m))
		}
	}
	return out
}
