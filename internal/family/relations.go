package family

import (
	"fmt"
	"slices"

	"github.com/dukerupert/familytree/internal/model"
)

// rowHeight is the vertical distance in pixels between generation rows in
// the tree layout.
const rowHeight = 200

// Relations groups the relatives of one member.
type Relations struct {
	Parents  []model.FamilyMember `json:"parents"`
	Siblings []model.FamilyMember `json:"siblings"`
	Children []model.FamilyMember `json:"children"`
}

// Parents resolves m.ParentIDs in order. References that do not resolve are
// dropped; repeated IDs are kept.
func (r *Registry) Parents(m model.FamilyMember) []model.FamilyMember {
	return r.resolve(m.ParentIDs)
}

// Children resolves m.ChildrenIDs with the same policy as Parents.
func (r *Registry) Children(m model.FamilyMember) []model.FamilyMember {
	return r.resolve(m.ChildrenIDs)
}

// Siblings returns every other member sharing at least one parent ID with m,
// in registry order. Half-siblings are included. A member without parents
// has no siblings.
func (r *Registry) Siblings(m model.FamilyMember) []model.FamilyMember {
	if len(m.ParentIDs) == 0 {
		return nil
	}

	var idx []int
	for _, pid := range m.ParentIDs {
		for _, i := range r.byParent[pid] {
			if r.members[i].ID != m.ID && !slices.Contains(idx, i) {
				idx = append(idx, i)
			}
		}
	}
	slices.Sort(idx)

	out := make([]model.FamilyMember, 0, len(idx))
	for _, i := range idx {
		out = append(out, clone(r.members[i]))
	}
	return out
}

// Relations resolves parents, siblings and children of m.
func (r *Registry) Relations(m model.FamilyMember) Relations {
	return Relations{
		Parents:  r.Parents(m),
		Siblings: r.Siblings(m),
		Children: r.Children(m),
	}
}

// GenerationLabel names a generation for display.
func GenerationLabel(n int) string {
	switch n {
	case 0:
		return "Founders"
	case 1:
		return "Children"
	case 2:
		return "Grandchildren"
	case 3:
		return "Great-Grandchildren"
	default:
		return fmt.Sprintf("Generation %d", n)
	}
}

// GenerationGroup is one row of the tree layout.
type GenerationGroup struct {
	Generation int                  `json:"generation"`
	Label      string               `json:"label"`
	Offset     int                  `json:"offset"`
	Members    []model.FamilyMember `json:"members"`
}

// Layout groups members into rows from generation 0 up to the highest
// generation present. Rows with no members are kept so offsets stay
// proportional to depth.
func (r *Registry) Layout() []GenerationGroup {
	gens := r.Generations()
	if len(gens) == 0 {
		return nil
	}
	last := gens[len(gens)-1]

	groups := make([]GenerationGroup, 0, last+1)
	for g := 0; g <= last; g++ {
		members := r.ByGeneration(g)
		if members == nil {
			members = []model.FamilyMember{}
		}
		groups = append(groups, GenerationGroup{
			Generation: g,
			Label:      GenerationLabel(g),
			Offset:     g * rowHeight,
			Members:    members,
		})
	}
	return groups
}
