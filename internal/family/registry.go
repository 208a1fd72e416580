// Package family holds the immutable member registry and the queries built
// on it: relationship resolution, generation grouping and search.
package family

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dukerupert/familytree/internal/model"
)

// ErrInvalidRegistry is wrapped by every error New returns.
var ErrInvalidRegistry = errors.New("invalid family registry")

// IssueKind classifies a problem found while building a registry.
type IssueKind string

const (
	IssueMissingID          IssueKind = "missing_id"
	IssueDuplicateID        IssueKind = "duplicate_id"
	IssueNegativeGeneration IssueKind = "negative_generation"
	IssueDanglingParent     IssueKind = "dangling_parent"
	IssueDanglingChild      IssueKind = "dangling_child"
	IssueAsymmetricLink     IssueKind = "asymmetric_link"
	IssueGenerationSkew     IssueKind = "generation_skew"
	IssueMissingBirthDate   IssueKind = "missing_birth_date"
	IssueDeathBeforeBirth   IssueKind = "death_before_birth"
)

// Issue describes one integrity problem. RefID is the referenced member, if any.
type Issue struct {
	Kind     IssueKind
	MemberID string
	RefID    string
}

func (i Issue) Error() string {
	if i.RefID == "" {
		return fmt.Sprintf("%s: member %q", i.Kind, i.MemberID)
	}
	return fmt.Sprintf("%s: member %q -> %q", i.Kind, i.MemberID, i.RefID)
}

type options struct {
	allowDangling bool
}

type Option func(*options)

// AllowDangling downgrades unresolvable parent and child references from
// errors to warnings. Queries then drop them silently.
func AllowDangling() Option {
	return func(o *options) {
		o.allowDangling = true
	}
}

// Registry is an immutable, validated set of family members. It is safe
// for concurrent use.
type Registry struct {
	members  []model.FamilyMember
	index    map[string]int
	byParent map[string][]int
	names    []string
	bios     []string
	issues   []Issue
}

// New validates members and builds the lookup indexes once. Duplicate or
// missing IDs, missing birth dates, negative generations and dangling
// references are errors. Asymmetric parent/child links, generation skew and
// deaths dated before birth are recorded as warnings and returned by Issues.
func New(members []model.FamilyMember, opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		members:  make([]model.FamilyMember, len(members)),
		index:    make(map[string]int, len(members)),
		byParent: make(map[string][]int),
		names:    make([]string, len(members)),
		bios:     make([]string, len(members)),
	}

	var errs []error
	for i, m := range members {
		r.members[i] = clone(m)
		r.names[i] = strings.ToLower(m.Name)
		r.bios[i] = strings.ToLower(m.Bio)

		switch {
		case m.ID == "":
			errs = append(errs, Issue{Kind: IssueMissingID, MemberID: m.Name})
			continue
		case m.Generation < 0:
			errs = append(errs, Issue{Kind: IssueNegativeGeneration, MemberID: m.ID})
		}
		if m.DateOfBirth.IsZero() {
			errs = append(errs, Issue{Kind: IssueMissingBirthDate, MemberID: m.ID})
		} else if m.DateOfDeath != nil && m.DateOfDeath.Time().Before(m.DateOfBirth.Time()) {
			r.issues = append(r.issues, Issue{Kind: IssueDeathBeforeBirth, MemberID: m.ID})
		}
		if _, dup := r.index[m.ID]; dup {
			errs = append(errs, Issue{Kind: IssueDuplicateID, MemberID: m.ID})
			continue
		}
		r.index[m.ID] = i
	}

	for i, m := range r.members {
		for _, pid := range m.ParentIDs {
			if !slices.Contains(r.byParent[pid], i) {
				r.byParent[pid] = append(r.byParent[pid], i)
			}
		}
	}

	for _, m := range r.members {
		if m.ID == "" {
			continue
		}
		for _, pid := range m.ParentIDs {
			pi, ok := r.index[pid]
			if !ok {
				errs = r.dangling(errs, o, Issue{Kind: IssueDanglingParent, MemberID: m.ID, RefID: pid})
				continue
			}
			parent := r.members[pi]
			if !slices.Contains(parent.ChildrenIDs, m.ID) {
				r.issues = append(r.issues, Issue{Kind: IssueAsymmetricLink, MemberID: pid, RefID: m.ID})
			}
			if parent.Generation+1 != m.Generation {
				r.issues = append(r.issues, Issue{Kind: IssueGenerationSkew, MemberID: pid, RefID: m.ID})
			}
		}
		for _, cid := range m.ChildrenIDs {
			ci, ok := r.index[cid]
			if !ok {
				errs = r.dangling(errs, o, Issue{Kind: IssueDanglingChild, MemberID: m.ID, RefID: cid})
				continue
			}
			if !slices.Contains(r.members[ci].ParentIDs, m.ID) {
				r.issues = append(r.issues, Issue{Kind: IssueAsymmetricLink, MemberID: m.ID, RefID: cid})
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistry, errors.Join(errs...))
	}
	return r, nil
}

func (r *Registry) dangling(errs []error, o options, issue Issue) []error {
	if o.allowDangling {
		r.issues = append(r.issues, issue)
		return errs
	}
	return append(errs, issue)
}

// Issues returns the non-fatal integrity warnings found by New.
func (r *Registry) Issues() []Issue {
	return slices.Clone(r.issues)
}

// Len returns the number of members.
func (r *Registry) Len() int {
	return len(r.members)
}

// ByID returns the member with the given ID. A miss is reported through
// the boolean, never as an error.
func (r *Registry) ByID(id string) (model.FamilyMember, bool) {
	i, ok := r.index[id]
	if !ok {
		return model.FamilyMember{}, false
	}
	return clone(r.members[i]), true
}

// ByGeneration returns the members of generation n in registry order.
func (r *Registry) ByGeneration(n int) []model.FamilyMember {
	var out []model.FamilyMember
	for _, m := range r.members {
		if m.Generation == n {
			out = append(out, clone(m))
		}
	}
	return out
}

// All returns every member in registry order.
func (r *Registry) All() []model.FamilyMember {
	out := make([]model.FamilyMember, len(r.members))
	for i, m := range r.members {
		out[i] = clone(m)
	}
	return out
}

// Generations returns the distinct generation numbers in ascending order.
func (r *Registry) Generations() []int {
	var gens []int
	for _, m := range r.members {
		if !slices.Contains(gens, m.Generation) {
			gens = append(gens, m.Generation)
		}
	}
	slices.Sort(gens)
	return gens
}

func (r *Registry) resolve(ids []string) []model.FamilyMember {
	var out []model.FamilyMember
	for _, id := range ids {
		if m, ok := r.ByID(id); ok {
			out = append(out, m)
		}
	}
	return out
}

func clone(m model.FamilyMember) model.FamilyMember {
	m.ParentIDs = append([]string{}, m.ParentIDs...)
	m.ChildrenIDs = append([]string{}, m.ChildrenIDs...)
	if m.DateOfDeath != nil {
		d := *m.DateOfDeath
		m.DateOfDeath = &d
	}
	return m
}
