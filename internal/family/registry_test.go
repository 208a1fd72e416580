package family

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/familytree/internal/model"
)

var dateComparer = cmp.Comparer(func(a, b model.Date) bool {
	return a.Time().Equal(b.Time())
})

func ids(members []model.FamilyMember) []string {
	out := []string{}
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func member(id string, gen int, parents, children []string) model.FamilyMember {
	return model.FamilyMember{
		ID:          id,
		Name:        id,
		DateOfBirth: model.NewDate(1950+gen*25, 1, 1),
		Generation:  gen,
		ParentIDs:   parents,
		ChildrenIDs: children,
	}
}

func newRegistry(t *testing.T, members []model.FamilyMember) *Registry {
	t.Helper()
	r, err := New(members)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(Sample())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}

func TestSampleIsClean(t *testing.T) {
	r := sampleRegistry(t)
	if r.Len() != 10 {
		t.Errorf("len = %d, want 10", r.Len())
	}
	if issues := r.Issues(); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestByIDRoundTrip(t *testing.T) {
	r := sampleRegistry(t)

	for _, want := range Sample() {
		got, ok := r.ByID(want.ID)
		if !ok {
			t.Fatalf("ByID(%q) not found", want.ID)
		}
		if diff := cmp.Diff(want, got, dateComparer); diff != "" {
			t.Errorf("ByID(%q) mismatch (-want +got):\n%s", want.ID, diff)
		}
	}
}

func TestByIDNotFound(t *testing.T) {
	r := sampleRegistry(t)

	if _, ok := r.ByID("nobody"); ok {
		t.Error("expected miss for unknown id")
	}
	if _, ok := r.ByID(""); ok {
		t.Error("expected miss for empty id")
	}
}

func TestByIDReturnsCopy(t *testing.T) {
	r := sampleRegistry(t)

	m, _ := r.ByID("john-jr")
	m.ChildrenIDs[0] = "mutated"
	m.Name = "mutated"

	again, _ := r.ByID("john-jr")
	if again.ChildrenIDs[0] != "sarah" {
		t.Errorf("children[0] = %q, registry was mutated", again.ChildrenIDs[0])
	}
	if again.Name != "John Smith Jr." {
		t.Errorf("name = %q, registry was mutated", again.Name)
	}
}

func TestByGeneration(t *testing.T) {
	r := sampleRegistry(t)

	tests := []struct {
		gen  int
		want []string
	}{
		{0, []string{"john-sr", "margaret"}},
		{1, []string{"john-jr", "mary"}},
		{2, []string{"sarah", "michael", "emma", "david", "susan"}},
		{3, []string{"thomas"}},
		{4, []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ids(r.ByGeneration(tt.gen))); diff != "" {
			t.Errorf("ByGeneration(%d) mismatch (-want +got):\n%s", tt.gen, diff)
		}
	}
}

func TestGenerations(t *testing.T) {
	r := sampleRegistry(t)

	if diff := cmp.Diff([]int{0, 1, 2, 3}, r.Generations()); diff != "" {
		t.Errorf("Generations mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsDuplicateID(t *testing.T) {
	members := []model.FamilyMember{
		member("a", 0, nil, nil),
		member("a", 0, nil, nil),
	}

	_, err := New(members)
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("err = %v, want ErrInvalidRegistry", err)
	}
	var issue Issue
	if !errors.As(err, &issue) {
		t.Fatalf("expected Issue in error chain, got %v", err)
	}
	if issue.Kind != IssueDuplicateID || issue.MemberID != "a" {
		t.Errorf("issue = %+v, want duplicate_id for a", issue)
	}
}

func TestNewRejectsMissingIDAndNegativeGeneration(t *testing.T) {
	members := []model.FamilyMember{
		{Name: "Nameless"},
		member("b", -1, nil, nil),
	}

	_, err := New(members)
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("err = %v, want ErrInvalidRegistry", err)
	}
	want := []error{
		Issue{Kind: IssueMissingID, MemberID: "Nameless"},
		Issue{Kind: IssueNegativeGeneration, MemberID: "b"},
	}
	for _, w := range want {
		if !errors.Is(err, w) {
			t.Errorf("expected %v in %v", w, err)
		}
	}
}

func TestNewRejectsDanglingReferences(t *testing.T) {
	members := []model.FamilyMember{
		member("a", 0, nil, []string{"ghost-child"}),
		member("b", 1, []string{"ghost-parent"}, nil),
	}

	_, err := New(members)
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("err = %v, want ErrInvalidRegistry", err)
	}
	for _, w := range []error{
		Issue{Kind: IssueDanglingChild, MemberID: "a", RefID: "ghost-child"},
		Issue{Kind: IssueDanglingParent, MemberID: "b", RefID: "ghost-parent"},
	} {
		if !errors.Is(err, w) {
			t.Errorf("expected %v in %v", w, err)
		}
	}
}

func TestAllowDanglingDropsUnresolved(t *testing.T) {
	members := []model.FamilyMember{
		member("p", 0, nil, []string{"c", "ghost"}),
		member("c", 1, []string{"p", "missing"}, nil),
	}

	r, err := New(members, AllowDangling())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	c, _ := r.ByID("c")
	if diff := cmp.Diff([]string{"p"}, ids(r.Parents(c))); diff != "" {
		t.Errorf("Parents mismatch (-want +got):\n%s", diff)
	}
	p, _ := r.ByID("p")
	if diff := cmp.Diff([]string{"c"}, ids(r.Children(p))); diff != "" {
		t.Errorf("Children mismatch (-want +got):\n%s", diff)
	}

	issues := r.Issues()
	if !slices.Contains(issues, Issue{Kind: IssueDanglingParent, MemberID: "c", RefID: "missing"}) {
		t.Errorf("expected dangling parent warning, got %v", issues)
	}
	if !slices.Contains(issues, Issue{Kind: IssueDanglingChild, MemberID: "p", RefID: "ghost"}) {
		t.Errorf("expected dangling child warning, got %v", issues)
	}
}

func TestNewReportsAsymmetryAndSkew(t *testing.T) {
	members := []model.FamilyMember{
		member("p", 0, nil, nil),
		member("c", 2, []string{"p"}, nil),
	}

	r, err := New(members)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	issues := r.Issues()
	if !slices.Contains(issues, Issue{Kind: IssueAsymmetricLink, MemberID: "p", RefID: "c"}) {
		t.Errorf("expected asymmetric link warning, got %v", issues)
	}
	if !slices.Contains(issues, Issue{Kind: IssueGenerationSkew, MemberID: "p", RefID: "c"}) {
		t.Errorf("expected generation skew warning, got %v", issues)
	}
}

func TestEmptyRegistry(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0", r.Len())
	}
	if got := r.Layout(); len(got) != 0 {
		t.Errorf("layout = %v, want empty", got)
	}
	if got := r.Featured(); len(got) != 0 {
		t.Errorf("featured = %v, want empty", got)
	}
}
