package handler

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/familytree/internal/family"
	"github.com/dukerupert/familytree/internal/model"
)

const placeholderPhoto = "/placeholder.svg"

type MemberHandler struct {
	registry *family.Registry
}

func NewMemberHandler(r *family.Registry) *MemberHandler {
	return &MemberHandler{registry: r}
}

// memberView is a member with the fields a client renders directly.
type memberView struct {
	model.FamilyMember
	PhotoURL string `json:"photoUrl"`
	Lifespan string `json:"lifespan"`
	Living   bool   `json:"living"`
}

func toView(m model.FamilyMember) memberView {
	photo := m.Photo
	if photo == "" {
		photo = placeholderPhoto
	}
	return memberView{
		FamilyMember: m,
		PhotoURL:     photo,
		Lifespan:     m.Lifespan(),
		Living:       m.Living(),
	}
}

func toViews(members []model.FamilyMember) []memberView {
	views := make([]memberView, len(members))
	for i, m := range members {
		views[i] = toView(m)
	}
	return views
}

// List returns every member, or one generation when ?generation=n is given.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members := h.registry.All()
	if g := r.URL.Query().Get("generation"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "generation must be a non-negative integer")
			return
		}
		members = h.registry.ByGeneration(n)
	}
	writeJSON(w, http.StatusOK, toViews(members))
}

type memberDetail struct {
	Member          memberView   `json:"member"`
	GenerationLabel string       `json:"generationLabel"`
	Parents         []memberView `json:"parents"`
	Siblings        []memberView `json:"siblings"`
	Children        []memberView `json:"children"`
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.registry.ByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	rel := h.registry.Relations(m)
	writeJSON(w, http.StatusOK, memberDetail{
		Member:          toView(m),
		GenerationLabel: family.GenerationLabel(m.Generation),
		Parents:         toViews(rel.Parents),
		Siblings:        toViews(rel.Siblings),
		Children:        toViews(rel.Children),
	})
}

type treeRow struct {
	Generation int          `json:"generation"`
	Label      string       `json:"label"`
	Offset     int          `json:"offset"`
	Members    []memberView `json:"members"`
}

// Tree returns the generation rows used to draw the family tree.
func (h *MemberHandler) Tree(w http.ResponseWriter, r *http.Request) {
	layout := h.registry.Layout()
	rows := make([]treeRow, len(layout))
	for i, g := range layout {
		rows[i] = treeRow{
			Generation: g.Generation,
			Label:      g.Label,
			Offset:     g.Offset,
			Members:    toViews(g.Members),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": rows})
}
