package family

import (
	"time"

	"github.com/dukerupert/familytree/internal/model"
)

func died(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}

// Sample returns the built-in family used when no registry file is
// configured.
func Sample() []model.FamilyMember {
	return []model.FamilyMember{
		{
			ID:          "john-sr",
			Name:        "John Smith Sr.",
			DateOfBirth: model.NewDate(1935, time.March, 15),
			DateOfDeath: died(2010, time.July, 22),
			Bio:         "Founder of the family legacy. A remarkable entrepreneur and loving grandfather.",
			Photo:       "/elder-man-portrait.jpg",
			Generation:  0,
			ParentIDs:   []string{},
			ChildrenIDs: []string{"john-jr", "mary"},
		},
		{
			ID:          "margaret",
			Name:        "Margaret Smith",
			DateOfBirth: model.NewDate(1937, time.June, 20),
			DateOfDeath: died(2015, time.November, 10),
			Bio:         "The heart of our family. Known for her warmth, wisdom, and delicious recipes.",
			Photo:       "/elder-woman-portrait.jpg",
			Generation:  0,
			ParentIDs:   []string{},
			ChildrenIDs: []string{"john-jr", "mary"},
		},
		{
			ID:          "john-jr",
			Name:        "John Smith Jr.",
			DateOfBirth: model.NewDate(1960, time.January, 10),
			Bio:         "Carried on the family business with innovation and heart.",
			Photo:       "/middle-aged-man-portrait.jpg",
			Generation:  1,
			ParentIDs:   []string{"john-sr", "margaret"},
			ChildrenIDs: []string{"sarah", "michael", "emma"},
		},
		{
			ID:          "mary",
			Name:        "Mary Johnson",
			DateOfBirth: model.NewDate(1963, time.August, 25),
			Bio:         "Artist and educator, brought creativity to the family.",
			Photo:       "/middle-aged-woman-portrait.png",
			Generation:  1,
			ParentIDs:   []string{"john-sr", "margaret"},
			ChildrenIDs: []string{"david", "susan"},
		},
		{
			ID:          "sarah",
			Name:        "Sarah Smith",
			DateOfBirth: model.NewDate(1985, time.May, 12),
			Bio:         "Medical professional dedicated to helping others.",
			Photo:       "/young-woman-portrait.png",
			Generation:  2,
			ParentIDs:   []string{"john-jr"},
			ChildrenIDs: []string{},
		},
		{
			ID:          "michael",
			Name:        "Michael Smith",
			DateOfBirth: model.NewDate(1988, time.September, 3),
			Bio:         "Software engineer and tech enthusiast exploring new frontiers.",
			Photo:       "/young-man-portrait.png",
			Generation:  2,
			ParentIDs:   []string{"john-jr"},
			ChildrenIDs: []string{"thomas"},
		},
		{
			ID:          "emma",
			Name:        "Emma Smith",
			DateOfBirth: model.NewDate(1992, time.February, 18),
			Bio:         "Musician and environmentalist passionate about sustainable living.",
			Photo:       "/young-woman-musician.jpg",
			Generation:  2,
			ParentIDs:   []string{"john-jr"},
			ChildrenIDs: []string{},
		},
		{
			ID:          "david",
			Name:        "David Johnson",
			DateOfBirth: model.NewDate(1987, time.November, 30),
			Bio:         "Architect designing beautiful spaces and buildings.",
			Photo:       "/young-man-architect.jpg",
			Generation:  2,
			ParentIDs:   []string{"mary"},
			ChildrenIDs: []string{},
		},
		{
			ID:          "susan",
			Name:        "Susan Johnson",
			DateOfBirth: model.NewDate(1990, time.April, 14),
			Bio:         "Teacher inspiring the next generation of minds.",
			Photo:       "/young-woman-teacher.jpg",
			Generation:  2,
			ParentIDs:   []string{"mary"},
			ChildrenIDs: []string{},
		},
		{
			ID:          "thomas",
			Name:        "Thomas Smith",
			DateOfBirth: model.NewDate(2015, time.August, 22),
			Bio:         "The newest member of our family, full of joy and promise.",
			Photo:       "/young-child-portrait.jpg",
			Generation:  3,
			ParentIDs:   []string{"michael"},
			ChildrenIDs: []string{},
		},
	}
}
