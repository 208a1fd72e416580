package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, encoded as YYYY-MM-DD
// in both JSON and YAML.
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) Year() int { return d.t.Year() }
func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) String() string { return d.t.Format(dateLayout) }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FamilyMember is a single person in the registry. ParentIDs and ChildrenIDs
// reference other members by ID.
type FamilyMember struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	DateOfBirth Date     `json:"dateOfBirth" yaml:"dateOfBirth"`
	DateOfDeath *Date    `json:"dateOfDeath,omitempty" yaml:"dateOfDeath,omitempty"`
	Bio         string   `json:"bio" yaml:"bio"`
	Photo       string   `json:"photo,omitempty" yaml:"photo,omitempty"`
	Generation  int      `json:"generation" yaml:"generation"`
	ParentIDs   []string `json:"parentIds" yaml:"parentIds"`
	ChildrenIDs []string `json:"childrenIds" yaml:"childrenIds"`
}

// Living reports whether the member has no recorded date of death.
func (m FamilyMember) Living() bool {
	return m.DateOfDeath == nil
}

// Lifespan renders the birth and death years, e.g. "1935 - 2010" or
// "1960 - Present".
func (m FamilyMember) Lifespan() string {
	if m.DateOfDeath == nil {
		return fmt.Sprintf("%d - Present", m.DateOfBirth.Year())
	}
	return fmt.Sprintf("%d - %d", m.DateOfBirth.Year(), m.DateOfDeath.Year())
}
