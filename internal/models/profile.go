package models

import "strings"

// Profile is the structured record extracted from an uploaded CV.
// Email and Phone are optional; every other scalar may still arrive blank
// from the model and is defaulted at render time.
type Profile struct {
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          *string      `json:"email"`
	Phone          *string      `json:"phone"`
	Summary        string       `json:"summary"`
	Skills         []string     `json:"skills"`
	WorkExperience []Experience `json:"work_experience"`
	Education      []Education  `json:"education"`
}

type Experience struct {
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

type Education struct {
	School string `json:"school"`
	Dates  string `json:"dates"`
	Degree string `json:"degree"`
}

// FullName joins first and last name with a single space, dropping the
// separator when either side is blank.
func (p Profile) FullName() string {
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	return strings.TrimSpace(first + " " + last)
}

// Normalize replaces nil slices with empty ones and blank optional pointers
// with nil so callers only ever test one representation of "missing".
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.WorkExperience == nil {
		p.WorkExperience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	p.Email = blankToNil(p.Email)
	p.Phone = blankToNil(p.Phone)

	skills := p.Skills[:0]
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	p.Skills = skills
}

// Valid reports whether the profile carries the fields a stored record
// requires.
func (p Profile) Valid() bool {
	return p.FullName() != ""
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// StringPtr is a small helper for building optional fields.
func StringPtr(s string) *string {
	return &s
}
