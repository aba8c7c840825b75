package views

import (
	"strings"

	"alfredoptarigan/cv-warehouse/internal/models"
)

const (
	NotAvailable = "N/A"
	NoneListed   = "None listed"
)

// ProfileView is the render-ready projection of a profile. Every field is
// filled: blanks become NotAvailable and empty lists carry a NoneListed note.
type ProfileView struct {
	Name    string
	Email   string
	Phone   string
	Summary string

	Skills     []string
	SkillsNote string

	Experience     []ExperienceView
	ExperienceNote string

	Education     []EducationView
	EducationNote string
}

type ExperienceView struct {
	Role        string
	Dates       string
	Company     string
	Description string
}

type EducationView struct {
	Degree string
	Dates  string
	School string
}

func NewProfileView(p models.Profile) ProfileView {
	v := ProfileView{
		Name:    orNA(p.FullName()),
		Email:   orNA(deref(p.Email)),
		Phone:   orNA(deref(p.Phone)),
		Summary: orNA(p.Summary),
	}

	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			v.Skills = append(v.Skills, s)
		}
	}
	if len(v.Skills) == 0 {
		v.SkillsNote = NoneListed
	}

	for _, exp := range p.WorkExperience {
		v.Experience = append(v.Experience, ExperienceView{
			Role:        orNA(exp.Role),
			Dates:       orNA(exp.Dates),
			Company:     orNA(exp.Company),
			Description: orNA(exp.Description),
		})
	}
	if len(v.Experience) == 0 {
		v.ExperienceNote = NoneListed
	}

	for _, edu := range p.Education {
		v.Education = append(v.Education, EducationView{
			Degree: orNA(edu.Degree),
			Dates:  orNA(edu.Dates),
			School: orNA(edu.School),
		})
	}
	if len(v.Education) == 0 {
		v.EducationNote = NoneListed
	}

	return v
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotAvailable
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
