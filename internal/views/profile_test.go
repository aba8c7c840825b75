package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-warehouse/internal/models"
)

func TestNewProfileViewPlaceholders(t *testing.T) {
	v := NewProfileView(models.Profile{FirstName: "Ada"})

	assert.Equal(t, "Ada", v.Name)
	assert.Equal(t, NotAvailable, v.Email)
	assert.Equal(t, NotAvailable, v.Phone)
	assert.Equal(t, NotAvailable, v.Summary)
	assert.Empty(t, v.Skills)
	assert.Equal(t, NoneListed, v.SkillsNote)
	assert.Equal(t, NoneListed, v.ExperienceNote)
	assert.Equal(t, NoneListed, v.EducationNote)
}

func TestNewProfileViewBlankEmailIsNotAvailable(t *testing.T) {
	v := NewProfileView(models.Profile{FirstName: "Ada", LastName: "Lovelace", Email: models.StringPtr("  ")})

	assert.Equal(t, "Ada Lovelace", v.Name)
	assert.Equal(t, NotAvailable, v.Email)
}

func TestNewProfileViewNameTrimming(t *testing.T) {
	assert.Equal(t, "Lovelace", NewProfileView(models.Profile{LastName: "Lovelace"}).Name)
	assert.Equal(t, NotAvailable, NewProfileView(models.Profile{FirstName: " "}).Name)
}

func TestNewProfileViewTimelines(t *testing.T) {
	v := NewProfileView(models.Profile{
		FirstName: "Grace",
		Skills:    []string{"COBOL", " "},
		WorkExperience: []models.Experience{
			{Role: "Rear Admiral", Dates: "1967 - 1986", Company: "US Navy"},
		},
		Education: []models.Education{{Degree: "PhD Mathematics", School: "Yale"}},
	})

	assert.Equal(t, []string{"COBOL"}, v.Skills)
	assert.Empty(t, v.SkillsNote)
	require.Len(t, v.Experience, 1)
	assert.Equal(t, NotAvailable, v.Experience[0].Description)
	require.Len(t, v.Education, 1)
	assert.Equal(t, NotAvailable, v.Education[0].Dates)
	assert.Empty(t, v.ExperienceNote)
	assert.Empty(t, v.EducationNote)
}

func TestRendererProfile(t *testing.T) {
	r := MustRenderer()

	html, err := r.Profile(models.Profile{FirstName: "Ada", LastName: "<Lovelace>"})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Ada &lt;Lovelace&gt;")
	assert.Contains(t, out, "Email: N/A")
	assert.Equal(t, 3, strings.Count(out, NoneListed))
}

func TestRendererDetailHasBackAction(t *testing.T) {
	r := MustRenderer()

	html, err := r.Detail(models.WarehouseEntry{ID: "42", Filename: "cv.pdf", Profile: models.Profile{FirstName: "Ada"}})
	require.NoError(t, err)

	assert.Contains(t, string(html), `data-action="back"`)
	assert.Contains(t, string(html), "cv.pdf")
}
