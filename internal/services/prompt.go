package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/cv-warehouse/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const analysisInstructions = `You are an expert HR and recruitment AI. Your task is to analyze the uploaded document.

First, determine if the document is a Curriculum Vitae (CV) or Resume.

If it is NOT a CV (e.g., a recipe, invoice, generic article, or empty file), set "is_cv" to false and provide a "rejection_reason".

If it IS a CV, set "is_cv" to true and extract the following information:

- first_name: Candidate's first name.
- last_name: Candidate's last name.
- email: Email address (if available).
- phone: Phone number (if available).
- summary: A brief professional summary of the candidate's skills and experience (max 3 sentences).
- skills: A list of technical skills, technologies, and relevant soft skills.
- work_experience: A list of previous jobs, each with company, dates (e.g., "Jan 2020 - Present"), role and description.
- education: A list of educational background, each with school, dates and degree.

Output strictly valid JSON matching this schema:
{
  "is_cv": boolean,
  "rejection_reason": string or null,
  "cv_data": {
    "first_name": "string",
    "last_name": "string",
    "email": "string or null",
    "phone": "string or null",
    "summary": "string",
    "skills": ["string"],
    "work_experience": [{"company": "string", "dates": "string", "role": "string", "description": "string"}],
    "education": [{"school": "string", "dates": "string", "degree": "string"}]
  }
}`

const smartSearchInstructions = `You are an expert HR and recruitment AI. Your task is to analyze the candidates.
Usually the question is about a technical role, like a Software Engineer, a Data Scientist or a Machine Learning Engineer.
It may also name the level of the role, like Junior, Mid-level or Senior.
Read all the CVs and decide which ones are the best fit for the question.
For the position, rely mostly on the skills and the current or past roles.
For the seniority, rely on the years of experience in that role.`

// BuildAnalysisPrompt creates the extraction prompt. documentText is empty
// when the document itself is attached as a binary part.
func (pb *PromptBuilder) BuildAnalysisPrompt(documentText string) string {
	if documentText == "" {
		return analysisInstructions
	}
	return fmt.Sprintf("%s\n\nDOCUMENT:\n%s", analysisInstructions, documentText)
}

// candidateBrief is the token-lean projection of a profile sent to the ranker.
type candidateBrief struct {
	ID         string   `json:"id"`
	Filename   string   `json:"filename"`
	Name       string   `json:"name"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
}

// BuildSmartSearchPrompt creates the ranking prompt over the given candidates.
func (pb *PromptBuilder) BuildSmartSearchPrompt(query string, candidates []models.WarehouseEntry) (string, error) {
	briefs := make([]candidateBrief, 0, len(candidates))
	for _, c := range candidates {
		brief := candidateBrief{
			ID:       c.ID,
			Filename: c.Filename,
			Name:     c.FullName(),
			Summary:  c.Summary,
			Skills:   c.Skills,
		}
		for _, exp := range c.WorkExperience {
			brief.Experience = append(brief.Experience, fmt.Sprintf("%s at %s", exp.Role, exp.Company))
		}
		for _, edu := range c.Education {
			brief.Education = append(brief.Education, fmt.Sprintf("%s in %s", edu.Degree, edu.School))
		}
		briefs = append(briefs, brief)
	}

	list, err := json.MarshalIndent(briefs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates: %w", err)
	}

	return fmt.Sprintf(`You are an expert technical recruiter helper.

System Instructions: %s

User Query: %q

Below is a list of Candidate CVs in JSON format:
%s

Evaluation Task:
1. Analyze the User Query to understand the requirements (skills, experience level, domain, etc.).
2. Review each candidate against these requirements.
3. Select ONLY the candidates that are a GOOD match (ignore irrelevant ones).
4. For each selected candidate, provide a "match_score" (1-100) and a "match_reason" explaining why they fit.

Output JSON format:
{
  "results": [
    {"cv_id": "id_from_list", "match_reason": "Explanation...", "match_score": 85}
  ]
}

If no candidates match, return "results": [].`, smartSearchInstructions, query, list), nil
}

// ProfileDocument is the text embedded into the profile index for one entry.
func ProfileDocument(p models.Profile) string {
	var b strings.Builder
	b.WriteString(p.FullName())
	b.WriteString("\n")
	b.WriteString(p.Summary)
	if len(p.Skills) > 0 {
		b.WriteString("\nSkills: ")
		b.WriteString(strings.Join(p.Skills, ", "))
	}
	for _, exp := range p.WorkExperience {
		fmt.Fprintf(&b, "\n%s at %s (%s): %s", exp.Role, exp.Company, exp.Dates, exp.Description)
	}
	for _, edu := range p.Education {
		fmt.Fprintf(&b, "\n%s, %s (%s)", edu.Degree, edu.School, edu.Dates)
	}
	return b.String()
}
