package models

const DefaultRejectionReason = "Document is not recognized as a CV."

// AnalysisResponse is the payload of POST /analyze.
type AnalysisResponse struct {
	Filename        string   `json:"filename"`
	IsCV            bool     `json:"is_cv"`
	RejectionReason *string  `json:"rejection_reason"`
	CVData          *Profile `json:"cv_data"`
}

// Reason returns the rejection reason, falling back to the default text.
func (r AnalysisResponse) Reason() string {
	if r.RejectionReason == nil || *r.RejectionReason == "" {
		return DefaultRejectionReason
	}
	return *r.RejectionReason
}

type SmartSearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type SmartSearchResponse struct {
	Results []MatchResult `json:"results"`
}

// ErrorResponse is the failure body shared by every collaborator route.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
