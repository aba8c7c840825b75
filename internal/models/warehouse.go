package models

// WarehouseEntry is a stored profile as returned by the warehouse. List
// responses only fill the summary fields; detail responses carry the full
// profile.
type WarehouseEntry struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Profile
}

// DisplayName is the name shown in lists and confirmation prompts.
func (e WarehouseEntry) DisplayName() string {
	if name := e.FullName(); name != "" {
		return name
	}
	return e.Filename
}

// MatchResult is one candidate returned by the AI-assisted search.
type MatchResult struct {
	ID          string  `json:"id"`
	Filename    string  `json:"filename"`
	CV          Profile `json:"cv"`
	MatchReason string  `json:"match_reason"`
	MatchScore  int     `json:"match_score"`
}

// ClampScore keeps a score inside the 0..100 range advertised to clients.
func ClampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
