package views

// Band is the visual severity of an AI match score.
type Band string

const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// Severity maps a 0..100 match score onto its band.
func Severity(score int) Band {
	switch {
	case score >= 90:
		return BandStrong
	case score >= 70:
		return BandModerate
	default:
		return BandWeak
	}
}
