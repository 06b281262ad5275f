package scoring

// Quadrant labels, following the classification framework's plot: the
// Service↔Research position on the x axis, Intelligence↔Resource on the y.
const (
	QuadrantResearchIntelligence = "research-intelligence"
	QuadrantServiceIntelligence  = "service-intelligence"
	QuadrantResearchResource     = "research-resource"
	QuadrantServiceResource      = "service-resource"
)

// Quadrant classifies a subject from its two axis positions. Positions of
// exactly zero count toward the positive pole side, so the mapping is
// total and deterministic.
func Quadrant(serviceResearch, intelligenceResource float64) string {
	research := serviceResearch >= 0
	intelligence := intelligenceResource >= 0

	switch {
	case research && intelligence:
		return QuadrantResearchIntelligence
	case intelligence:
		return QuadrantServiceIntelligence
	case research:
		return QuadrantResearchResource
	default:
		return QuadrantServiceResource
	}
}
