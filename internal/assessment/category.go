package assessment

// Category classifies a total score into one of five ordered bands.
type Category int

const (
	OverwhelmedNeedsSupport Category = iota // 0..6
	EmergingMindset                         // 7..12
	BalancedExplorer                        // 13..18
	ResilientBuilder                        // 19..24
	GrowthChampion                          // 25..30
)

var categoryLabels = [...]string{
	"Overwhelmed — Needs Support",
	"Emerging Mindset",
	"Balanced Explorer",
	"Resilient Builder",
	"Growth Champion",
}

func (c Category) String() string {
	if c < OverwhelmedNeedsSupport || c > GrowthChampion {
		return "Unknown"
	}
	return categoryLabels[c]
}

// MarshalJSON encodes the category as its label.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// CategoryFromScore maps a total score to its band. Thresholds are inclusive
// on the lower end and the highest matching lower bound wins.
func CategoryFromScore(score int) Category {
	switch {
	case score >= 25:
		return GrowthChampion
	case score >= 19:
		return ResilientBuilder
	case score >= 13:
		return BalancedExplorer
	case score >= 7:
		return EmergingMindset
	default:
		return OverwhelmedNeedsSupport
	}
}
