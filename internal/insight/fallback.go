package insight

// fallbackTier is a fixed block of insight text for one score band. Bands
// mirror the category thresholds; selection takes the highest matching
// MinScore.
type fallbackTier struct {
	MinScore        int
	Insights        []string
	Recommendations []string
}

// fallbackTiers is the guaranteed-available insight library, ordered top
// band first.
var fallbackTiers = []fallbackTier{
	{
		MinScore: 25,
		Insights: []string{
			"You have built strong, reliable habits that support your well-being.",
			"Your self-awareness lets you catch stress early, before it snowballs.",
			"You draw real energy from your relationships and the things you enjoy.",
			"Your self-talk is kind, which makes setbacks easier to recover from.",
		},
		Recommendations: []string{
			"Keep your routines alive by sharing them with someone you care about.",
			"Stretch yourself with a new mindfulness or journaling practice.",
			"Check in monthly so small dips never become long slides.",
		},
	},
	{
		MinScore: 19,
		Insights: []string{
			"You have a solid foundation and bounce back well from most setbacks.",
			"You know several coping strategies that genuinely work for you.",
			"Your connections give you support, even if you do not always lean on them.",
		},
		Recommendations: []string{
			"Make your best coping strategy a daily habit rather than a rescue tool.",
			"Schedule one intentional check-in with yourself each day.",
			"Reach out to a friend this week just to talk, not because you need to.",
		},
	},
	{
		MinScore: 13,
		Insights: []string{
			"You are balancing well some days and struggling on others, which is common.",
			"You notice your feelings, though naming them precisely is still hard work.",
			"Your energy for things you enjoy is there, but it runs low too often.",
		},
		Recommendations: []string{
			"Pick one small daily ritual, like three minutes of breathing or gratitude.",
			"Protect your sleep with a consistent wind-down time this week.",
			"Write down one thing that went well at the end of each day.",
		},
	},
	{
		MinScore: 7,
		Insights: []string{
			"You are carrying more than your current routines can absorb.",
			"Low energy and restless sleep are feeding into each other right now.",
			"You tend to notice stress only after it has already overwhelmed you.",
			"Feeling distant from people makes everything else heavier.",
		},
		Recommendations: []string{
			"Start tiny: one two-minute pause a day to name how you feel.",
			"Tell one person you trust how things have actually been lately.",
			"Swap one late-night scroll for an earlier wind-down this week.",
		},
	},
	{
		MinScore: 0,
		Insights: []string{
			"Things feel heavy right now, and recognizing that is itself a first step.",
			"Persistent low mood and exhaustion are signals, not personal failures.",
			"You do not have to untangle all of this alone.",
		},
		Recommendations: []string{
			"Consider talking to a counsellor or doctor about how you have been feeling.",
			"Choose one tiny act of care each day, like stepping outside for fresh air.",
			"Let one trusted person know you are having a hard time.",
		},
	},
}

// FallbackFor returns the static insight block for the score's band. It
// never fails and never returns empty lists; this is the guaranteed path
// when the AI call is unavailable.
func FallbackFor(score int) Insights {
	for _, tier := range fallbackTiers {
		if score >= tier.MinScore {
			return Insights{
				Insights:        append([]string(nil), tier.Insights...),
				Recommendations: append([]string(nil), tier.Recommendations...),
			}
		}
	}
	// Negative scores cannot come out of the scoring engine, but clamp to
	// the lowest band rather than returning nothing.
	last := fallbackTiers[len(fallbackTiers)-1]
	return Insights{
		Insights:        append([]string(nil), last.Insights...),
		Recommendations: append([]string(nil), last.Recommendations...),
	}
}
