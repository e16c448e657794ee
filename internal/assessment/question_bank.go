package assessment

// OptionKey is one of the four fixed answer slots of a question.
type OptionKey string

const (
	KeyA OptionKey = "A"
	KeyB OptionKey = "B"
	KeyC OptionKey = "C"
	KeyD OptionKey = "D"
)

// Valid reports whether k is one of the four known option keys.
func (k OptionKey) Valid() bool {
	switch k {
	case KeyA, KeyB, KeyC, KeyD:
		return true
	}
	return false
}

// Option is one selectable answer with its fixed rubric value.
type Option struct {
	Key    OptionKey `json:"key"`
	Label  string    `json:"label"`
	Points int       `json:"points"` // rubric value, 0..3
}

// Question is a single well-being assessment question. The fixed-size
// options array encodes the exactly-four invariant.
type Question struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Options    [4]Option `json:"options"`
	BestOption OptionKey `json:"best_option"`
}

// Option returns the option with the given key, if the question has one.
func (q Question) Option(key OptionKey) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

// bank order defines both display order and scoring order.
var bank = []Question{
	{
		ID:   "Q1",
		Text: "How would you describe your overall mood over the past two weeks?",
		Options: [4]Option{
			{KeyA, "Mostly positive and steady", 3},
			{KeyB, "Generally okay with some ups and downs", 2},
			{KeyC, "Frequently low or irritable", 1},
			{KeyD, "Persistently down or numb", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q2",
		Text: "How well have you been sleeping lately?",
		Options: [4]Option{
			{KeyA, "I fall asleep easily and wake up rested", 3},
			{KeyB, "Decent sleep with occasional restless nights", 2},
			{KeyC, "I struggle to fall or stay asleep most nights", 1},
			{KeyD, "My sleep feels completely out of control", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q3",
		Text: "When stress builds up, how do you usually respond?",
		Options: [4]Option{
			{KeyA, "I notice it early and use coping strategies that work", 3},
			{KeyB, "I manage, though it sometimes takes a toll", 2},
			{KeyC, "I often feel overwhelmed before I react", 1},
			{KeyD, "I shut down or avoid dealing with it", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q4",
		Text: "How connected do you feel to the people around you?",
		Options: [4]Option{
			{KeyA, "I have strong, supportive relationships", 3},
			{KeyB, "I have a few people I can rely on", 2},
			{KeyC, "I feel distant from most people", 1},
			{KeyD, "I feel isolated and alone", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q5",
		Text: "How often do you take intentional breaks to check in with yourself?",
		Options: [4]Option{
			{KeyA, "Daily, it is part of my routine", 3},
			{KeyB, "A few times a week", 2},
			{KeyC, "Rarely, only when things get bad", 1},
			{KeyD, "Never, I did not know that was a thing", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q6",
		Text: "How easy is it for you to name what you are feeling in the moment?",
		Options: [4]Option{
			{KeyA, "Very easy, I can usually pinpoint my emotions", 3},
			{KeyB, "Somewhat easy, with a little reflection", 2},
			{KeyC, "Difficult, my feelings often blur together", 1},
			{KeyD, "Very difficult, I mostly feel blank", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q7",
		Text: "When something goes wrong, how do you talk to yourself about it?",
		Options: [4]Option{
			{KeyA, "With kindness, setbacks are part of learning", 3},
			{KeyB, "Mostly fairly, though I can be hard on myself", 2},
			{KeyC, "Critically, I replay my mistakes a lot", 1},
			{KeyD, "Harshly, I feel like a failure", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q8",
		Text: "How much energy do you have for things you enjoy?",
		Options: [4]Option{
			{KeyA, "Plenty, I make time for what I love", 3},
			{KeyB, "Enough, though less than I would like", 2},
			{KeyC, "Little, most days I am running on empty", 1},
			{KeyD, "None, I have stopped doing things I used to enjoy", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q9",
		Text: "How often do you notice things you are grateful for?",
		Options: [4]Option{
			{KeyA, "Most days, it comes naturally", 3},
			{KeyB, "Sometimes, when I pause to think about it", 2},
			{KeyC, "Rarely, the negatives crowd them out", 1},
			{KeyD, "Almost never", 0},
		},
		BestOption: KeyA,
	},
	{
		ID:   "Q10",
		Text: "Looking at the next month, how do you feel about taking care of your well-being?",
		Options: [4]Option{
			{KeyA, "Motivated, I have a clear sense of what helps me", 3},
			{KeyB, "Hopeful, though I am not sure where to start", 2},
			{KeyC, "Uncertain, it feels like a lot of effort", 1},
			{KeyD, "Discouraged, nothing seems to help", 0},
		},
		BestOption: KeyA,
	},
}

// Bank returns the fixed question set in display order. Callers must treat
// the returned slice as read-only.
func Bank() []Question {
	return bank
}

// QuestionByID looks up a question in the bank.
func QuestionByID(id string) (Question, bool) {
	for _, q := range bank {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// MaxScore is the best attainable total across the bank.
func MaxScore() int {
	total := 0
	for _, q := range bank {
		best := 0
		for _, opt := range q.Options {
			if opt.Points > best {
				best = opt.Points
			}
		}
		total += best
	}
	return total
}
