package assessment

import (
	"fmt"
	"math"
)

// Answer is one selected option for one question. Points are always taken
// from the bank's rubric during scoring; a client-supplied value is ignored.
type Answer struct {
	QuestionID string    `json:"id"`
	Choice     OptionKey `json:"choice"`
	Points     int       `json:"points"`
}

// Result is a scored assessment.
type Result struct {
	Score     int      `json:"score"`
	Percent   int      `json:"percent"`
	Category  Category `json:"category"`
	Breakdown []Answer `json:"breakdown"`
}

// MissingAnswerError reports a question that has no answer.
type MissingAnswerError struct {
	QuestionID string
}

func (e *MissingAnswerError) Error() string {
	return fmt.Sprintf("no answer for question %s", e.QuestionID)
}

// InvalidChoiceError reports an answer whose choice is not an option of its
// question.
type InvalidChoiceError struct {
	QuestionID string
	Choice     OptionKey
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("choice %q is not an option of question %s", string(e.Choice), e.QuestionID)
}

// Score maps a complete answer set to a total score, a percentage and a
// category. It walks the bank in order, so the breakdown comes back in
// display order regardless of the input order. Incomplete or inconsistent
// input fails with MissingAnswerError or InvalidChoiceError rather than
// being silently scored as zero.
//
// Deterministic and pure: identical answer sets always yield identical
// results.
func Score(answers []Answer) (*Result, error) {
	byQuestion := make(map[string]Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a // upsert, last selection wins
	}

	total := 0
	breakdown := make([]Answer, 0, len(bank))
	for _, q := range bank {
		ans, ok := byQuestion[q.ID]
		if !ok {
			return nil, &MissingAnswerError{QuestionID: q.ID}
		}
		opt, ok := q.Option(ans.Choice)
		if !ok {
			return nil, &InvalidChoiceError{QuestionID: q.ID, Choice: ans.Choice}
		}
		total += opt.Points
		breakdown = append(breakdown, Answer{QuestionID: q.ID, Choice: opt.Key, Points: opt.Points})
	}

	maxScore := MaxScore()
	percent := int(math.Round(float64(total) / float64(maxScore) * 100))

	return &Result{
		Score:     total,
		Percent:   percent,
		Category:  CategoryFromScore(total),
		Breakdown: breakdown,
	}, nil
}
