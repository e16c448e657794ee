package assessment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersWithChoice(key OptionKey) []Answer {
	var answers []Answer
	for _, q := range Bank() {
		answers = append(answers, Answer{QuestionID: q.ID, Choice: key})
	}
	return answers
}

func TestScoreAllBestAnswers(t *testing.T) {
	result, err := Score(answersWithChoice(KeyA))
	require.NoError(t, err)

	assert.Equal(t, 30, result.Score)
	assert.Equal(t, 100, result.Percent)
	assert.Equal(t, GrowthChampion, result.Category)
	assert.Equal(t, "Growth Champion", result.Category.String())
	assert.Len(t, result.Breakdown, len(Bank()))
}

func TestScoreAllWorstAnswers(t *testing.T) {
	result, err := Score(answersWithChoice(KeyD))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.Percent)
	assert.Equal(t, OverwhelmedNeedsSupport, result.Category)
	assert.Equal(t, "Overwhelmed — Needs Support", result.Category.String())
}

func TestScoreDeterminism(t *testing.T) {
	answers := []Answer{
		{QuestionID: "Q1", Choice: KeyB},
		{QuestionID: "Q2", Choice: KeyC},
		{QuestionID: "Q3", Choice: KeyA},
		{QuestionID: "Q4", Choice: KeyD},
		{QuestionID: "Q5", Choice: KeyB},
		{QuestionID: "Q6", Choice: KeyB},
		{QuestionID: "Q7", Choice: KeyA},
		{QuestionID: "Q8", Choice: KeyC},
		{QuestionID: "Q9", Choice: KeyA},
		{QuestionID: "Q10", Choice: KeyB},
	}

	first, err := Score(answers)
	require.NoError(t, err)
	second, err := Score(answers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreInputOrderIrrelevant(t *testing.T) {
	ordered := answersWithChoice(KeyB)
	reversed := make([]Answer, len(ordered))
	for i, a := range ordered {
		reversed[len(ordered)-1-i] = a
	}

	fromOrdered, err := Score(ordered)
	require.NoError(t, err)
	fromReversed, err := Score(reversed)
	require.NoError(t, err)

	assert.Equal(t, fromOrdered, fromReversed)
}

func TestScoreCategoryBoundary(t *testing.T) {
	// Six best answers plus one 1-point answer: 19 total, the bottom of the
	// Resilient Builder band.
	nineteen := []Answer{
		{QuestionID: "Q1", Choice: KeyA},
		{QuestionID: "Q2", Choice: KeyA},
		{QuestionID: "Q3", Choice: KeyA},
		{QuestionID: "Q4", Choice: KeyA},
		{QuestionID: "Q5", Choice: KeyA},
		{QuestionID: "Q6", Choice: KeyA},
		{QuestionID: "Q7", Choice: KeyC},
		{QuestionID: "Q8", Choice: KeyD},
		{QuestionID: "Q9", Choice: KeyD},
		{QuestionID: "Q10", Choice: KeyD},
	}
	result, err := Score(nineteen)
	require.NoError(t, err)
	assert.Equal(t, 19, result.Score)
	assert.Equal(t, "Resilient Builder", result.Category.String())

	// Dropping the 1-point answer to zero lands on 18, the top of the
	// Balanced Explorer band.
	eighteen := append([]Answer(nil), nineteen...)
	eighteen[6].Choice = KeyD
	result, err = Score(eighteen)
	require.NoError(t, err)
	assert.Equal(t, 18, result.Score)
	assert.Equal(t, "Balanced Explorer", result.Category.String())
}

func TestScoreMissingAnswer(t *testing.T) {
	answers := answersWithChoice(KeyA)[:len(Bank())-1] // drop Q10

	_, err := Score(answers)
	require.Error(t, err)

	var missing *MissingAnswerError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Q10", missing.QuestionID)
}

func TestScoreInvalidChoice(t *testing.T) {
	answers := answersWithChoice(KeyA)
	answers[2].Choice = OptionKey("Z")

	_, err := Score(answers)
	require.Error(t, err)

	var invalid *InvalidChoiceError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "Q3", invalid.QuestionID)
	assert.Equal(t, OptionKey("Z"), invalid.Choice)
}

func TestScoreIgnoresClientPoints(t *testing.T) {
	answers := answersWithChoice(KeyD)
	for i := range answers {
		answers[i].Points = 3 // inflated by a hostile client
	}

	result, err := Score(answers)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestBreakdownRoundTrip(t *testing.T) {
	result, err := Score(answersWithChoice(KeyB))
	require.NoError(t, err)

	encoded, err := json.Marshal(result.Breakdown)
	require.NoError(t, err)

	var decoded []Answer
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	sum := 0
	for _, a := range decoded {
		sum += a.Points
	}
	assert.Equal(t, result.Score, sum)
}

func TestPercentRounding(t *testing.T) {
	// 10 one-point answers: 10/30 = 33.33 rounds to 33.
	result, err := Score(answersWithChoice(KeyC))
	require.NoError(t, err)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 33, result.Percent)

	// 20 points: 66.67 rounds to 67.
	result, err = Score(answersWithChoice(KeyB))
	require.NoError(t, err)
	assert.Equal(t, 20, result.Score)
	assert.Equal(t, 67, result.Percent)
}

func TestCategoryPartition(t *testing.T) {
	counts := make(map[Category]int)
	for s := 0; s <= 30; s++ {
		c := CategoryFromScore(s)
		assert.NotEqual(t, "Unknown", c.String(), "score %d mapped outside the five bands", s)
		counts[c]++
	}

	assert.Len(t, counts, 5)
	assert.Equal(t, 7, counts[OverwhelmedNeedsSupport]) // 0..6
	assert.Equal(t, 6, counts[EmergingMindset])         // 7..12
	assert.Equal(t, 6, counts[BalancedExplorer])        // 13..18
	assert.Equal(t, 6, counts[ResilientBuilder])        // 19..24
	assert.Equal(t, 6, counts[GrowthChampion])          // 25..30
}

func TestCategoryThresholdEdges(t *testing.T) {
	cases := map[int]Category{
		0: OverwhelmedNeedsSupport, 6: OverwhelmedNeedsSupport,
		7: EmergingMindset, 12: EmergingMindset,
		13: BalancedExplorer, 18: BalancedExplorer,
		19: ResilientBuilder, 24: ResilientBuilder,
		25: GrowthChampion, 30: GrowthChampion,
	}
	for score, want := range cases {
		assert.Equal(t, want, CategoryFromScore(score), "score %d", score)
	}
}
