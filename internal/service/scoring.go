package service

import (
	"mentorbot/internal/model"
	"mentorbot/internal/questionbank"
)

// ScoreAnswers computes the personality-type distribution from raw answers.
//
// Only option-choice answers whose ids resolve to instrument items count;
// free-text answers and unknown ids are ignored, so the function tolerates
// partial answer sets. Primary and secondary types are the two highest
// counts; ties resolve by the canonical order of model.PersonalityTypes
// (earlier wins). Pure function, no I/O.
func ScoreAnswers(bank *questionbank.Bank, answers model.RawAnswers) model.ScoringResult {
	counts := make(map[model.PersonalityType]int, len(model.PersonalityTypes))
	for _, t := range model.PersonalityTypes {
		counts[t] = 0
	}

	for id, answer := range answers {
		if answer.Kind != model.AnswerOption {
			continue
		}
		q := bank.InstrumentQuestion(id)
		if q == nil {
			continue
		}
		if t, ok := q.Weights[answer.Label]; ok {
			counts[t]++
		}
	}

	primary := argMax(counts, "")
	secondary := argMax(counts, primary)

	return model.ScoringResult{
		TypeCounts:    counts,
		PrimaryType:   primary,
		SecondaryType: secondary,
	}
}

// argMax picks the highest-count type, skipping excluded, walking the
// canonical order so ties are deterministic.
func argMax(counts map[model.PersonalityType]int, exclude model.PersonalityType) model.PersonalityType {
	var best model.PersonalityType
	bestCount := -1
	for _, t := range model.PersonalityTypes {
		if t == exclude {
			continue
		}
		if counts[t] > bestCount {
			best = t
			bestCount = counts[t]
		}
	}
	return best
}
