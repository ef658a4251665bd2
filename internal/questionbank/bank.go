package questionbank

import (
	"fmt"

	"mentorbot/internal/model"
)

// InstrumentSize is the required number of instrument items. Loading fails
// if the catalog does not contain exactly this many.
const InstrumentSize = 34

// Bank is the static, validated catalog of demographic questions and the
// forced-choice instrument. Loaded once at process start; never mutated.
type Bank struct {
	demographic []model.DemographicQuestion
	instrument  []model.Question
	byID        map[string]*model.Question
}

// Load validates the built-in catalog and returns the bank. A validation
// error is fatal: the caller must refuse to serve surveys rather than run
// with an inconsistent instrument.
func Load() (*Bank, error) {
	b := &Bank{
		demographic: demographicQuestions,
		instrument:  instrumentQuestions,
		byID:        make(map[string]*model.Question, len(instrumentQuestions)),
	}

	if len(b.instrument) != InstrumentSize {
		return nil, fmt.Errorf("instrument has %d items, want %d", len(b.instrument), InstrumentSize)
	}

	seen := make(map[string]bool, len(b.demographic)+len(b.instrument))
	for _, q := range b.demographic {
		if q.ID == "" || q.Text == "" {
			return nil, fmt.Errorf("demographic question %q: empty id or text", q.ID)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}

	for i := range b.instrument {
		q := &b.instrument[i]
		if q.ID == "" || q.Text == "" {
			return nil, fmt.Errorf("instrument item %d: empty id or text", i+1)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		if err := checkLabelSet(q.ID, "options", len(q.Options), q.Options); err != nil {
			return nil, err
		}
		if err := checkLabelSet(q.ID, "interpretations", len(q.Interpretations), q.Interpretations); err != nil {
			return nil, err
		}
		if len(q.Weights) != len(model.OptionLabels) {
			return nil, fmt.Errorf("item %s: weights has %d labels, want %d", q.ID, len(q.Weights), len(model.OptionLabels))
		}
		for _, label := range model.OptionLabels {
			t, ok := q.Weights[label]
			if !ok {
				return nil, fmt.Errorf("item %s: weights missing label %s", q.ID, label)
			}
			if !validType(t) {
				return nil, fmt.Errorf("item %s: label %s maps to unknown type %q", q.ID, label, t)
			}
		}

		b.byID[q.ID] = q
	}

	return b, nil
}

func checkLabelSet[V any](id, field string, n int, m map[model.OptionLabel]V) error {
	if n != len(model.OptionLabels) {
		return fmt.Errorf("item %s: %s has %d labels, want %d", id, field, n, len(model.OptionLabels))
	}
	for _, label := range model.OptionLabels {
		if _, ok := m[label]; !ok {
			return fmt.Errorf("item %s: %s missing label %s", id, field, label)
		}
	}
	return nil
}

func validType(t model.PersonalityType) bool {
	for _, known := range model.PersonalityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DemographicQuestions returns the demographic catalog in presentation order.
func (b *Bank) DemographicQuestions() []model.DemographicQuestion {
	return b.demographic
}

// InstrumentQuestions returns the instrument items in presentation order.
func (b *Bank) InstrumentQuestions() []model.Question {
	return b.instrument
}

// InstrumentQuestion returns the instrument item with the given id, or nil.
func (b *Bank) InstrumentQuestion(id string) *model.Question {
	return b.byID[id]
}
