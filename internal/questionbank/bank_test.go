package questionbank

import (
	"testing"

	"mentorbot/internal/model"
)

func TestLoad(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(b.InstrumentQuestions()); got != InstrumentSize {
		t.Fatalf("expected %d instrument items, got %d", InstrumentSize, got)
	}
	if len(b.DemographicQuestions()) == 0 {
		t.Fatal("expected demographic questions")
	}
}

func TestLoadIsRestartable(t *testing.T) {
	b1, err := Load()
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	b2, err := Load()
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if len(b1.InstrumentQuestions()) != len(b2.InstrumentQuestions()) {
		t.Fatal("Load is not stable across invocations")
	}
	for i, q := range b1.InstrumentQuestions() {
		if q.ID != b2.InstrumentQuestions()[i].ID {
			t.Fatalf("item %d: id changed between loads", i)
		}
	}
}

func TestEveryItemHasFullLabelSets(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, q := range b.InstrumentQuestions() {
		for _, label := range model.OptionLabels {
			if q.Options[label] == "" {
				t.Errorf("item %s: empty option %s", q.ID, label)
			}
			if q.Interpretations[label] == "" {
				t.Errorf("item %s: empty interpretation %s", q.ID, label)
			}
			if q.Weights[label] == "" {
				t.Errorf("item %s: empty weight %s", q.ID, label)
			}
		}
	}
}

func TestInstrumentQuestionLookup(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	first := b.InstrumentQuestions()[0]
	if got := b.InstrumentQuestion(first.ID); got == nil || got.ID != first.ID {
		t.Fatalf("lookup of %q failed", first.ID)
	}
	if b.InstrumentQuestion("no_such_id") != nil {
		t.Fatal("lookup of unknown id should return nil")
	}
	if b.InstrumentQuestion("demo_name") != nil {
		t.Fatal("demographic ids must not resolve as instrument items")
	}
}
