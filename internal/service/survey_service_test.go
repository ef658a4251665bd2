package service

import (
	"context"
	"errors"
	"testing"

	"mentorbot/internal/model"
)

type fakeSessionCache struct {
	sessions map[int64]*model.SurveySession
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: make(map[int64]*model.SurveySession)}
}

func (c *fakeSessionCache) Set(ctx context.Context, session *model.SurveySession) error {
	clone := *session
	clone.Answers = session.Answers.Clone()
	c.sessions[session.UserID] = &clone
	return nil
}

func (c *fakeSessionCache) Get(ctx context.Context, userID int64) (*model.SurveySession, error) {
	s, ok := c.sessions[userID]
	if !ok {
		return nil, nil
	}
	clone := *s
	clone.Answers = s.Answers.Clone()
	return &clone, nil
}

func (c *fakeSessionCache) Delete(ctx context.Context, userID int64) error {
	delete(c.sessions, userID)
	return nil
}

type surveyFixture struct {
	survey   *SurveyService
	sessions *fakeSessionCache
	profiles *fakeProfileRepo
	answers  *fakeAnswerRepo
	gen      *StaticGenerator
}

func newSurveyFixture(t *testing.T) *surveyFixture {
	t.Helper()
	bank := loadBank(t)
	gen := NewStaticGenerator()
	profiles := newFakeProfileRepo()
	answers := newFakeAnswerRepo()
	sessions := newFakeSessionCache()
	profileSvc := NewProfileService(bank, gen, profiles, answers)
	return &surveyFixture{
		survey:   NewSurveyService(bank, sessions, profileSvc),
		sessions: sessions,
		profiles: profiles,
		answers:  answers,
		gen:      gen,
	}
}

// runDemographic answers every demographic question and the readiness
// confirmation, leaving the session at the first instrument item.
func runDemographic(t *testing.T, f *surveyFixture, userID int64) *StepResult {
	t.Helper()
	ctx := context.Background()

	step, err := f.survey.Start(ctx, userID, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for step.Kind == StepAskDemographic {
		step, err = f.survey.Submit(ctx, userID, "something about me")
		if err != nil {
			t.Fatalf("demographic submit: %v", err)
		}
	}
	if step.Kind != StepAskConfirm {
		t.Fatalf("after demographics kind = %s, want ask_confirm", step.Kind)
	}
	step, err = f.survey.Submit(ctx, userID, "yes")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if step.Kind != StepAskInstrument {
		t.Fatalf("after confirm kind = %s, want ask_instrument", step.Kind)
	}
	return step
}

func TestSurveyHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)

	step := runDemographic(t, f, 1)
	if step.Index != 0 || step.Total == 0 {
		t.Fatalf("instrument progress = %d/%d, want 0/n", step.Index, step.Total)
	}
	if len(step.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(step.Options))
	}

	var err error
	for step.Kind == StepAskInstrument {
		step, err = f.survey.Submit(ctx, 1, "A")
		if err != nil {
			t.Fatalf("instrument submit: %v", err)
		}
		if step.Kind == StepAskInstrument && step.Interpretation == "" {
			t.Fatal("accepted answer must surface its interpretation")
		}
	}

	if step.Kind != StepComplete {
		t.Fatalf("final kind = %s, want complete", step.Kind)
	}
	if step.GenErr != nil {
		t.Fatalf("unexpected generation error: %v", step.GenErr)
	}
	if !step.Profile.Usable() {
		t.Error("profile not usable after happy path")
	}
	if step.Profile.Type != model.TypeAnalytical {
		t.Errorf("primary = %s, want analytical", step.Profile.Type)
	}

	// Session is gone; further input is rejected.
	if _, err := f.survey.Submit(ctx, 1, "A"); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("submit after complete = %v, want ErrNoActiveSession", err)
	}
}

func TestInvalidInstrumentAnswerDoesNotAdvance(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)
	runDemographic(t, f, 1)

	step, err := f.survey.Submit(ctx, 1, "maybe E? not sure")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if step.Kind != StepInvalid {
		t.Fatalf("kind = %s, want invalid", step.Kind)
	}
	if step.Reason == "" {
		t.Error("invalid step needs a user-facing reason")
	}

	// Same question is still pending.
	session, _ := f.sessions.Get(ctx, 1)
	if session.CurrentIndex != 0 {
		t.Errorf("index advanced to %d on invalid input", session.CurrentIndex)
	}
	if len(session.Answers) != len(loadBank(t).DemographicQuestions()) {
		t.Error("invalid input must not record an answer")
	}
}

func TestEmptyDemographicAnswerRejected(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)
	if _, err := f.survey.Start(ctx, 1, false); err != nil {
		t.Fatalf("start: %v", err)
	}

	step, err := f.survey.Submit(ctx, 1, "   ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if step.Kind != StepInvalid {
		t.Fatalf("kind = %s, want invalid", step.Kind)
	}
}

func TestCancelWipesSessionWithoutProfile(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)
	runDemographic(t, f, 1)

	// Answer a few items, then bail.
	for i := 0; i < 5; i++ {
		if _, err := f.survey.Submit(ctx, 1, "B"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	cancelled, err := f.survey.Cancel(ctx, 1)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !cancelled {
		t.Fatal("expected cancellation of active session")
	}

	if p, _ := f.profiles.Get(ctx, 1); p != nil {
		t.Error("cancel must not write a profile")
	}
	if active, _ := f.survey.Active(ctx, 1); active {
		t.Error("session survived cancel")
	}
	// Cancel with nothing in flight is a quiet no-op.
	cancelled, err = f.survey.Cancel(ctx, 1)
	if err != nil || cancelled {
		t.Errorf("second cancel = (%v, %v), want (false, nil)", cancelled, err)
	}
}

func TestDeclineAtConfirmationCancels(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)

	step, err := f.survey.Start(ctx, 1, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for step.Kind == StepAskDemographic {
		if step, err = f.survey.Submit(ctx, 1, "answer"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	step, err = f.survey.Submit(ctx, 1, "no")
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if step.Kind != StepCancelled {
		t.Fatalf("kind = %s, want cancelled", step.Kind)
	}
	if active, _ := f.survey.Active(ctx, 1); active {
		t.Error("session survived decline")
	}
	if p, _ := f.profiles.Get(ctx, 1); p != nil {
		t.Error("decline must not write a profile")
	}
}

func TestStartRequiresOverwriteConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)

	// Seed an existing profile.
	f.profiles.Put(ctx, &model.PersonalityProfile{
		UserID:      1,
		ProfileText: "old profile",
		Type:        model.TypeCreative,
		Completed:   true,
	})

	if _, err := f.survey.Start(ctx, 1, false); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("start = %v, want ErrProfileExists", err)
	}

	step, err := f.survey.Start(ctx, 1, true)
	if err != nil {
		t.Fatalf("forced start: %v", err)
	}
	if step.Kind != StepAskDemographic {
		t.Errorf("kind = %s, want ask_demographic", step.Kind)
	}
	// The old profile stays until the new run finishes.
	if p, _ := f.profiles.Get(ctx, 1); !p.Usable() {
		t.Error("existing profile must survive until the new survey completes")
	}
}

func TestGenerationFailureKeepsAnswersForRetry(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)
	f.gen.Fail = &GenerationError{Reason: model.FailureTransport, Err: errors.New("timeout")}

	step := runDemographic(t, f, 1)
	var err error
	for step.Kind == StepAskInstrument {
		if step, err = f.survey.Submit(ctx, 1, "D"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if step.Kind != StepComplete {
		t.Fatalf("kind = %s, want complete", step.Kind)
	}
	if step.GenErr == nil || step.GenErr.Reason != model.FailureTransport {
		t.Fatalf("genErr = %+v, want transport_error", step.GenErr)
	}
	if step.Profile == nil || step.Profile.Usable() {
		t.Error("profile should be persisted but not usable")
	}
	if len(f.answers.answers[1]) == 0 {
		t.Fatal("answers must be stored for retry")
	}
}

func TestAnswerStoreFailureKeepsSessionAlive(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)

	step := runDemographic(t, f, 1)
	var err error
	for step.Index < step.Total-1 {
		if step, err = f.survey.Submit(ctx, 1, "C"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	f.answers.putErr = errors.New("mongo down")
	if _, err = f.survey.Submit(ctx, 1, "C"); err == nil {
		t.Fatal("final submit should surface the store error")
	}
	if active, _ := f.survey.Active(ctx, 1); !active {
		t.Fatal("session must survive a store failure")
	}
	if profile, _ := f.profiles.Get(ctx, 1); profile != nil {
		t.Fatal("no profile should be written on store failure")
	}

	// Store recovers; resubmitting the last answer finishes the run.
	f.answers.putErr = nil
	step, err = f.survey.Submit(ctx, 1, "C")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if step.Kind != StepComplete || step.Profile == nil || !step.Profile.Usable() {
		t.Fatalf("resubmit step = %+v, want completed profile", step)
	}
	if active, _ := f.survey.Active(ctx, 1); active {
		t.Error("session must be dropped after completion")
	}
}

func TestStartReplacesInFlightSession(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture(t)
	runDemographic(t, f, 1)

	step, err := f.survey.Start(ctx, 1, false)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if step.Kind != StepAskDemographic {
		t.Fatalf("kind = %s, want ask_demographic", step.Kind)
	}
	session, _ := f.sessions.Get(ctx, 1)
	if session.Phase != model.PhaseDemographic || len(session.Answers) != 0 {
		t.Error("restart must begin a fresh session")
	}
}

func TestParseOptionLabel(t *testing.T) {
	cases := []struct {
		in    string
		want  model.OptionLabel
		valid bool
	}{
		{"A", model.OptionA, true},
		{"b", model.OptionB, true},
		{"  c  ", model.OptionC, true},
		{"D: take a walk", model.OptionD, true},
		{"b) talk it through", model.OptionB, true},
		{"a. think it over", model.OptionA, true},
		{"C take notes", model.OptionC, true},
		{"I would pick d", model.OptionD, true},
		{"probably (B)", model.OptionB, true},
		{"", "", false},
		{"E", "", false},
		{"hello there", "", false},
		{"maybe b or c", "", false},
		{"ABCD", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseOptionLabel(tc.in)
		if ok != tc.valid || (ok && got != tc.want) {
			t.Errorf("ParseOptionLabel(%q) = (%q, %v), want (%q, %v)",
				tc.in, got, ok, tc.want, tc.valid)
		}
	}
}
