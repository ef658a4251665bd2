package service

import (
	"context"
	"errors"
	"testing"

	"mentorbot/internal/model"
)

type fakeProfileRepo struct {
	profiles map[int64]*model.PersonalityProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int64]*model.PersonalityProfile)}
}

func (r *fakeProfileRepo) Get(ctx context.Context, userID int64) (*model.PersonalityProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *p
	clone.Normalize()
	return &clone, nil
}

func (r *fakeProfileRepo) Put(ctx context.Context, profile *model.PersonalityProfile) error {
	clone := *profile
	clone.Normalize()
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) Clear(ctx context.Context, userID int64) error {
	delete(r.profiles, userID)
	return nil
}

type fakeAnswerRepo struct {
	answers map[int64]model.RawAnswers
	putErr  error
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[int64]model.RawAnswers)}
}

func (r *fakeAnswerRepo) Get(ctx context.Context, userID int64) (model.RawAnswers, error) {
	return r.answers[userID].Clone(), nil
}

func (r *fakeAnswerRepo) Put(ctx context.Context, userID int64, answers model.RawAnswers) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.answers[userID] = answers.Clone()
	return nil
}

func (r *fakeAnswerRepo) Clear(ctx context.Context, userID int64) error {
	delete(r.answers, userID)
	return nil
}

func newProfileService(t *testing.T, gen NarrativeGenerator) (*ProfileService, *fakeProfileRepo, *fakeAnswerRepo) {
	t.Helper()
	bank := loadBank(t)
	profiles := newFakeProfileRepo()
	answers := newFakeAnswerRepo()
	return NewProfileService(bank, gen, profiles, answers), profiles, answers
}

func TestBuildSuccessPersistsCompletedProfile(t *testing.T) {
	ctx := context.Background()
	svc, profiles, answers := newProfileService(t, NewStaticGenerator())

	raw := answerAll(loadBank(t), model.OptionA)
	profile, err := svc.Build(ctx, 42, raw)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !profile.Completed || profile.ProfileText == "" {
		t.Errorf("expected completed profile with text, got completed=%v text=%q",
			profile.Completed, profile.ProfileText)
	}
	if profile.Type != model.TypeAnalytical {
		t.Errorf("primary type = %s, want analytical", profile.Type)
	}
	if profile.FailureReason != model.FailureNone {
		t.Errorf("failure reason = %q, want empty", profile.FailureReason)
	}

	stored, _ := profiles.Get(ctx, 42)
	if !stored.Usable() {
		t.Error("stored profile is not usable")
	}
	if len(answers.answers[42]) != len(raw) {
		t.Error("raw answers were not persisted")
	}
}

func TestBuildFailureCategorizesAndPersistsIncomplete(t *testing.T) {
	ctx := context.Background()
	raw := answerAll(loadBank(t), model.OptionB)

	reasons := []model.GenerationFailure{
		model.FailureQuotaExceeded,
		model.FailureAuth,
		model.FailureTransport,
		model.FailureUnknown,
	}
	for _, reason := range reasons {
		t.Run(string(reason), func(t *testing.T) {
			gen := NewStaticGenerator()
			gen.Fail = &GenerationError{Reason: reason, Err: errors.New("boom")}
			svc, profiles, answers := newProfileService(t, gen)

			profile, err := svc.Build(ctx, 7, raw)
			if err == nil {
				t.Fatal("expected error")
			}
			genErr := AsGenerationError(err)
			if genErr.Reason != reason {
				t.Errorf("reason = %s, want %s", genErr.Reason, reason)
			}
			if profile.Completed || profile.ProfileText != "" {
				t.Errorf("failed build must persist incomplete: completed=%v text=%q",
					profile.Completed, profile.ProfileText)
			}
			if profile.FailureReason != reason {
				t.Errorf("persisted failure reason = %s, want %s", profile.FailureReason, reason)
			}
			// Scoring still ran and was kept.
			if profile.Type != model.TypeEmotional {
				t.Errorf("primary type = %s, want emotional", profile.Type)
			}

			stored, _ := profiles.Get(ctx, 7)
			if stored == nil || stored.Usable() {
				t.Error("stored profile should exist but not be usable")
			}
			if len(answers.answers[7]) == 0 {
				t.Error("raw answers must survive a failed generation")
			}
		})
	}
}

func TestRetryRebuildsFromStoredAnswers(t *testing.T) {
	ctx := context.Background()
	raw := answerAll(loadBank(t), model.OptionC)

	gen := NewStaticGenerator()
	gen.Fail = &GenerationError{Reason: model.FailureQuotaExceeded, Err: errors.New("429")}
	svc, profiles, _ := newProfileService(t, gen)

	if _, err := svc.Build(ctx, 9, raw); err == nil {
		t.Fatal("expected first build to fail")
	}

	// Quota recovers; retry must not need the answers again.
	gen.Fail = nil
	profile, err := svc.Retry(ctx, 9)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !profile.Usable() {
		t.Error("retried profile should be usable")
	}
	if profile.Type != model.TypePractical {
		t.Errorf("primary type = %s, want practical", profile.Type)
	}

	stored, _ := profiles.Get(ctx, 9)
	if !stored.Usable() {
		t.Error("stored profile not updated by retry")
	}
}

func TestRetryWithoutStoredAnswers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newProfileService(t, NewStaticGenerator())

	_, err := svc.Retry(ctx, 1)
	if !errors.Is(err, ErrNoStoredAnswers) {
		t.Errorf("err = %v, want ErrNoStoredAnswers", err)
	}
}

func TestClearRemovesProfileAndAnswers(t *testing.T) {
	ctx := context.Background()
	svc, profiles, answers := newProfileService(t, NewStaticGenerator())

	raw := answerAll(loadBank(t), model.OptionD)
	if _, err := svc.Build(ctx, 5, raw); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := svc.Clear(ctx, 5); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if p, _ := profiles.Get(ctx, 5); p != nil {
		t.Error("profile survived clear")
	}
	if len(answers.answers[5]) != 0 {
		t.Error("answers survived clear")
	}
}
