package service

import (
	"context"
	"errors"
	"log"

	"mentorbot/internal/model"
	"mentorbot/internal/questionbank"
	"mentorbot/internal/repository"
)

// ErrNoStoredAnswers is returned by Retry when the user has no persisted
// answer set to rebuild a profile from.
var ErrNoStoredAnswers = errors.New("no stored answers to retry from")

// ProfileService builds, retries and serves personality profiles. Scoring is
// local and never fails; narrative generation goes through the injected
// generator and its failures are categorized and persisted rather than
// discarded, so the raw answers survive for /retry.
type ProfileService struct {
	bank      *questionbank.Bank
	generator NarrativeGenerator
	profiles  repository.ProfileRepo
	answers   repository.AnswerRepo
}

func NewProfileService(bank *questionbank.Bank, generator NarrativeGenerator, profiles repository.ProfileRepo, answers repository.AnswerRepo) *ProfileService {
	return &ProfileService{
		bank:      bank,
		generator: generator,
		profiles:  profiles,
		answers:   answers,
	}
}

// Build scores the answer set, persists it for later retries, and asks the
// generator for the narrative. On generation failure the profile is still
// persisted (incomplete, with the failure category) and the categorized
// error is returned alongside it.
func (s *ProfileService) Build(ctx context.Context, userID int64, answers model.RawAnswers) (*model.PersonalityProfile, error) {
	if err := s.answers.Put(ctx, userID, answers); err != nil {
		return nil, err
	}
	return s.build(ctx, userID, answers)
}

// Retry rebuilds the profile from the previously stored answers without
// re-running the survey.
func (s *ProfileService) Retry(ctx context.Context, userID int64) (*model.PersonalityProfile, error) {
	answers, err := s.answers.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, ErrNoStoredAnswers
	}
	return s.build(ctx, userID, answers)
}

func (s *ProfileService) build(ctx context.Context, userID int64, answers model.RawAnswers) (*model.PersonalityProfile, error) {
	scoring := ScoreAnswers(s.bank, answers)

	profile := &model.PersonalityProfile{
		UserID:        userID,
		Type:          scoring.PrimaryType,
		SecondaryType: scoring.SecondaryType,
		TypeCounts:    scoring.TypeCounts,
	}

	input := BuildProfileInput(s.bank, answers, scoring)
	text, genErr := s.generator.GenerateNarrative(ctx, input)
	if genErr != nil {
		categorized := AsGenerationError(genErr)
		log.Printf("[ProfileService] generation failed for user %d: %v", userID, categorized)
		profile.Completed = false
		profile.FailureReason = categorized.Reason
		if err := s.profiles.Put(ctx, profile); err != nil {
			return nil, err
		}
		return profile, categorized
	}

	profile.ProfileText = text
	profile.Completed = true
	profile.FailureReason = model.FailureNone
	if err := s.profiles.Put(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("[ProfileService] built profile for user %d: primary=%s secondary=%s",
		userID, profile.Type, profile.SecondaryType)
	return profile, nil
}

// Get returns the stored profile or nil when the user has none.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.PersonalityProfile, error) {
	return s.profiles.Get(ctx, userID)
}

// HasProfile reports whether the user already has any stored profile,
// complete or not. The survey flow uses it to ask before overwriting.
func (s *ProfileService) HasProfile(ctx context.Context, userID int64) (bool, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}

// Clear removes the profile and the stored answer set.
func (s *ProfileService) Clear(ctx context.Context, userID int64) error {
	if err := s.profiles.Clear(ctx, userID); err != nil {
		return err
	}
	return s.answers.Clear(ctx, userID)
}
