package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"mentorbot/internal/cache"
	"mentorbot/internal/model"
	"mentorbot/internal/questionbank"
)

// ErrProfileExists signals that the user already has a stored profile and
// must explicitly confirm the overwrite before a new survey starts.
var ErrProfileExists = errors.New("profile already exists")

// ErrNoActiveSession is returned when input arrives for a user with no
// survey in flight.
var ErrNoActiveSession = errors.New("no active survey session")

// FSM event names for the survey phase graph.
const (
	eventDemographicDone = "demographic_done"
	eventConfirm         = "confirm"
	eventFinish          = "finish"
	eventCancel          = "cancel"
)

// StepKind tells the caller what a step result contains and what the bot
// should render.
type StepKind string

const (
	StepAskDemographic StepKind = "ask_demographic"
	StepAskConfirm     StepKind = "ask_confirm"
	StepAskInstrument  StepKind = "ask_instrument"
	StepInvalid        StepKind = "invalid"
	StepCancelled      StepKind = "cancelled"
	StepComplete       StepKind = "complete"
)

// StepResult is the outcome of one survey interaction.
type StepResult struct {
	Kind StepKind

	// Question and Options are set for ask kinds. Options holds rendered
	// "A: text" lines for keyboard layout, empty for free-text prompts.
	Question string
	Options  []string

	// Interpretation is the note for the answer that was just accepted,
	// surfaced before the next question.
	Interpretation string

	// Index and Total describe progress within the current phase.
	Index int
	Total int

	// Reason explains an invalid submission.
	Reason string

	// Profile and GenErr are set on completion. A non-nil GenErr means the
	// narrative failed; the profile is persisted incomplete and the raw
	// answers are kept for a retry.
	Profile *model.PersonalityProfile
	GenErr  *GenerationError
}

// SurveyService runs the survey state machine. All mutating entry points
// take the per-user lock, so at most one step per user is in flight at any
// time. Session state lives in the cache; nothing is written to the profile
// store until the instrument is finished.
type SurveyService struct {
	bank     *questionbank.Bank
	sessions cache.SessionCache
	profiles *ProfileService
	locks    *userLock
}

func NewSurveyService(bank *questionbank.Bank, sessions cache.SessionCache, profiles *ProfileService) *SurveyService {
	return &SurveyService{
		bank:     bank,
		sessions: sessions,
		profiles: profiles,
		locks:    newUserLock(),
	}
}

// phaseFSM rebuilds the transition graph around a persisted phase. The FSM
// is transient; only the resulting phase string is stored.
func phaseFSM(current model.SurveyPhase) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: eventDemographicDone, Src: []string{string(model.PhaseDemographic)}, Dst: string(model.PhaseConfirmation)},
			{Name: eventConfirm, Src: []string{string(model.PhaseConfirmation)}, Dst: string(model.PhaseInstrument)},
			{Name: eventFinish, Src: []string{string(model.PhaseInstrument)}, Dst: string(model.PhaseComplete)},
			{Name: eventCancel, Src: []string{
				string(model.PhaseDemographic),
				string(model.PhaseConfirmation),
				string(model.PhaseInstrument),
			}, Dst: string(model.PhaseCancelled)},
		},
		fsm.Callbacks{},
	)
}

// Start begins a new survey for the user. When a profile already exists and
// force is false it returns ErrProfileExists so the caller can ask for
// overwrite confirmation; any in-flight session is replaced either way once
// the start goes through.
func (s *SurveyService) Start(ctx context.Context, userID int64, force bool) (*StepResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	if !force {
		exists, err := s.profiles.HasProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrProfileExists
		}
	}

	now := time.Now()
	session := &model.SurveySession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Phase:     model.PhaseDemographic,
		Answers:   make(model.RawAnswers),
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	log.Printf("[SurveyService] started session %s for user %d", session.ID, userID)
	return s.promptFor(session), nil
}

// Submit feeds one piece of user input into the session and advances it.
func (s *SurveyService) Submit(ctx context.Context, userID int64, input string) (*StepResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Active() {
		return nil, ErrNoActiveSession
	}

	switch session.Phase {
	case model.PhaseDemographic:
		return s.submitDemographic(ctx, session, input)
	case model.PhaseConfirmation:
		return s.submitConfirmation(ctx, session, input)
	case model.PhaseInstrument:
		return s.submitInstrument(ctx, session, input)
	}
	return nil, ErrNoActiveSession
}

// Cancel aborts any in-flight survey. The session is wiped and nothing is
// written to the profile store. Cancelling with no session is a no-op.
func (s *SurveyService) Cancel(ctx context.Context, userID int64) (bool, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if session == nil || !session.Active() {
		return false, nil
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return false, err
	}
	log.Printf("[SurveyService] cancelled session %s for user %d", session.ID, userID)
	return true, nil
}

// Active reports whether the user has a survey in flight.
func (s *SurveyService) Active(ctx context.Context, userID int64) (bool, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return session != nil && session.Active(), nil
}

func (s *SurveyService) submitDemographic(ctx context.Context, session *model.SurveySession, input string) (*StepResult, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return &StepResult{
			Kind:   StepInvalid,
			Reason: "Please answer in a few words.",
		}, nil
	}

	questions := s.bank.DemographicQuestions()
	q := questions[session.CurrentIndex]
	session.Answers[q.ID] = model.FreeText(text)
	session.CurrentIndex++

	if session.CurrentIndex >= len(questions) {
		machine := phaseFSM(session.Phase)
		if err := machine.Event(ctx, eventDemographicDone); err != nil {
			return nil, err
		}
		session.Phase = model.SurveyPhase(machine.Current())
		session.CurrentIndex = 0
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.promptFor(session), nil
}

func (s *SurveyService) submitConfirmation(ctx context.Context, session *model.SurveySession, input string) (*StepResult, error) {
	machine := phaseFSM(session.Phase)
	switch parseYesNo(input) {
	case yes:
		if err := machine.Event(ctx, eventConfirm); err != nil {
			return nil, err
		}
		session.Phase = model.SurveyPhase(machine.Current())
		session.CurrentIndex = 0
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
		return s.promptFor(session), nil
	case no:
		if err := s.sessions.Delete(ctx, session.UserID); err != nil {
			return nil, err
		}
		return &StepResult{Kind: StepCancelled}, nil
	}
	return &StepResult{
		Kind:   StepInvalid,
		Reason: "Please answer yes or no.",
	}, nil
}

func (s *SurveyService) submitInstrument(ctx context.Context, session *model.SurveySession, input string) (*StepResult, error) {
	questions := s.bank.InstrumentQuestions()
	q := questions[session.CurrentIndex]

	label, ok := ParseOptionLabel(input)
	if !ok {
		return &StepResult{
			Kind:   StepInvalid,
			Reason: "Please pick one of the options: A, B, C or D.",
		}, nil
	}

	session.Answers[q.ID] = model.OptionChoice(label)
	interpretation := q.Interpretations[label]
	session.CurrentIndex++

	if session.CurrentIndex < len(questions) {
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
		result := s.promptFor(session)
		result.Interpretation = interpretation
		return result, nil
	}

	// Last answer accepted. Finish the machine and build the profile from
	// the collected answers. The session is dropped only once Build has
	// persisted the answer set; a store failure keeps it alive so the user
	// can resubmit the last answer instead of losing the whole run.
	machine := phaseFSM(session.Phase)
	if err := machine.Event(ctx, eventFinish); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Build(ctx, session.UserID, session.Answers)
	if err != nil {
		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			return nil, err
		}
		if delErr := s.sessions.Delete(ctx, session.UserID); delErr != nil {
			return nil, delErr
		}
		return &StepResult{
			Kind:           StepComplete,
			Interpretation: interpretation,
			Profile:        profile,
			GenErr:         genErr,
		}, nil
	}
	if err := s.sessions.Delete(ctx, session.UserID); err != nil {
		return nil, err
	}
	return &StepResult{
		Kind:           StepComplete,
		Interpretation: interpretation,
		Profile:        profile,
	}, nil
}

func (s *SurveyService) save(ctx context.Context, session *model.SurveySession) error {
	session.UpdatedAt = time.Now()
	return s.sessions.Set(ctx, session)
}

// promptFor renders the next prompt for the session's current phase.
func (s *SurveyService) promptFor(session *model.SurveySession) *StepResult {
	switch session.Phase {
	case model.PhaseDemographic:
		questions := s.bank.DemographicQuestions()
		q := questions[session.CurrentIndex]
		return &StepResult{
			Kind:     StepAskDemographic,
			Question: q.Text,
			Index:    session.CurrentIndex,
			Total:    len(questions),
		}
	case model.PhaseConfirmation:
		return &StepResult{
			Kind: StepAskConfirm,
			Question: fmt.Sprintf(
				"Thanks! Now comes the main part: %d questions, each with four options. "+
					"Pick the one that feels closest to you. Ready to begin?",
				questionbank.InstrumentSize),
		}
	case model.PhaseInstrument:
		questions := s.bank.InstrumentQuestions()
		q := questions[session.CurrentIndex]
		options := make([]string, 0, len(model.OptionLabels))
		for _, label := range model.OptionLabels {
			options = append(options, string(label)+": "+q.Options[label])
		}
		return &StepResult{
			Kind:     StepAskInstrument,
			Question: q.Text,
			Options:  options,
			Index:    session.CurrentIndex,
			Total:    len(questions),
		}
	}
	return &StepResult{Kind: StepCancelled}
}

type yesNo int

const (
	unclear yesNo = iota
	yes
	no
)

func parseYesNo(input string) yesNo {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "yes", "y", "yes!", "sure", "ready", "ok", "okay", "begin", "start":
		return yes
	case "no", "n", "not now", "later", "stop", "cancel":
		return no
	}
	return unclear
}

// ParseOptionLabel extracts a forced-choice label from free-form input.
// Accepted forms, case-insensitive: a bare label ("b"), a label prefix
// followed by a separator and the option text ("B: I plan ahead", "b) ...",
// "B I plan ahead"), or a single standalone label token embedded in a
// sentence ("I think B fits me"). Input mentioning two different labels is
// rejected as ambiguous.
func ParseOptionLabel(input string) (model.OptionLabel, bool) {
	text := strings.TrimSpace(input)
	if text == "" {
		return "", false
	}

	// Bare label or label-prefixed answer.
	first := unicode.ToUpper(rune(text[0]))
	if label, ok := labelFromRune(first); ok {
		if len(text) == 1 {
			return label, true
		}
		next := rune(text[1])
		if next == ':' || next == '.' || next == ')' || unicode.IsSpace(next) {
			return label, true
		}
	}

	// Standalone token anywhere in the sentence.
	var (
		found model.OptionLabel
		count int
	)
	for _, field := range strings.Fields(text) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(token) != 1 {
			continue
		}
		if label, ok := labelFromRune(unicode.ToUpper(rune(token[0]))); ok {
			if count == 0 || label != found {
				count++
			}
			found = label
		}
	}
	if count == 1 {
		return found, true
	}
	return "", false
}

func labelFromRune(r rune) (model.OptionLabel, bool) {
	switch r {
	case 'A':
		return model.OptionA, true
	case 'B':
		return model.OptionB, true
	case 'C':
		return model.OptionC, true
	case 'D':
		return model.OptionD, true
	}
	return "", false
}
