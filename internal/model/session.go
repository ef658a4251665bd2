package model

import "time"

// SurveyPhase is the coarse state of an in-progress survey session
type SurveyPhase string

const (
	PhaseDemographic  SurveyPhase = "demographic"
	PhaseConfirmation SurveyPhase = "awaiting_instrument_confirmation"
	PhaseInstrument   SurveyPhase = "instrument"
	PhaseComplete     SurveyPhase = "complete"
	PhaseCancelled    SurveyPhase = "cancelled"
)

// SurveySession is the transient per-user record tracking progress through
// the survey. It lives in the session cache and is cleared on cancellation
// or completion; it is never a substitute for the persisted profile.
type SurveySession struct {
	ID           string      `json:"id"`
	UserID       int64       `json:"userId"`
	Phase        SurveyPhase `json:"phase"`
	CurrentIndex int         `json:"currentIndex"`
	Answers      RawAnswers  `json:"answers"`
	StartedAt    time.Time   `json:"startedAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Active reports whether the session still expects user input.
func (s *SurveySession) Active() bool {
	switch s.Phase {
	case PhaseDemographic, PhaseConfirmation, PhaseInstrument:
		return true
	}
	return false
}
