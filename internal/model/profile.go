package model

import "time"

// ScoringResult is the deterministic output of the scoring engine
type ScoringResult struct {
	TypeCounts    map[PersonalityType]int `json:"typeCounts" bson:"typeCounts"`
	PrimaryType   PersonalityType         `json:"primaryType" bson:"primaryType"`
	SecondaryType PersonalityType         `json:"secondaryType" bson:"secondaryType"`
}

// GenerationFailure categorizes narrative generator failures so handlers can
// pick user-facing messaging per category
type GenerationFailure string

const (
	FailureNone          GenerationFailure = ""
	FailureQuotaExceeded GenerationFailure = "quota_exceeded"
	FailureAuth          GenerationFailure = "auth_error"
	FailureTransport     GenerationFailure = "transport_error"
	FailureUnknown       GenerationFailure = "unknown"
)

// PersonalityProfile is the persisted, user-facing output combining the
// scoring result and the generated narrative. One record per user,
// last-write-wins.
//
// Invariant: Completed=true implies ProfileText is non-empty. The repository
// normalizes violations to Completed=false instead of serving an empty
// profile.
type PersonalityProfile struct {
	UserID        int64                   `json:"userId" bson:"_id"`
	ProfileText   string                  `json:"profileText" bson:"profileText"`
	Type          PersonalityType         `json:"personalityType" bson:"personalityType"`
	SecondaryType PersonalityType         `json:"secondaryType" bson:"secondaryType"`
	TypeCounts    map[PersonalityType]int `json:"typeCounts" bson:"typeCounts"`
	Completed     bool                    `json:"completed" bson:"completed"`

	// FailureReason is set when the narrative generation failed and the
	// profile was persisted incomplete (Completed=false, empty text).
	FailureReason GenerationFailure `json:"failureReason,omitempty" bson:"failureReason,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Usable reports whether the profile can back personalized features.
func (p *PersonalityProfile) Usable() bool {
	return p != nil && p.Completed && p.ProfileText != ""
}

// Normalize enforces the completeness invariant in place and reports whether
// a violation was corrected.
func (p *PersonalityProfile) Normalize() bool {
	if p.Completed && p.ProfileText == "" {
		p.Completed = false
		if p.FailureReason == FailureNone {
			p.FailureReason = FailureUnknown
		}
		return true
	}
	return false
}
