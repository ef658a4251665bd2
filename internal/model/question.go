package model

// OptionLabel identifies one of the four forced choices of an instrument item
type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
	OptionC OptionLabel = "C"
	OptionD OptionLabel = "D"
)

// OptionLabels lists the labels in presentation order.
var OptionLabels = []OptionLabel{OptionA, OptionB, OptionC, OptionD}

// PersonalityType is one of the fixed category tags assigned by scoring
type PersonalityType string

const (
	TypeAnalytical PersonalityType = "analytical"
	TypeEmotional  PersonalityType = "emotional"
	TypePractical  PersonalityType = "practical"
	TypeCreative   PersonalityType = "creative"
)

// PersonalityTypes is the canonical ordering of the type set. Scoring uses it
// as the tie-break order: on equal counts the earlier type wins.
var PersonalityTypes = []PersonalityType{
	TypeAnalytical,
	TypeEmotional,
	TypePractical,
	TypeCreative,
}

// DisplayName returns the user-facing name of a personality type.
func (t PersonalityType) DisplayName() string {
	switch t {
	case TypeAnalytical:
		return "Analytical"
	case TypeEmotional:
		return "Emotional"
	case TypePractical:
		return "Practical"
	case TypeCreative:
		return "Creative"
	}
	return string(t)
}

// DemographicQuestion is a free-text question asked before the instrument
type DemographicQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a forced-choice instrument item. Options, interpretations and
// weights are all keyed by the same four labels; the question bank refuses to
// load if any of the key sets differ.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Options maps label -> choice text shown to the user
	Options map[OptionLabel]string `json:"options"`

	// Interpretations maps label -> short note surfaced right after the
	// user picks that option
	Interpretations map[OptionLabel]string `json:"interpretations"`

	// Weights maps label -> the personality type that choice counts toward
	Weights map[OptionLabel]PersonalityType `json:"weights"`
}
