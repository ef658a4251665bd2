package model

import "encoding/json"

// AnswerKind tags the two shapes a recorded answer can take
type AnswerKind string

const (
	AnswerFreeText AnswerKind = "free_text"
	AnswerOption   AnswerKind = "option"
)

// Answer is a tagged variant: either the free text given for a demographic
// question or the option label chosen for an instrument item. Keeping the
// shapes apart lets scoring statically reject free text for instrument ids.
type Answer struct {
	Kind  AnswerKind  `json:"kind" bson:"kind"`
	Text  string      `json:"text,omitempty" bson:"text,omitempty"`
	Label OptionLabel `json:"label,omitempty" bson:"label,omitempty"`
}

// FreeText builds a free-text answer.
func FreeText(text string) Answer {
	return Answer{Kind: AnswerFreeText, Text: text}
}

// OptionChoice builds an option-label answer.
func OptionChoice(label OptionLabel) Answer {
	return Answer{Kind: AnswerOption, Label: label}
}

// RawAnswers maps question id -> recorded answer. Last write wins on
// re-answer; insertion order is irrelevant.
type RawAnswers map[string]Answer

// Clone returns a deep copy.
func (a RawAnswers) Clone() RawAnswers {
	out := make(RawAnswers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// MarshalLog renders the answers as compact JSON for debug logging.
func (a RawAnswers) MarshalLog() string {
	b, err := json.Marshal(a)
	if err != nil {
		return "{}"
	}
	return string(b)
}
