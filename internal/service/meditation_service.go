package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"mentorbot/internal/model"
)

// ErrUnknownMeditation is returned for a kind the service does not know.
var ErrUnknownMeditation = errors.New("unknown meditation kind")

// SpeechSynthesizer renders a meditation script to spoken audio. The bot
// runs fine without one; scripts are then delivered as text only.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (audio []byte, mimeType string, err error)
}

// Meditation is one guided session: the script plus optional audio.
type Meditation struct {
	Kind     string
	Title    string
	Script   string
	Audio    []byte
	MimeType string
}

type meditationScript struct {
	title  string
	script string
}

var meditationScripts = map[string]meditationScript{
	"calm": {
		title: "Finding calm",
		script: "Sit comfortably and let your shoulders drop.\n\n" +
			"Breathe in slowly through your nose for four counts. Hold for four. " +
			"Breathe out through your mouth for six.\n\n" +
			"With every exhale, imagine the day's noise getting one step quieter. " +
			"You do not need to solve anything right now. This moment asks nothing of you.\n\n" +
			"Stay with the breath for a few minutes. When thoughts come, let them pass " +
			"like traffic outside a window.",
	},
	"focus": {
		title: "Gathering focus",
		script: "Sit upright and plant both feet on the floor.\n\n" +
			"Pick one point in front of you and rest your eyes on it. " +
			"Take three slow breaths, counting each one.\n\n" +
			"Now name, silently, the single most important thing in front of you today. " +
			"Just one. Everything else can wait its turn.\n\n" +
			"Breathe into that one thing for a minute. When you open your eyes, begin it " +
			"immediately, before anything else asks for you.",
	},
	"sleep": {
		title: "Letting go of the day",
		script: "Lie down and let the bed carry your full weight.\n\n" +
			"Starting from your toes, tense each part of your body for a moment, " +
			"then release it. Feet, legs, stomach, hands, shoulders, face.\n\n" +
			"The day is finished. Whatever remains undone has agreed to wait until morning.\n\n" +
			"Breathe slowly and count backwards from fifty. If you lose count, smile " +
			"and start from wherever feels right.",
	},
}

// closingByType is the per-type line appended when the user has a profile.
var closingByType = map[model.PersonalityType]string{
	model.TypeAnalytical: "Before you go back, notice one thought you examined and then let pass. That skill is yours.",
	model.TypeEmotional:  "Before you go back, place a hand on your chest and thank yourself for showing up.",
	model.TypePractical:  "Before you go back, pick the one small thing you will do next. Just one.",
	model.TypeCreative:   "Before you go back, hold on to whatever image appeared. It may want to become something.",
}

// MeditationService serves guided meditation sessions, optionally voiced and
// closed with a line matched to the user's type.
type MeditationService struct {
	profiles *ProfileService
	synth    SpeechSynthesizer
}

// NewMeditationService creates the service. synth may be nil.
func NewMeditationService(profiles *ProfileService, synth SpeechSynthesizer) *MeditationService {
	return &MeditationService{profiles: profiles, synth: synth}
}

// Kinds lists the available meditation kinds in stable order.
func (s *MeditationService) Kinds() []string {
	kinds := make([]string, 0, len(meditationScripts))
	for k := range meditationScripts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Session returns the meditation for the given kind, voiced when a
// synthesizer is available. Users with a completed profile get a closing
// line matched to their type.
func (s *MeditationService) Session(ctx context.Context, userID int64, kind string) (*Meditation, error) {
	normalized := strings.ToLower(strings.TrimSpace(kind))
	entry, ok := meditationScripts[normalized]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeditation, kind)
	}
	m := &Meditation{
		Kind:   normalized,
		Title:  entry.title,
		Script: entry.script,
	}
	if s.profiles != nil {
		if profile, err := s.profiles.Get(ctx, userID); err == nil && profile.Usable() {
			if line, ok := closingByType[profile.Type]; ok {
				m.Script += "\n\n" + line
			}
		}
	}
	if s.synth != nil {
		audio, mimeType, err := s.synth.Synthesize(ctx, entry.script)
		if err == nil {
			m.Audio = audio
			m.MimeType = mimeType
		}
		// Synthesis failure is not fatal; the script still goes out as text.
	}
	return m, nil
}
