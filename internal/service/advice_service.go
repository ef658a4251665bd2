package service

import (
	"context"
	"errors"
	"math/rand"

	"mentorbot/internal/model"
)

// ErrNoUsableProfile is returned by profile-backed features when the user
// has not completed the survey yet.
var ErrNoUsableProfile = errors.New("no usable profile")

// adviceByType holds the short daily suggestions per personality type.
var adviceByType = map[model.PersonalityType][]string{
	model.TypeAnalytical: {
		"Break today's biggest task into three concrete steps and finish the first one before lunch.",
		"Set a timer before you start researching. When it rings, decide with what you have.",
		"Write down the one question you actually need answered, then ignore everything else for an hour.",
		"Explain a problem you are stuck on to someone outside your field. Simplifying it will show you the gap.",
		"Schedule fifteen minutes of doing nothing. Your best connections appear when the analysis stops.",
	},
	model.TypeEmotional: {
		"Before replying to anything difficult today, name the feeling behind your first reaction.",
		"Reach out to one person you have been meaning to talk to. Keep it short and honest.",
		"When someone frustrates you today, try one guess at what they might be carrying.",
		"Protect one hour for yourself tonight. Caring for others works better from a full tank.",
		"Write down three things that went well today, and who made them possible.",
	},
	model.TypePractical: {
		"Pick the smallest unfinished thing on your list and close it completely before starting anything new.",
		"Before committing to a plan today, ask what you would do if you had half the time.",
		"Delegate one task you are holding onto out of habit, not necessity.",
		"Take the long way once today. Efficiency is a tool, not a lifestyle.",
		"Write tomorrow's first action down tonight. Starting is the expensive part.",
	},
	model.TypeCreative: {
		"Give one idea from last week a deadline today. Unfinished ideas are just weather.",
		"Change where you work for an hour. New rooms ask new questions.",
		"Take the most boring task on your list and find one way to make it yours.",
		"Show someone a rough draft before it feels ready. Their reaction is material.",
		"Pick one constraint on purpose today. Limits are where your kind of thinking starts.",
	},
}

// AdviceService serves a personality-matched suggestion of the day.
type AdviceService struct {
	profiles *ProfileService
	pick     func(n int) int
}

func NewAdviceService(profiles *ProfileService) *AdviceService {
	return &AdviceService{
		profiles: profiles,
		pick:     rand.Intn,
	}
}

// Advice returns one suggestion matched to the user's primary type.
func (s *AdviceService) Advice(ctx context.Context, userID int64) (string, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !profile.Usable() {
		return "", ErrNoUsableProfile
	}
	pool, ok := adviceByType[profile.Type]
	if !ok || len(pool) == 0 {
		return "", ErrNoUsableProfile
	}
	return pool[s.pick(len(pool))], nil
}
