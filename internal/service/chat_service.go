package service

import (
	"context"
	"log"

	"mentorbot/internal/cache"
	"mentorbot/internal/model"
)

// ChatService answers free-form messages with the stored profile and the
// bounded conversation history as context. It works without a profile too,
// just less personally.
type ChatService struct {
	generator NarrativeGenerator
	profiles  *ProfileService
	history   cache.HistoryCache
}

func NewChatService(generator NarrativeGenerator, profiles *ProfileService, history cache.HistoryCache) *ChatService {
	return &ChatService{
		generator: generator,
		profiles:  profiles,
		history:   history,
	}
}

// Reply generates an answer and records both sides of the exchange in the
// rolling history.
func (s *ChatService) Reply(ctx context.Context, userID int64, message string) (string, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	history, err := s.history.List(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, err := s.generator.GenerateChatReply(ctx, profile, history, message)
	if err != nil {
		return "", AsGenerationError(err)
	}

	// History failures only cost context for the next turn; the reply has
	// already been generated, so log and deliver it anyway.
	if err := s.history.Append(ctx, userID, model.ChatTurn{Role: "user", Content: message}); err != nil {
		log.Printf("[ChatService] history append failed for user %d: %v", userID, err)
	} else if err := s.history.Append(ctx, userID, model.ChatTurn{Role: "assistant", Content: reply}); err != nil {
		log.Printf("[ChatService] history append failed for user %d: %v", userID, err)
	}
	return reply, nil
}

// Reset clears the conversation history.
func (s *ChatService) Reset(ctx context.Context, userID int64) error {
	return s.history.Clear(ctx, userID)
}
