package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"mentorbot/internal/config"
	"mentorbot/internal/model"
	"mentorbot/internal/questionbank"
)

// GenerationError is the categorized failure of a narrative call. Expected
// failures (quota, auth, transport) travel as values, never as panics.
type GenerationError struct {
	Reason model.GenerationFailure
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("narrative generation failed (%s): %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// AsGenerationError extracts a *GenerationError, defaulting to the unknown
// category for errors that did not come from the generator boundary.
func AsGenerationError(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &GenerationError{Reason: model.FailureUnknown, Err: err}
}

// ProfileInput is the structured payload handed to the narrative generator:
// the full raw answer set joined with the scoring result.
type ProfileInput struct {
	Demographic map[string]string   `json:"demographic"`
	Choices     map[string]string   `json:"choices"`
	Scoring     model.ScoringResult `json:"scoring"`
}

// NarrativeGenerator turns structured survey results into prose. There is
// exactly one production implementation (OpenAIGenerator) and one
// deterministic test implementation (StaticGenerator), selected via
// configuration at construction time.
type NarrativeGenerator interface {
	GenerateNarrative(ctx context.Context, input *ProfileInput) (string, error)
	GenerateChatReply(ctx context.Context, profile *model.PersonalityProfile, history []model.ChatTurn, message string) (string, error)
}

// OpenAIGenerator calls an OpenAI-compatible chat-completions endpoint.
type OpenAIGenerator struct {
	config *config.AIConfig
	client *http.Client
}

// NewOpenAIGenerator creates the production narrative generator.
func NewOpenAIGenerator(cfg *config.AIConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

const profileSystemPrompt = `You are a professional psychologist writing a personal strengths profile.
You receive a person's demographic answers, their 34 forced-choice selections
with the personality type each selection counts toward, and the aggregated
type distribution with primary and secondary types.

Write a warm, specific, long-form profile addressed to the person directly:
their core strengths, thinking and decision style, how they recharge, where
their blind spots likely are, and three concrete suggestions for growth.
Ground every claim in the distribution and the individual choices. Avoid
generic statements that would fit anyone.`

// GenerateNarrative composes the profile prompt and calls the model.
func (g *OpenAIGenerator) GenerateNarrative(ctx context.Context, input *ProfileInput) (string, error) {
	user := buildProfilePrompt(input)
	return g.complete(ctx, g.config.Model, profileSystemPrompt, nil, user)
}

const chatSystemPrompt = `You are a supportive personal mentor. You know the user's
personality profile and adapt your tone to their primary type: structured and
precise for analytical, warm and validating for emotional, concrete and
action-oriented for practical, playful and metaphorical for creative.
Answer in the user's language. Be honest, never flattering.`

// GenerateChatReply answers a free-form message with the profile and the
// bounded conversation history as context.
func (g *OpenAIGenerator) GenerateChatReply(ctx context.Context, profile *model.PersonalityProfile, history []model.ChatTurn, message string) (string, error) {
	system := chatSystemPrompt
	if profile.Usable() {
		system += "\n\nUser's profile:\n" + profile.ProfileText
	}
	return g.complete(ctx, g.config.ChatModel, system, history, message)
}

// complete performs one chat-completions round trip, mapping HTTP failures
// to GenerationError categories.
func (g *OpenAIGenerator) complete(ctx context.Context, modelName, system string, history []model.ChatTurn, user string) (string, error) {
	messages := []map[string]string{{"role": "system", "content": system}}
	for _, turn := range history {
		messages = append(messages, map[string]string{"role": turn.Role, "content": turn.Content})
	}
	messages = append(messages, map[string]string{"role": "user", "content": user})

	reqBody := map[string]interface{}{
		"model":       modelName,
		"temperature": g.config.Temperature,
		"messages":    messages,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Reason: model.FailureUnknown, Err: err}
	}

	url := g.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", &GenerationError{Reason: model.FailureUnknown, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// Timeouts and connection failures are all transport.
		return "", &GenerationError{Reason: model.FailureTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Reason: model.FailureTransport, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		reason := model.FailureUnknown
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			reason = model.FailureQuotaExceeded
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			reason = model.FailureAuth
		case resp.StatusCode >= 500:
			reason = model.FailureTransport
		}
		log.Printf("[Narrative] API error %d: %s", resp.StatusCode, truncate(string(body), 300))
		return "", &GenerationError{
			Reason: reason,
			Err:    fmt.Errorf("api returned %d", resp.StatusCode),
		}
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", &GenerationError{Reason: model.FailureUnknown, Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &GenerationError{Reason: model.FailureUnknown, Err: errors.New("empty completion")}
	}

	return completion.Choices[0].Message.Content, nil
}

// buildProfilePrompt renders the answer set in a stable order so identical
// inputs produce identical prompts.
func buildProfilePrompt(input *ProfileInput) string {
	var sb strings.Builder

	sb.WriteString("About the person:\n")
	for _, id := range sortedKeys(input.Demographic) {
		fmt.Fprintf(&sb, "- %s: %s\n", id, input.Demographic[id])
	}

	sb.WriteString("\nInstrument selections (item: chosen option):\n")
	for _, id := range sortedKeys(input.Choices) {
		fmt.Fprintf(&sb, "- %s: %s\n", id, input.Choices[id])
	}

	fmt.Fprintf(&sb, "\nType distribution:\n")
	for _, t := range model.PersonalityTypes {
		fmt.Fprintf(&sb, "- %s: %d\n", t, input.Scoring.TypeCounts[t])
	}
	fmt.Fprintf(&sb, "\nPrimary type: %s\nSecondary type: %s\n",
		input.Scoring.PrimaryType, input.Scoring.SecondaryType)

	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// StaticGenerator is the deterministic generator used in tests and when no
// API key is configured. It never fails unless told to.
type StaticGenerator struct {
	// Fail, when set, makes every call return this error.
	Fail *GenerationError
}

// NewStaticGenerator creates the offline generator.
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) GenerateNarrative(ctx context.Context, input *ProfileInput) (string, error) {
	if g.Fail != nil {
		return "", g.Fail
	}
	return fmt.Sprintf(
		"Your strongest side is the %s one, supported by the %s. "+
			"This offline profile was produced without a language model; "+
			"configure an API key for a full narrative.",
		input.Scoring.PrimaryType.DisplayName(),
		input.Scoring.SecondaryType.DisplayName()), nil
}

func (g *StaticGenerator) GenerateChatReply(ctx context.Context, profile *model.PersonalityProfile, history []model.ChatTurn, message string) (string, error) {
	if g.Fail != nil {
		return "", g.Fail
	}
	return "I hear you. (The conversational model is not configured.)", nil
}

// BuildProfileInput splits raw answers into demographic text and instrument
// choices for the generator payload.
func BuildProfileInput(bank *questionbank.Bank, answers model.RawAnswers, scoring model.ScoringResult) *ProfileInput {
	input := &ProfileInput{
		Demographic: make(map[string]string),
		Choices:     make(map[string]string),
		Scoring:     scoring,
	}
	for id, answer := range answers {
		switch answer.Kind {
		case model.AnswerFreeText:
			input.Demographic[id] = answer.Text
		case model.AnswerOption:
			if q := bank.InstrumentQuestion(id); q != nil {
				input.Choices[id] = string(answer.Label) + ": " + q.Options[answer.Label]
			}
		}
	}
	return input
}
