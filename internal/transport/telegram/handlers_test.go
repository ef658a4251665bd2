package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"mentorbot/internal/config"
	"mentorbot/internal/model"
	"mentorbot/internal/service"
)

type recordedEvent struct {
	msgType string
	payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastEvent(msgType string, payload interface{}) {
	b.mu.Lock()
	b.events = append(b.events, recordedEvent{msgType: msgType, payload: payload})
	b.mu.Unlock()
}

func testClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	t.Cleanup(srv.Close)
	cfg := config.DefaultBotConfig()
	cfg.APIBaseURL = srv.URL
	cfg.Token = "test-token"
	return NewClient(cfg)
}

func TestGenerationFailedEventCarriesProfileUser(t *testing.T) {
	events := &recordingBroadcaster{}
	h := &Handlers{events: events}
	client := testClient(t)

	// Group chat ids differ from the surveyed user's id.
	const chatID, userID = -100500, 42
	step := &service.StepResult{
		Kind:    service.StepComplete,
		Profile: &model.PersonalityProfile{UserID: userID, FailureReason: model.FailureQuotaExceeded},
		GenErr:  &service.GenerationError{Reason: model.FailureQuotaExceeded},
	}
	h.sendStep(context.Background(), client, chatID, step)

	events.mu.Lock()
	defer events.mu.Unlock()
	if len(events.events) != 1 || events.events[0].msgType != "generation_failed" {
		t.Fatalf("events = %+v, want one generation_failed", events.events)
	}
	payload := events.events[0].payload.(map[string]interface{})
	if got := payload["userId"]; got != int64(userID) {
		t.Errorf("userId = %v, want %d", got, int64(userID))
	}
}
