package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"mentorbot/internal/model"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSessionCache(newTestClient(t))

	session := &model.SurveySession{
		ID:           "s1",
		UserID:       42,
		Phase:        model.PhaseInstrument,
		CurrentIndex: 7,
		Answers: model.RawAnswers{
			"demo_name": model.FreeText("Ada"),
			"q01":       model.OptionChoice(model.OptionA),
		},
		StartedAt: time.Now(),
	}
	if err := c.Set(ctx, session); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.Phase != model.PhaseInstrument || got.CurrentIndex != 7 {
		t.Errorf("phase/index = %s/%d, want instrument/7", got.Phase, got.CurrentIndex)
	}
	if got.Answers["q01"].Label != model.OptionA {
		t.Errorf("q01 label = %s, want A", got.Answers["q01"].Label)
	}
}

func TestSessionCacheMissReturnsNil(t *testing.T) {
	ctx := context.Background()
	c := NewSessionCache(newTestClient(t))

	got, err := c.Get(ctx, 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session on miss, got %+v", got)
	}
}

func TestSessionCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewSessionCache(newTestClient(t))

	session := &model.SurveySession{ID: "s1", UserID: 7, Phase: model.PhaseDemographic}
	if err := c.Set(ctx, session); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(ctx, 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := c.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("session survived delete")
	}
}

func TestHistoryCacheAppendAndList(t *testing.T) {
	ctx := context.Background()
	c := NewHistoryCache(newTestClient(t))

	turns := []model.ChatTurn{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
		{Role: "user", Content: "tell me more"},
	}
	for _, turn := range turns {
		if err := c.Append(ctx, 1, turn); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := c.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(turns) {
		t.Fatalf("len = %d, want %d", len(got), len(turns))
	}
	for i := range turns {
		if got[i] != turns[i] {
			t.Errorf("turn %d = %+v, want %+v", i, got[i], turns[i])
		}
	}
}

func TestHistoryCacheTrimsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewHistoryCache(newTestClient(t))

	total := model.HistoryLimit + 5
	for i := 0; i < total; i++ {
		turn := model.ChatTurn{Role: "user", Content: fmt.Sprintf("msg %d", i)}
		if err := c.Append(ctx, 1, turn); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := c.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != model.HistoryLimit {
		t.Fatalf("len = %d, want %d", len(got), model.HistoryLimit)
	}
	// The oldest five entries must have been evicted.
	if got[0].Content != "msg 5" {
		t.Errorf("first turn = %q, want %q", got[0].Content, "msg 5")
	}
	if got[len(got)-1].Content != fmt.Sprintf("msg %d", total-1) {
		t.Errorf("last turn = %q, want %q", got[len(got)-1].Content, fmt.Sprintf("msg %d", total-1))
	}
}

func TestHistoryCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewHistoryCache(newTestClient(t))

	if err := c.Append(ctx, 1, model.ChatTurn{Role: "user", Content: "x"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := c.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := c.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len after clear = %d, want 0", len(got))
	}
}
