package telegram

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"mentorbot/internal/config"
)

func userUpdate(updateID, userID int64, text string) Update {
	return Update{
		UpdateID: updateID,
		Message: &Message{
			From: &User{ID: userID},
			Chat: &Chat{ID: userID, Type: "private"},
			Text: text,
		},
	}
}

// A slow first handler call would reorder a same-user batch if updates ran
// on independent goroutines.
func TestEnqueueKeepsPerUserOrder(t *testing.T) {
	router := NewRouter()
	var mu sync.Mutex
	seen := make(map[int64][]string)
	router.SetDefaultText(func(ctx context.Context, c *Client, u Update) {
		if u.Message.Text == "msg 0" {
			time.Sleep(50 * time.Millisecond)
		}
		mu.Lock()
		seen[u.Message.From.ID] = append(seen[u.Message.From.ID], u.Message.Text)
		mu.Unlock()
	})
	bot := NewBot(nil, router, config.DefaultBotConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var id int64
	for i := 0; i < 4; i++ {
		for _, userID := range []int64{1, 2} {
			id++
			bot.enqueue(ctx, userUpdate(id, userID, fmt.Sprintf("msg %d", i)))
		}
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		done := len(seen[1]) == 4 && len(seen[2]) == 4
		mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for updates to drain")
		case <-time.After(10 * time.Millisecond):
		}
	}

	for _, userID := range []int64{1, 2} {
		for i, text := range seen[userID] {
			if want := fmt.Sprintf("msg %d", i); text != want {
				t.Fatalf("user %d update %d = %q, want %q", userID, i, text, want)
			}
		}
	}
}

func TestUpdateUserID(t *testing.T) {
	if got := updateUserID(userUpdate(1, 42, "hi")); got != 42 {
		t.Errorf("message user = %d, want 42", got)
	}
	cb := Update{CallbackQuery: &CallbackQuery{From: &User{ID: 7}, Data: "x"}}
	if got := updateUserID(cb); got != 7 {
		t.Errorf("callback user = %d, want 7", got)
	}
	if got := updateUserID(Update{}); got != 0 {
		t.Errorf("empty update user = %d, want 0", got)
	}
}
