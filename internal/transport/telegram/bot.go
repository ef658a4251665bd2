package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	"mentorbot/internal/config"
)

// queueSize bounds the per-user backlog before the run loop blocks.
const queueSize = 16

// Bot runs the long-poll loop and hands updates to the router. Updates from
// the same user are dispatched sequentially through a per-user queue so two
// quick messages cannot be processed out of order; updates with no user
// attached run on their own goroutine.
type Bot struct {
	client      *Client
	router      *Router
	pollTimeout int

	mu     sync.Mutex
	queues map[int64]chan Update
}

func NewBot(client *Client, router *Router, cfg *config.BotConfig) *Bot {
	return &Bot{
		client:      client,
		router:      router,
		pollTimeout: cfg.PollTimeout,
		queues:      make(map[int64]chan Update),
	}
}

// Run polls until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	log.Println("[Bot] polling for updates")
	var offset int64
	for {
		select {
		case <-ctx.Done():
			log.Println("[Bot] stopping")
			return ctx.Err()
		default:
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[Bot] getUpdates failed: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			b.enqueue(ctx, update)
		}
	}
}

// enqueue routes the update onto its user's queue, starting a drain
// goroutine for users seen for the first time.
func (b *Bot) enqueue(ctx context.Context, update Update) {
	userID := updateUserID(update)
	if userID == 0 {
		go b.dispatch(ctx, update)
		return
	}

	b.mu.Lock()
	queue, ok := b.queues[userID]
	if !ok {
		queue = make(chan Update, queueSize)
		b.queues[userID] = queue
		go b.drain(ctx, queue)
	}
	b.mu.Unlock()

	select {
	case queue <- update:
	case <-ctx.Done():
	}
}

// drain processes one user's updates in arrival order.
func (b *Bot) drain(ctx context.Context, queue chan Update) {
	for {
		select {
		case update := <-queue:
			b.dispatch(ctx, update)
		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes one update, containing any handler panic to that update.
func (b *Bot) dispatch(ctx context.Context, update Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Bot] handler panic on update %d: %v", update.UpdateID, r)
		}
	}()

	if !b.router.Dispatch(ctx, b.client, update) {
		log.Printf("[Bot] update %d dropped (no handler)", update.UpdateID)
	}
}

// updateUserID extracts the sending user, or 0 when the update has none.
func updateUserID(update Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	}
	return 0
}
