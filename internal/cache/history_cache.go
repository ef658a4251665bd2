package cache

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"

	"mentorbot/internal/model"
)

// HistoryCache keeps the rolling per-user conversation history used as
// chat context. The list is trimmed to model.HistoryLimit on every
// append so memory stays bounded.
type HistoryCache interface {
	Append(ctx context.Context, userID int64, turn model.ChatTurn) error
	List(ctx context.Context, userID int64) ([]model.ChatTurn, error)
	Clear(ctx context.Context, userID int64) error
}

type historyCache struct {
	client *redis.Client
}

func NewHistoryCache(client *redis.Client) HistoryCache {
	return &historyCache{
		client: client,
	}
}

func historyKey(userID int64) string {
	return "history:" + strconv.FormatInt(userID, 10)
}

func (c *historyCache) Append(ctx context.Context, userID int64, turn model.ChatTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	key := historyKey(userID)
	pipe := c.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -int64(model.HistoryLimit), -1)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *historyCache) List(ctx context.Context, userID int64) ([]model.ChatTurn, error) {
	items, err := c.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	turns := make([]model.ChatTurn, 0, len(items))
	for _, item := range items {
		var turn model.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (c *historyCache) Clear(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, historyKey(userID)).Err()
}
