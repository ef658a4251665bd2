package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"mentorbot/internal/model"
)

// sessionTTL bounds how long an abandoned survey survives before the
// user has to start over.
const sessionTTL = 24 * time.Hour

type SessionCache interface {
	Set(ctx context.Context, session *model.SurveySession) error
	Get(ctx context.Context, userID int64) (*model.SurveySession, error)
	Delete(ctx context.Context, userID int64) error
}

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func sessionKey(userID int64) string {
	return "survey:" + strconv.FormatInt(userID, 10)
}

func (c *sessionCache) Set(ctx context.Context, session *model.SurveySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(session.UserID), data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, userID int64) (*model.SurveySession, error) {
	data, err := c.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.SurveySession
	err = json.Unmarshal([]byte(data), &session)
	return &session, err
}

func (c *sessionCache) Delete(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, sessionKey(userID)).Err()
}
