package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"postwriter/internal/redis"
)

// RedisStore keeps dialog sessions in redis so a restart (or a second
// replica) does not drop an open dialog. Sessions are stored without TTL:
// a dialog may stay open until the user replies.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("dialog:%d", userID)
}

func (r *RedisStore) Open(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal dialog session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(session.UserID), payload, 0); err != nil {
		return fmt.Errorf("store dialog session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, userID int64) (*Session, bool, error) {
	raw, err := r.client.Get(ctx, sessionKey(userID))
	if err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load dialog session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, false, fmt.Errorf("decode dialog session: %w", err)
	}
	return &session, true, nil
}

func (r *RedisStore) Close(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, sessionKey(userID)); err != nil {
		return fmt.Errorf("clear dialog session: %w", err)
	}
	return nil
}
