package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/repository"
)

const sessionKeyPrefix = "session:"

// sessionRepository stores sessions in Redis keyed by the token's jti.
// The key TTL mirrors the session expiry, so revoked and expired
// sessions both disappear without a sweeper.
type sessionRepository struct {
	client     *redislib.Client
	defaultTTL time.Duration
}

func NewSessionRepository(client *redislib.Client, defaultTTL time.Duration) repository.SessionRepository {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &sessionRepository{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.defaultTTL)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}
