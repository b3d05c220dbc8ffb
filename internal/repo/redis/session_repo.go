package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	staffauth "github.com/Zerokoinhub/admin-console/internal/services/staffauth"
)

const staffSessionPrefix = "staff_sessions:"

// SessionRepo stores staff console sessions in redis with the session TTL,
// so an expired login disappears without any cleanup job.
type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session staffauth.SessionRecord) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.Token) == "" || strings.TrimSpace(session.StaffID) == "" {
		return staffauth.ErrInvalidInput
	}

	ttl := ttlFor(session.ExpiresAt)
	fields := map[string]interface{}{
		"staff_id":     session.StaffID,
		"display_name": session.DisplayName,
		"expires_at":   session.ExpiresAt.Unix(),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(session.Token), fields)
	pipe.Expire(ctx, sessionKey(session.Token), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create staff session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, token string) (staffauth.SessionRecord, error) {
	if r.client == nil {
		return staffauth.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return staffauth.SessionRecord{}, fmt.Errorf("get staff session hash: %w", err)
	}
	if len(values) == 0 {
		return staffauth.SessionRecord{}, staffauth.ErrSessionNotFound
	}

	expiresUnix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return staffauth.SessionRecord{}, staffauth.ErrSessionNotFound
	}

	return staffauth.SessionRecord{
		Token:       token,
		StaffID:     values["staff_id"],
		DisplayName: values["display_name"],
		ExpiresAt:   time.Unix(expiresUnix, 0).UTC(),
	}, nil
}

func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete staff session: %w", err)
	}
	return nil
}

func ttlFor(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

func sessionKey(token string) string {
	return staffSessionPrefix + token
}
