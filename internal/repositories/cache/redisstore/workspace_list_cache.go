// Package redisstore caches backend answers in Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
)

const (
	listKeyPrefix  = "wslist:"
	defaultListTTL = 2 * time.Minute
	connectTimeout = 5 * time.Second
)

// WorkspaceListCache stores each user's owned and shared workspace lists.
type WorkspaceListCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.WorkspaceListCache = (*WorkspaceListCache)(nil)

// NewWorkspaceListCache connects to redisURL and checks the connection.
func NewWorkspaceListCache(redisURL string, ttl time.Duration) (*WorkspaceListCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewWorkspaceListCacheWithClient(client, ttl), nil
}

// NewWorkspaceListCacheWithClient wraps an existing client.
func NewWorkspaceListCacheWithClient(client *redis.Client, ttl time.Duration) *WorkspaceListCache {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &WorkspaceListCache{client: client, ttl: ttl}
}

func (c *WorkspaceListCache) key(userID string) string {
	return listKeyPrefix + userID
}

// GetWorkspaceList returns apperrors.ErrNotFound on a miss.
func (c *WorkspaceListCache) GetWorkspaceList(ctx context.Context, userID string) (*domain.WorkspaceList, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read workspace list: %w", err)
	}

	var list domain.WorkspaceList
	if err := json.Unmarshal(raw, &list); err != nil {
		// a corrupt entry is a miss; drop it so the next load repopulates
		_ = c.client.Del(ctx, c.key(userID)).Err()
		return nil, apperrors.ErrNotFound
	}
	return &list, nil
}

// SetWorkspaceList stores the lists for the configured TTL.
func (c *WorkspaceListCache) SetWorkspaceList(ctx context.Context, userID string, list *domain.WorkspaceList) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal workspace list: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("save workspace list: %w", err)
	}
	return nil
}

// InvalidateWorkspaceList drops the cached lists of userID.
func (c *WorkspaceListCache) InvalidateWorkspaceList(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate workspace list: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *WorkspaceListCache) Close() error {
	return c.client.Close()
}
