package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

const viewStateKeyPrefix = "funeral-admin:view-state:"

// ViewStateRepository keeps each user's admin view state in Redis.
type ViewStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewStateRepository constructs a view-state store. A nil client behaves as an empty store.
func NewViewStateRepository(client *redis.Client, ttl time.Duration) *ViewStateRepository {
	return &ViewStateRepository{client: client, ttl: ttl}
}

// Get loads the stored state. ErrCacheMiss means nothing is stored.
func (r *ViewStateRepository) Get(ctx context.Context, userID string) (*models.ViewState, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}
	key := viewStateKey(userID)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var state models.ViewState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal view state for %s: %w", key, err)
	}
	return &state, nil
}

// Save stores the state and refreshes its TTL.
func (r *ViewStateRepository) Save(ctx context.Context, userID string, state *models.ViewState) error {
	if r.client == nil {
		return nil
	}
	key := viewStateKey(userID)
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal view state for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete drops the stored state.
func (r *ViewStateRepository) Delete(ctx context.Context, userID string) error {
	if r.client == nil {
		return nil
	}
	key := viewStateKey(userID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

func viewStateKey(userID string) string {
	return viewStateKeyPrefix + userID
}
