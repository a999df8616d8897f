// Package redis holds the draft listing store. A draft lives in Redis for
// the whole wizard session and is promoted to PostgreSQL on publish.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/multikonnect/listing-service/internal/domain"
	apperrors "github.com/multikonnect/listing-service/pkg/errors"
)

const (
	draftKeyPrefix = "draft:"
	indexKeyPrefix = "drafts:"
)

// DraftRepository implements repository.DraftRepository using Redis.
type DraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftRepository creates a new Redis-backed draft repository.
func NewDraftRepository(client *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{client: client, ttl: ttl}
}

func draftKey(vendorID, id string) string {
	return draftKeyPrefix + vendorID + ":" + id
}

func indexKey(vendorID string) string {
	return indexKeyPrefix + vendorID
}

// Save persists a draft with the configured TTL and records it in the
// vendor's draft index.
func (r *DraftRepository) Save(ctx context.Context, draft *domain.Listing) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, draftKey(draft.VendorID, draft.ID), data, r.ttl)
	pipe.SAdd(ctx, indexKey(draft.VendorID), draft.ID)
	pipe.Expire(ctx, indexKey(draft.VendorID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save draft: %w", err)
	}
	return nil
}

// Get retrieves one of a vendor's drafts.
func (r *DraftRepository) Get(ctx context.Context, vendorID, id string) (*domain.Listing, error) {
	data, err := r.client.Get(ctx, draftKey(vendorID, id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("draft", id)
		}
		return nil, fmt.Errorf("redis get draft: %w", err)
	}

	var draft domain.Listing
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

// List returns all of a vendor's live drafts. Index entries whose draft has
// expired are pruned as a side effect.
func (r *DraftRepository) List(ctx context.Context, vendorID string) ([]domain.Listing, error) {
	ids, err := r.client.SMembers(ctx, indexKey(vendorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list drafts: %w", err)
	}

	drafts := make([]domain.Listing, 0, len(ids))
	var expired []any
	for _, id := range ids {
		draft, err := r.Get(ctx, vendorID, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				expired = append(expired, id)
				continue
			}
			return nil, err
		}
		drafts = append(drafts, *draft)
	}

	if len(expired) > 0 {
		if err := r.client.SRem(ctx, indexKey(vendorID), expired...).Err(); err != nil {
			return nil, fmt.Errorf("redis prune draft index: %w", err)
		}
	}
	return drafts, nil
}

// Delete removes a draft and its index entry.
func (r *DraftRepository) Delete(ctx context.Context, vendorID, id string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, draftKey(vendorID, id))
	pipe.SRem(ctx, indexKey(vendorID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete draft: %w", err)
	}
	if del.Val() == 0 {
		return apperrors.NotFound("draft", id)
	}
	return nil
}
