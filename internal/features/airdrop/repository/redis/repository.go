package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"airdrop-tracker-backend/internal/features/airdrop/models"
	"airdrop-tracker-backend/internal/features/airdrop/repository"
)

const (
	keyPrefixAirdrop    = "airdrop:"
	keyPrefixOwnerIndex = "airdrops:owner:"
	keySequence         = "airdrops:seq"
)

type redisRepository struct {
	client *redis.Client
}

// NewRedisAirdropRepository returns the Redis-backed repository. Records are
// stored as JSON values with a per-owner sorted set keyed by sequence number
// for newest-first listings.
func NewRedisAirdropRepository(client *redis.Client) repository.AirdropRepository {
	return &redisRepository{client: client}
}

func makeAirdropKey(id string) string {
	return keyPrefixAirdrop + id
}

func makeOwnerIndexKey(ownerID string) string {
	return keyPrefixOwnerIndex + ownerID
}

func (r *redisRepository) NextSeq(ctx context.Context, n int64) (int64, error) {
	return r.client.IncrBy(ctx, keySequence, n).Result()
}

func (r *redisRepository) Create(ctx context.Context, airdrop *models.Airdrop) error {
	data, err := json.Marshal(airdrop)
	if err != nil {
		return fmt.Errorf("failed to marshal airdrop: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeAirdropKey(airdrop.ID), data, 0)
	pipe.ZAdd(ctx, makeOwnerIndexKey(airdrop.OwnerID), redis.Z{
		Score:  float64(airdrop.Seq),
		Member: airdrop.ID,
	})

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetByID(ctx context.Context, id string) (*models.Airdrop, error) {
	data, err := r.client.Get(ctx, makeAirdropKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrAirdropNotFound
	}
	if err != nil {
		return nil, err
	}

	var airdrop models.Airdrop
	if err := json.Unmarshal(data, &airdrop); err != nil {
		return nil, err
	}

	return &airdrop, nil
}

func (r *redisRepository) Update(ctx context.Context, airdrop *models.Airdrop) error {
	exists, err := r.client.Exists(ctx, makeAirdropKey(airdrop.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return repository.ErrAirdropNotFound
	}

	data, err := json.Marshal(airdrop)
	if err != nil {
		return fmt.Errorf("failed to marshal airdrop: %w", err)
	}

	return r.client.Set(ctx, makeAirdropKey(airdrop.ID), data, 0).Err()
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	airdrop, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeAirdropKey(id))
	pipe.ZRem(ctx, makeOwnerIndexKey(airdrop.OwnerID), id)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Airdrop, error) {
	ids, err := r.client.ZRevRange(ctx, makeOwnerIndexKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Airdrop{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeAirdropKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	res := make([]*models.Airdrop, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Index entry without a value, skip rather than fail the listing.
			continue
		}
		var airdrop models.Airdrop
		if err := json.Unmarshal([]byte(s), &airdrop); err != nil {
			return nil, err
		}
		res = append(res, &airdrop)
	}

	return res, nil
}
