package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

const redisKeyPrefix = "game:"

type redisState struct {
	client *redis.Client
}

func NewRedisStateRepository(client *redis.Client) StateRepository {
	return &redisState{
		client: client,
	}
}

func (that *redisState) Save(ctx context.Context, key string, state *entity.State) error {
	stateJSON, err := state.Encode()
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, redisKeyPrefix+key, stateJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game state: %w", err)
	}

	return nil
}

func (that *redisState) GetByKey(ctx context.Context, key string) (*entity.State, error) {
	response, err := that.client.Get(ctx, redisKeyPrefix+key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrStateNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	state, err := entity.DecodeState(response)
	if err != nil {
		return nil, fmt.Errorf("failed to decode game state %q: %w", key, err)
	}

	return state, nil
}

func (that *redisState) DeleteByKey(ctx context.Context, key string) error {
	if err := that.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}

	return nil
}
