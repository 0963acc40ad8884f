package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

// memoryState keeps encoded records for the lifetime of the process.
type memoryState struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStateRepository() StateRepository {
	return &memoryState{
		records: make(map[string][]byte),
	}
}

func (that *memoryState) Save(_ context.Context, key string, state *entity.State) error {
	stateJSON, err := state.Encode()
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.records[key] = stateJSON

	return nil
}

func (that *memoryState) GetByKey(_ context.Context, key string) (*entity.State, error) {
	that.mu.RLock()
	record, ok := that.records[key]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrStateNotFound
	}

	state, err := entity.DecodeState(record)
	if err != nil {
		return nil, fmt.Errorf("failed to decode game state %q: %w", key, err)
	}

	return state, nil
}

func (that *memoryState) DeleteByKey(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.records, key)

	return nil
}
