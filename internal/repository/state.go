package repository

import (
	"context"

	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

// StateRepository stores one game record per key. GetByKey returns
// apperror.ErrStateNotFound when the key is absent and apperror.ErrCorruptState
// when the stored record cannot be decoded. DeleteByKey is idempotent.
type StateRepository interface {
	Save(ctx context.Context, key string, state *entity.State) error
	GetByKey(ctx context.Context, key string) (*entity.State, error)
	DeleteByKey(ctx context.Context, key string) error
}
