package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

type sqliteState struct {
	conn *sql.DB
}

// NewSQLiteStateRepository expects the game_states table created by storage.Storage.Init.
func NewSQLiteStateRepository(conn *sql.DB) StateRepository {
	return &sqliteState{
		conn: conn,
	}
}

func (that *sqliteState) Save(ctx context.Context, key string, state *entity.State) error {
	stateJSON, err := state.Encode()
	if err != nil {
		return err
	}

	query := `INSERT INTO game_states (state_key, payload) VALUES (?, ?)
		ON CONFLICT(state_key) DO UPDATE SET payload = excluded.payload`

	if _, err = that.conn.ExecContext(ctx, query, key, string(stateJSON)); err != nil {
		return fmt.Errorf("can't save game state: %w", err)
	}

	return nil
}

func (that *sqliteState) GetByKey(ctx context.Context, key string) (*entity.State, error) {
	query := `SELECT payload FROM game_states WHERE state_key = ?`

	var payload string

	err := that.conn.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game state: %w", err)
	}

	state, err := entity.DecodeState([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode game state %q: %w", key, err)
	}

	return state, nil
}

func (that *sqliteState) DeleteByKey(ctx context.Context, key string) error {
	query := `DELETE FROM game_states WHERE state_key = ?`

	if _, err := that.conn.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("can't delete game state: %w", err)
	}

	return nil
}
