package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "ticTacToeGame"

func wonGameState() *entity.State {
	line := entity.NewWinningLine(0, 0, entity.Horizontal, 3)
	board := entity.NewBoard(4)
	board[0][0], board[0][1], board[0][2] = entity.PlayerX, entity.PlayerX, entity.PlayerX
	board[1][0], board[1][1] = entity.PlayerO, entity.PlayerO

	return &entity.State{
		Board:         board,
		CurrentPlayer: entity.PlayerX,
		GridSize:      4,
		Player1Symbol: entity.PlayerX,
		Player2Symbol: entity.PlayerO,
		KAlignment:    3,
		GameWon:       true,
		Winner:        string(entity.PlayerX),
		WinningLine:   &line,
		Scores:        entity.Scores{"X": 2, "O": 1, entity.DrawKey: 0},
	}
}

// runStateRepositoryTests checks the behavior every StateRepository shares.
// writeRaw stores an undecoded payload under a key.
func runStateRepositoryTests(t *testing.T, ctx context.Context, repo StateRepository, writeRaw func(key, payload string)) {
	t.Helper()

	t.Run("Save and GetByKey round trip", func(t *testing.T) {
		// Given: a finished game state
		state := wonGameState()

		// When: it is saved and read back
		require.NoError(t, repo.Save(ctx, testKey, state))
		loaded, err := repo.GetByKey(ctx, testKey)

		// Then: the loaded state equals the saved one
		require.NoError(t, err)
		assert.Equal(t, state, loaded)
	})

	t.Run("Save overwrites the previous record", func(t *testing.T) {
		state := wonGameState()
		require.NoError(t, repo.Save(ctx, testKey, state))

		next := entity.DefaultState()
		require.NoError(t, repo.Save(ctx, testKey, &next))

		loaded, err := repo.GetByKey(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, &next, loaded)
	})

	t.Run("GetByKey on a missing key", func(t *testing.T) {
		_, err := repo.GetByKey(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrStateNotFound)
	})

	t.Run("DeleteByKey is idempotent", func(t *testing.T) {
		// Given: a saved record
		require.NoError(t, repo.Save(ctx, testKey, wonGameState()))

		// When: it is deleted twice
		require.NoError(t, repo.DeleteByKey(ctx, testKey))
		require.NoError(t, repo.DeleteByKey(ctx, testKey))

		// Then: it is gone
		_, err := repo.GetByKey(ctx, testKey)
		require.ErrorIs(t, err, apperror.ErrStateNotFound)
	})

	t.Run("Partial record is loaded with defaults", func(t *testing.T) {
		writeRaw("legacy", `{"board":[["X","",""],["","",""],["","",""]],"currentPlayer":"O","gridSize":3}`)

		loaded, err := repo.GetByKey(ctx, "legacy")

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, loaded.CurrentPlayer)
		assert.Equal(t, 3, loaded.KAlignment)
		assert.Equal(t, entity.NewScores(), loaded.Scores)
	})

	t.Run("Malformed record is reported as corrupt", func(t *testing.T) {
		writeRaw("broken", `{"board":[[`)

		_, err := repo.GetByKey(ctx, "broken")

		require.ErrorIs(t, err, apperror.ErrCorruptState)
	})
}
