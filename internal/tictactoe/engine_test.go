package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, settings Settings) *Engine {
	t.Helper()

	engine, err := NewEngine(settings)
	require.NoError(t, err)

	return engine
}

func playMoves(t *testing.T, engine *Engine, moves ...[2]int) {
	t.Helper()

	for _, move := range moves {
		require.NoError(t, engine.PlayTurn(move[0], move[1]))
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("Default settings", func(t *testing.T) {
		// When: a new engine is created with defaults
		engine := newTestEngine(t, DefaultSettings())

		// Then: the engine is an empty 3x3 game with X to move
		assert.Equal(t, 3, engine.GetGridSize())
		assert.Equal(t, 3, engine.GetKAlignment())
		assert.Equal(t, entity.NewBoard(3), engine.GetBoard())
		assert.Equal(t, entity.PlayerX, engine.GetCurrentPlayer())
		assert.Equal(t, entity.Players{First: entity.PlayerX, Second: entity.PlayerO}, engine.GetPlayerSymbols())
		assert.Equal(t, entity.Outcome{}, engine.GetGameStatus())
		assert.Equal(t, entity.NewScores(), engine.GetScores())
		_, ok := engine.GetWinningLine()
		assert.False(t, ok)
	})

	t.Run("Rejects invalid settings", func(t *testing.T) {
		_, err := NewEngine(Settings{GridSize: 14, KAlignment: 3, PlayerSymbol: entity.PlayerX})
		require.ErrorIs(t, err, apperror.ErrInvalidGridSize)

		_, err = NewEngine(Settings{GridSize: 3, KAlignment: 4, PlayerSymbol: entity.PlayerX})
		require.ErrorIs(t, err, apperror.ErrInvalidAlignment)

		_, err = NewEngine(Settings{GridSize: 3, KAlignment: 3, PlayerSymbol: "Z"})
		require.ErrorIs(t, err, apperror.ErrInvalidSymbol)
	})
}

func TestEngine_PlayTurn(t *testing.T) {
	t.Run("Valid move switches the player", func(t *testing.T) {
		// Given: a new game
		engine := newTestEngine(t, DefaultSettings())

		// When: X plays the center
		err := engine.PlayTurn(1, 1)

		// Then: the mark is placed and O is to move
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, engine.GetBoard()[1][1])
		assert.Equal(t, entity.PlayerO, engine.GetCurrentPlayer())
		assert.False(t, engine.IsFinished())
	})

	t.Run("X wins on the top row", func(t *testing.T) {
		// Given: a new 3x3 game
		engine := newTestEngine(t, DefaultSettings())

		// When: X@0,0 O@1,1 X@0,1 O@2,2 X@0,2
		playMoves(t, engine, [2]int{0, 0}, [2]int{1, 1}, [2]int{0, 1}, [2]int{2, 2}, [2]int{0, 2})

		// Then: X wins with a horizontal line from (0,0) and gets a point
		assert.Equal(t, entity.Outcome{GameWon: true, Winner: "X"}, engine.GetGameStatus())
		line, ok := engine.GetWinningLine()
		require.True(t, ok)
		assert.Equal(t, 0, line.StartRow)
		assert.Equal(t, 0, line.StartCol)
		assert.Equal(t, entity.Horizontal, line.Direction)
		assert.Equal(t, 3, line.Length)
		assert.Equal(t, 1, engine.GetScores()["X"])
		assert.Equal(t, 0, engine.GetScores()["O"])

		// And: the winner keeps the turn
		assert.Equal(t, entity.PlayerX, engine.GetCurrentPlayer())
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a new 3x3 game
		engine := newTestEngine(t, DefaultSettings())

		// When: the board is filled as X,O,X / X,O,O / O,X,X
		playMoves(t, engine,
			[2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2},
			[2]int{1, 1}, [2]int{1, 0}, [2]int{1, 2},
			[2]int{2, 1}, [2]int{2, 0}, [2]int{2, 2},
		)

		// Then: the game is a draw
		expected := entity.Board{
			{entity.PlayerX, entity.PlayerO, entity.PlayerX},
			{entity.PlayerX, entity.PlayerO, entity.PlayerO},
			{entity.PlayerO, entity.PlayerX, entity.PlayerX},
		}
		assert.Equal(t, expected, engine.GetBoard())
		assert.Equal(t, entity.Outcome{GameWon: true, Winner: entity.DrawKey}, engine.GetGameStatus())
		assert.True(t, engine.GetGameStatus().IsDraw())
		assert.Equal(t, 1, engine.GetScores()[entity.DrawKey])
		assert.Equal(t, entity.PlayerX, engine.GetCurrentPlayer())
		_, ok := engine.GetWinningLine()
		assert.False(t, ok)
	})

	t.Run("Win on the last empty cell is a win, not a draw", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())

		// X O X / O X O / O X _ then X plays (2,2)
		playMoves(t, engine,
			[2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2},
			[2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2},
			[2]int{2, 1}, [2]int{2, 0}, [2]int{2, 2},
		)

		assert.Equal(t, entity.Outcome{GameWon: true, Winner: "X"}, engine.GetGameStatus())
		assert.Equal(t, 0, engine.GetScores()[entity.DrawKey])
	})

	t.Run("Rejected moves never mutate the game", func(t *testing.T) {
		// Given: a game where X holds the center
		engine := newTestEngine(t, DefaultSettings())
		playMoves(t, engine, [2]int{1, 1})
		before := engine.State()

		// When: occupied and out of range cells are played repeatedly
		for i := 0; i < 3; i++ {
			require.ErrorIs(t, engine.PlayTurn(1, 1), apperror.ErrCellOccupied)
			require.ErrorIs(t, engine.PlayTurn(3, 0), apperror.ErrInvalidCell)
			require.ErrorIs(t, engine.PlayTurn(0, -1), apperror.ErrInvalidCell)
		}

		// Then: nothing changed
		assert.Equal(t, before, engine.State())
	})

	t.Run("Moves after the end are rejected", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())
		playMoves(t, engine, [2]int{0, 0}, [2]int{1, 1}, [2]int{0, 1}, [2]int{2, 2}, [2]int{0, 2})
		before := engine.State()

		err := engine.PlayTurn(2, 0)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, engine.State())
	})

	t.Run("K smaller than N on a bigger grid", func(t *testing.T) {
		// Given: a 5x5 grid with K=4
		engine := newTestEngine(t, Settings{GridSize: 5, KAlignment: 4, PlayerSymbol: entity.PlayerX})

		// When: X builds a vertical line in column 4 while O plays column 0
		playMoves(t, engine,
			[2]int{1, 4}, [2]int{0, 0},
			[2]int{2, 4}, [2]int{1, 0},
			[2]int{3, 4}, [2]int{2, 0},
		)
		require.False(t, engine.IsFinished())
		require.NoError(t, engine.PlayTurn(4, 4))

		// Then: X wins with a vertical line starting at (1,4)
		line, ok := engine.GetWinningLine()
		require.True(t, ok)
		assert.Equal(t, entity.NewWinningLine(1, 4, entity.Vertical, 4), line)
	})
}

func TestEngine_ResizeBoard(t *testing.T) {
	t.Run("Resize starts a fresh board and keeps scores", func(t *testing.T) {
		// Given: a game X has won
		engine := newTestEngine(t, DefaultSettings())
		playMoves(t, engine, [2]int{0, 0}, [2]int{1, 1}, [2]int{0, 1}, [2]int{2, 2}, [2]int{0, 2})

		// When: the grid is resized to 6
		err := engine.ResizeBoard(6)

		// Then: an empty 6x6 game starts with X to move and the scoreboard is kept
		require.NoError(t, err)
		assert.Equal(t, 6, engine.GetGridSize())
		assert.Equal(t, entity.NewBoard(6), engine.GetBoard())
		assert.Equal(t, entity.PlayerX, engine.GetCurrentPlayer())
		assert.False(t, engine.IsFinished())
		_, ok := engine.GetWinningLine()
		assert.False(t, ok)
		assert.Equal(t, 1, engine.GetScores()["X"])
		assert.Equal(t, 3, engine.GetKAlignment())
	})

	t.Run("Resize clamps K to the new size", func(t *testing.T) {
		engine := newTestEngine(t, Settings{GridSize: 7, KAlignment: 6, PlayerSymbol: entity.PlayerX})

		require.NoError(t, engine.ResizeBoard(4))

		assert.Equal(t, 4, engine.GetKAlignment())
	})

	t.Run("Invalid sizes are rejected without mutation", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())
		playMoves(t, engine, [2]int{0, 0})
		before := engine.State()

		require.ErrorIs(t, engine.ResizeBoard(2), apperror.ErrInvalidGridSize)
		require.ErrorIs(t, engine.ResizeBoard(14), apperror.ErrInvalidGridSize)

		assert.Equal(t, before, engine.State())
	})
}

func TestEngine_SetKAlignment(t *testing.T) {
	t.Run("K above the grid size is rejected", func(t *testing.T) {
		// Given: a 3x3 game
		engine := newTestEngine(t, DefaultSettings())

		// When: K=4 is requested
		err := engine.SetKAlignment(4)

		// Then: it fails and K stays 3
		require.ErrorIs(t, err, apperror.ErrInvalidAlignment)
		assert.Equal(t, 3, engine.GetKAlignment())
	})

	t.Run("K below three is rejected", func(t *testing.T) {
		engine := newTestEngine(t, Settings{GridSize: 5, KAlignment: 4, PlayerSymbol: entity.PlayerX})

		require.ErrorIs(t, engine.SetKAlignment(2), apperror.ErrInvalidAlignment)
		assert.Equal(t, 4, engine.GetKAlignment())
	})

	t.Run("Changing K clears the outcome but keeps the board", func(t *testing.T) {
		// Given: a 5x5 game won by X with K=3
		engine := newTestEngine(t, Settings{GridSize: 5, KAlignment: 3, PlayerSymbol: entity.PlayerX})
		playMoves(t, engine, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{0, 2})
		require.True(t, engine.IsFinished())
		board := engine.GetBoard()

		// When: K is raised to 4
		require.NoError(t, engine.SetKAlignment(4))

		// Then: the outcome and line are gone, the marks stay and are not rechecked
		assert.Equal(t, entity.Outcome{}, engine.GetGameStatus())
		_, ok := engine.GetWinningLine()
		assert.False(t, ok)
		assert.Equal(t, board, engine.GetBoard())
		assert.Equal(t, 1, engine.GetScores()["X"])
	})
}

func TestEngine_SetPlayerSymbol(t *testing.T) {
	t.Run("Player one takes O and gets the turn", func(t *testing.T) {
		// Given: a game where X has moved and O is to play
		engine := newTestEngine(t, DefaultSettings())
		playMoves(t, engine, [2]int{0, 0})
		require.Equal(t, entity.PlayerO, engine.GetCurrentPlayer())

		// When: player one switches to O
		require.NoError(t, engine.SetPlayerSymbol(entity.PlayerO))

		// Then: O belongs to player one and it is O's turn, the board is kept
		assert.Equal(t, entity.Players{First: entity.PlayerO, Second: entity.PlayerX}, engine.GetPlayerSymbols())
		assert.Equal(t, entity.PlayerO, engine.GetCurrentPlayer())
		assert.Equal(t, entity.PlayerX, engine.GetBoard()[0][0])
	})

	t.Run("Switching back to X while O is to move forces X", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())
		playMoves(t, engine, [2]int{0, 0})

		require.NoError(t, engine.SetPlayerSymbol(entity.PlayerX))

		assert.Equal(t, entity.PlayerX, engine.GetCurrentPlayer())
	})

	t.Run("Unknown symbols are rejected", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())

		require.ErrorIs(t, engine.SetPlayerSymbol("Z"), apperror.ErrInvalidSymbol)
		assert.Equal(t, entity.PlayerX, engine.GetPlayerSymbols().First)
	})

	t.Run("O opens after restart when player one is O", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())
		require.NoError(t, engine.SetPlayerSymbol(entity.PlayerO))

		playMoves(t, engine, [2]int{0, 0})
		engine.RestartGame()

		assert.Equal(t, entity.PlayerO, engine.GetCurrentPlayer())
	})
}

func TestEngine_RestartGame(t *testing.T) {
	// Given: a finished game on a 4x4 grid
	engine := newTestEngine(t, Settings{GridSize: 4, KAlignment: 3, PlayerSymbol: entity.PlayerX})
	playMoves(t, engine, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{0, 2})
	require.True(t, engine.IsFinished())

	// When: the game is restarted
	engine.RestartGame()

	// Then: the board is empty, X opens, and scores survive
	assert.Equal(t, entity.NewBoard(4), engine.GetBoard())
	assert.Equal(t, entity.PlayerX, engine.GetCurrentPlayer())
	assert.Equal(t, entity.Outcome{}, engine.GetGameStatus())
	assert.Equal(t, 1, engine.GetScores()["X"])
}

func TestEngine_Scores(t *testing.T) {
	t.Run("IncrementScore ignores unknown keys", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())

		engine.IncrementScore("X")
		engine.IncrementScore(entity.DrawKey)
		engine.IncrementScore("Z")
		engine.IncrementScore("")

		assert.Equal(t, entity.Scores{"X": 1, "O": 0, entity.DrawKey: 1}, engine.GetScores())
	})

	t.Run("ResetScores zeroes every counter", func(t *testing.T) {
		engine := newTestEngine(t, DefaultSettings())
		engine.IncrementScore("O")

		engine.ResetScores()

		assert.Equal(t, entity.NewScores(), engine.GetScores())
	})
}

func TestEngine_ReturnedValuesAreCopies(t *testing.T) {
	// Given: a game with one move
	engine := newTestEngine(t, DefaultSettings())
	playMoves(t, engine, [2]int{0, 0})

	// When: the returned board and scores are modified
	board := engine.GetBoard()
	board[0][0] = entity.PlayerO
	board[2][2] = entity.PlayerX
	scores := engine.GetScores()
	scores["X"] = 99

	// Then: the engine is not affected
	assert.Equal(t, entity.PlayerX, engine.GetBoard()[0][0])
	assert.Equal(t, entity.EmptyCell, engine.GetBoard()[2][2])
	assert.Equal(t, 0, engine.GetScores()["X"])
}

func TestEngine_StateRoundTrip(t *testing.T) {
	// Given: a won game on a 5x5 grid with player one as O
	engine := newTestEngine(t, Settings{GridSize: 5, KAlignment: 3, PlayerSymbol: entity.PlayerO})
	playMoves(t, engine, [2]int{2, 2}, [2]int{0, 0}, [2]int{3, 1}, [2]int{0, 1}, [2]int{4, 0})
	engine.IncrementScore(entity.DrawKey)
	require.True(t, engine.IsFinished())

	// When: the engine is restored from its encoded state
	data, err := engine.State().Encode()
	require.NoError(t, err)
	decoded, err := entity.DecodeState(data)
	require.NoError(t, err)
	restored := FromState(decoded)

	// Then: every observable value is identical
	assert.Equal(t, engine.State(), restored.State())
	assert.Equal(t, engine.GetBoard(), restored.GetBoard())
	assert.Equal(t, engine.GetCurrentPlayer(), restored.GetCurrentPlayer())
	assert.Equal(t, engine.GetGameStatus(), restored.GetGameStatus())
	line, _ := engine.GetWinningLine()
	restoredLine, ok := restored.GetWinningLine()
	require.True(t, ok)
	assert.Equal(t, line, restoredLine)
	assert.Equal(t, entity.NewWinningLine(2, 2, entity.AntiDiagonal, 3), restoredLine)

	// And: the restored engine does not share memory with the record
	decoded.Board[0][0] = entity.EmptyCell
	assert.Equal(t, entity.PlayerX, restored.GetBoard()[0][0])
}
