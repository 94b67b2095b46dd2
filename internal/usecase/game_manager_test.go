package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/hexapawn/internal/apperror"
	"github.com/rocketscienceinc/hexapawn/internal/config"
	"github.com/rocketscienceinc/hexapawn/internal/entity"
	"github.com/rocketscienceinc/hexapawn/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn/internal/transport/console"
)

var (
	errRedisDown = errors.New("redis down")
	finishedAt   = time.Date(2024, 5, 5, 12, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	manager *GameManager
	engine  *mockLearner
	repo    *mockGameRepo
	out     *bytes.Buffer
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	out := &bytes.Buffer{}
	engine := &mockLearner{}
	repo := &mockGameRepo{}
	t.Cleanup(func() {
		engine.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	manager := NewGameManager(discardLogger(), console.New(strings.NewReader(input), out, false), engine, repo)
	manager.newID = func() string { return "game-1" }
	manager.now = func() time.Time { return finishedAt }

	return &fixture{manager: manager, engine: engine, repo: repo, out: out}
}

func (that *fixture) expectMove(pattern string, move entity.Move) {
	that.engine.On("SelectMove", entity.MustParseBoard(pattern)).
		Return(hexapawn.Selection{Move: move}, nil).
		Once()
}

func (that *fixture) expectArchive(err error) {
	that.repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.GameRecord")).
		Return(err).
		Once()
}

func TestGameManager_PlayGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Player reaches the first row", func(t *testing.T) {
		// Given: the player pushes the centre pawn and then captures on 3
		f := newFixture(t, "8,5 5,3")
		f.engine.On("StartGame").Once()
		f.expectMove("XXX"+".O."+"O.O", entity.Move{From: 1, To: 4})
		f.engine.On("PunishLastMove").Return(entity.Move{From: 1, To: 4}, nil).Once()
		f.engine.On("Exhausted").Return(0).Maybe()
		f.expectArchive(nil)

		// When: the game is played
		game, err := f.manager.PlayGame(ctx)

		// Then: the player wins and the computer's move is punished
		require.NoError(t, err)
		assert.Equal(t, "game-1", game.ID)
		assert.Equal(t, entity.WinnerPlayer, game.Winner)
		assert.Equal(t, entity.ReasonAdvance, game.Reason)
		assert.Equal(t, []entity.Move{{From: 8, To: 5}, {From: 1, To: 4}, {From: 5, To: 3}}, game.Moves)
		assert.Equal(t, ".XOX..O.O", game.FinalBoard)
		assert.Equal(t, finishedAt, game.FinishedAt)
		assert.Equal(t, entity.Tally{Losses: 1}, f.manager.Tally())
		assert.True(t, strings.HasSuffix(f.out.String(), "YOU WIN.\nI HAVE WON 0 AND YOU 1 OUT OF 1 GAMES.\n"))
	})

	t.Run("Computer reaches the last row", func(t *testing.T) {
		// Given: the computer captures on 6 and walks to 9
		f := newFixture(t, "9,6 8,5")
		f.engine.On("StartGame").Once()
		f.expectMove("XXX"+"..O"+"OO.", entity.Move{From: 2, To: 6})
		f.expectMove("X.X"+".OX"+"O..", entity.Move{From: 6, To: 9})
		f.expectArchive(nil)

		// When: the game is played
		game, err := f.manager.PlayGame(ctx)

		// Then: the computer wins without any punishment
		require.NoError(t, err)
		assert.Equal(t, entity.WinnerComputer, game.Winner)
		assert.Equal(t, entity.ReasonAdvance, game.Reason)
		assert.Equal(t, entity.Tally{Wins: 1}, f.manager.Tally())
		f.engine.AssertNotCalled(t, "PunishLastMove")

		expected := "          XXX\n          ...\n          OOO\n" +
			"YOUR MOVE ?           XXX\n          ..O\n          OO.\n" +
			"I MOVE FROM 2 TO 6\n          X.X\n          ..X\n          OO.\n" +
			"YOUR MOVE ?           X.X\n          .OX\n          O..\n" +
			"I MOVE FROM 6 TO 9\n          X.X\n          .O.\n          O.X\n" +
			"I WIN.\nI HAVE WON 1 AND YOU 0 OUT OF 1 GAMES.\n"
		assert.Equal(t, expected, f.out.String())
	})

	t.Run("Player cannot move", func(t *testing.T) {
		// Given: the computer answers so that both white pawns end up stuck
		f := newFixture(t, "7,4 9,5")
		f.engine.On("StartGame").Once()
		f.expectMove("XXX"+"O.."+".OO", entity.Move{From: 2, To: 5})
		f.expectMove("X.X"+"OO."+".O.", entity.Move{From: 3, To: 5})
		f.expectArchive(nil)

		// When: the game is played
		game, err := f.manager.PlayGame(ctx)

		// Then: the computer wins and says why
		require.NoError(t, err)
		assert.Equal(t, entity.WinnerComputer, game.Winner)
		assert.Equal(t, entity.ReasonBlocked, game.Reason)
		assert.Contains(t, f.out.String(), "YOU CAN'T MOVE, SO I WIN.\n")
	})

	t.Run("Computer cannot move", func(t *testing.T) {
		// Given: after the player's second move every black pawn is stuck
		f := newFixture(t, "7,4 9,6")
		f.engine.On("StartGame").Once()
		f.expectMove("XXX"+"O.."+".OO", entity.Move{From: 2, To: 5})
		f.engine.On("PunishLastMove").Return(entity.Move{From: 2, To: 5}, nil).Once()
		f.engine.On("Exhausted").Return(0).Maybe()
		f.expectArchive(nil)

		// When: the game is played
		game, err := f.manager.PlayGame(ctx)

		// Then: the player wins and the computer's last move is punished
		require.NoError(t, err)
		assert.Equal(t, entity.WinnerPlayer, game.Winner)
		assert.Equal(t, entity.ReasonBlocked, game.Reason)
		f.engine.AssertNumberOfCalls(t, "SelectMove", 1)
	})

	t.Run("Computer resigns", func(t *testing.T) {
		// Given: the engine has nothing left for the first position
		f := newFixture(t, "8,5")
		f.engine.On("StartGame").Once()
		f.engine.On("SelectMove", entity.MustParseBoard("XXX"+".O."+"O.O")).
			Return(hexapawn.Selection{Resign: true}, nil).
			Once()
		f.engine.On("PunishLastMove").Return(entity.Move{}, apperror.ErrNoMoveToPunish).Once()
		f.expectArchive(nil)

		// When: the game is played
		game, err := f.manager.PlayGame(ctx)

		// Then: the player wins by resignation
		require.NoError(t, err)
		assert.Equal(t, entity.WinnerPlayer, game.Winner)
		assert.Equal(t, entity.ReasonResign, game.Reason)
		assert.Contains(t, f.out.String(), "I RESIGN\nYOU WIN.\n")
	})

	t.Run("Illegal moves are asked again", func(t *testing.T) {
		// Given: a diagonal onto an empty square before a real move
		f := newFixture(t, "9,5 9,6 8,5")
		f.engine.On("StartGame").Once()
		f.expectMove("XXX"+"..O"+"OO.", entity.Move{From: 2, To: 6})
		f.expectMove("X.X"+".OX"+"O..", entity.Move{From: 6, To: 9})
		f.expectArchive(nil)

		// When: the game is played
		_, err := f.manager.PlayGame(ctx)

		// Then: the illegal move is rejected
		require.NoError(t, err)
		assert.Contains(t, f.out.String(), "YOUR MOVE ? ILLEGAL MOVE.\nYOUR MOVE ? ")
	})

	t.Run("Unknown board pattern", func(t *testing.T) {
		// Given: the engine does not know the position
		f := newFixture(t, "9,6")
		f.engine.On("StartGame").Once()
		f.engine.On("SelectMove", mock.Anything).
			Return(hexapawn.Selection{}, fmt.Errorf("failed to look up position: %w", apperror.ErrIllegalPosition)).
			Once()

		// When: the game is played
		game, err := f.manager.PlayGame(ctx)

		// Then: the failure is reported and returned
		require.ErrorIs(t, err, apperror.ErrIllegalPosition)
		assert.Nil(t, game)
		assert.Contains(t, f.out.String(), "ILLEGAL BOARD PATTERN\n")
		f.repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Archive failure does not end the game", func(t *testing.T) {
		f := newFixture(t, "9,6 8,5")
		f.engine.On("StartGame").Once()
		f.expectMove("XXX"+"..O"+"OO.", entity.Move{From: 2, To: 6})
		f.expectMove("X.X"+".OX"+"O..", entity.Move{From: 6, To: 9})
		f.expectArchive(errRedisDown)

		game, err := f.manager.PlayGame(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.WinnerComputer, game.Winner)
	})
}

func TestGameManager_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Ends cleanly when the input is exhausted", func(t *testing.T) {
		// Given: input for exactly one game
		f := newFixture(t, "9,6 8,5")
		f.engine.On("StartGame").Twice()
		f.expectMove("XXX"+"..O"+"OO.", entity.Move{From: 2, To: 6})
		f.expectMove("X.X"+".OX"+"O..", entity.Move{From: 6, To: 9})
		f.expectArchive(nil)

		// When: the session runs
		err := f.manager.Run(ctx)

		// Then: one game is recorded and the session ends without error
		require.NoError(t, err)
		assert.Equal(t, 1, f.manager.Tally().Games())
	})

	t.Run("Unknown board pattern stops the session", func(t *testing.T) {
		f := newFixture(t, "9,6")
		f.engine.On("StartGame").Once()
		f.engine.On("SelectMove", mock.Anything).
			Return(hexapawn.Selection{}, apperror.ErrIllegalPosition).
			Once()

		err := f.manager.Run(ctx)

		require.ErrorIs(t, err, apperror.ErrIllegalPosition)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		f := newFixture(t, "9,6")
		f.engine.On("StartGame").Once()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := f.manager.Run(cancelled)

		require.NoError(t, err)
		assert.Equal(t, 0, f.manager.Tally().Games())
	})
}

func TestGameManager_Introduce(t *testing.T) {
	ctx := context.Background()

	t.Run("Always", func(t *testing.T) {
		f := newFixture(t, "")

		require.NoError(t, f.manager.Introduce(ctx, config.InstructionsAlways))

		assert.True(t, strings.HasPrefix(f.out.String(), "\nTHIS PROGRAM PLAYS THE GAME OF HEXAPAWN."))
	})

	t.Run("Never", func(t *testing.T) {
		f := newFixture(t, "")

		require.NoError(t, f.manager.Introduce(ctx, config.InstructionsNever))

		assert.Empty(t, f.out.String())
	})

	t.Run("Ask and accept", func(t *testing.T) {
		f := newFixture(t, "Y")

		require.NoError(t, f.manager.Introduce(ctx, config.InstructionsAsk))

		assert.Contains(t, f.out.String(), "INSTRUCTIONS (Y-N) ? \nTHIS PROGRAM PLAYS")
	})

	t.Run("Ask with no answer", func(t *testing.T) {
		f := newFixture(t, "")

		err := f.manager.Introduce(ctx, config.InstructionsAsk)

		require.ErrorIs(t, err, io.EOF)
	})
}
