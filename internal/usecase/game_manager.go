package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/hexapawn/internal/apperror"
	"github.com/rocketscienceinc/hexapawn/internal/config"
	"github.com/rocketscienceinc/hexapawn/internal/entity"
	"github.com/rocketscienceinc/hexapawn/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn/internal/pkg"
)

type gameConsole interface {
	AskInstructions(ctx context.Context) (bool, error)
	ShowInstructions()

	ReadMove(ctx context.Context) (entity.Move, error)
	ShowBoard(board entity.Board)

	IllegalMove()
	ComputerMove(move entity.Move)
	Resign()
	PlayerBlocked()
	PlayerWins()
	ComputerWins()
	Tally(tally entity.Tally)
	IllegalPosition()
}

type learner interface {
	StartGame()
	SelectMove(board entity.Board) (hexapawn.Selection, error)
	PunishLastMove() (entity.Move, error)
	Exhausted() int
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.GameRecord) error
}

// GameManager - runs the series of games between the player and the engine.
type GameManager struct {
	logger *slog.Logger

	console  gameConsole
	engine   learner
	gameRepo gameRepo

	newID func() string
	now   func() time.Time

	tally entity.Tally
}

func NewGameManager(logger *slog.Logger, console gameConsole, engine learner, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),

		console:  console,
		engine:   engine,
		gameRepo: gameRepo,

		newID: pkg.GenerateGameID,
		now:   time.Now,
	}
}

func (that *GameManager) Tally() entity.Tally {
	return that.tally
}

// Introduce - shows the rules according to the configured instructions mode.
func (that *GameManager) Introduce(ctx context.Context, mode string) error {
	show := mode == config.InstructionsAlways

	if mode == config.InstructionsAsk {
		var err error
		if show, err = that.console.AskInstructions(ctx); err != nil {
			return fmt.Errorf("failed to ask for instructions: %w", err)
		}
	}

	if show {
		that.console.ShowInstructions()
	}

	return nil
}

// Run - plays games until the input ends or ctx is cancelled. Only an
// unknown board pattern or a broken input stops it with an error.
func (that *GameManager) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		game, err := that.PlayGame(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			log.Info("session ended", "games", that.tally.Games(), "wins", that.tally.Wins, "losses", that.tally.Losses)
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to play game: %w", err)
		}

		log.Debug("game over", "game_id", game.ID, "winner", game.Winner)
	}
}

// PlayGame - plays one game from the start position, the player moving first.
func (that *GameManager) PlayGame(ctx context.Context) (*entity.GameRecord, error) {
	log := that.logger.With("method", "PlayGame")

	game := entity.NewGameRecord(that.newID())
	board := entity.StartBoard()
	that.engine.StartGame()

	log.Debug("game started", "game_id", game.ID)
	that.console.ShowBoard(board)

	for {
		move, err := that.readPlayerMove(ctx, board)
		if err != nil {
			return nil, err
		}

		board.ApplyMove(move)
		game.AddMove(move)
		that.console.ShowBoard(board)

		if reason := playerWinReason(board); reason != entity.ReasonNone {
			return that.playerWon(ctx, game, board, reason)
		}

		selection, err := that.engine.SelectMove(board)
		if err != nil {
			if errors.Is(err, apperror.ErrIllegalPosition) {
				that.console.IllegalPosition()
			}

			return nil, fmt.Errorf("computer failed to move: %w", err)
		}

		if selection.Resign {
			that.console.Resign()
			return that.playerWon(ctx, game, board, entity.ReasonResign)
		}

		if !board.IsLegalComputerMove(selection.Move.From, selection.Move.To) {
			log.Warn("book move is not a pawn move", "board", board.String(), "move", selection.Move.String())
		}

		that.console.ComputerMove(selection.Move)
		board.ApplyMove(selection.Move)
		game.AddMove(selection.Move)
		that.console.ShowBoard(board)

		if reason := board.ComputerWinReason(); reason != entity.ReasonNone {
			if reason == entity.ReasonBlocked {
				that.console.PlayerBlocked()
			}
			that.console.ComputerWins()

			return that.finish(ctx, game, board, entity.WinnerComputer, reason), nil
		}
	}
}

// readPlayerMove - asks again for as long as the move breaks the pawn rules.
func (that *GameManager) readPlayerMove(ctx context.Context, board entity.Board) (entity.Move, error) {
	for {
		move, err := that.console.ReadMove(ctx)
		if err != nil {
			return entity.Move{}, fmt.Errorf("failed to read move: %w", err)
		}

		if board.IsLegalPlayerMove(move.From, move.To) {
			return move, nil
		}

		that.console.IllegalMove()
	}
}

func (that *GameManager) playerWon(
	ctx context.Context, game *entity.GameRecord, board entity.Board, reason entity.WinReason,
) (*entity.GameRecord, error) {
	log := that.logger.With("method", "playerWon")

	that.console.PlayerWins()

	punished, err := that.engine.PunishLastMove()
	switch {
	case errors.Is(err, apperror.ErrNoMoveToPunish):
		log.Debug("no move to punish", "game_id", game.ID)
	case err != nil:
		return nil, fmt.Errorf("failed to punish last move: %w", err)
	default:
		log.Debug("move punished", "game_id", game.ID, "move", punished.String(),
			"exhausted_positions", that.engine.Exhausted())
	}

	return that.finish(ctx, game, board, entity.WinnerPlayer, reason), nil
}

func (that *GameManager) finish(
	ctx context.Context, game *entity.GameRecord, board entity.Board, winner entity.Winner, reason entity.WinReason,
) *entity.GameRecord {
	log := that.logger.With("method", "finish")

	game.Finish(winner, reason, board, that.now())
	that.tally.Record(winner)
	that.console.Tally(that.tally)

	log.Info("game finished", "game_id", game.ID, "winner", winner, "reason", reason, "moves", len(game.Moves))

	// the archive is a side record; a failed write never ends the session
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to archive game", "game_id", game.ID, "error", err)
	}

	return game
}

// playerWinReason - the player also wins when the computer has nothing to move.
func playerWinReason(board entity.Board) entity.WinReason {
	if reason := board.PlayerWinReason(); reason != entity.ReasonNone {
		return reason
	}

	if !board.ComputerHasMove() {
		return entity.ReasonBlocked
	}

	return entity.ReasonNone
}
