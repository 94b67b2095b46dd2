package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/hexapawn/internal/entity"
)

type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.GameRecord
}

// NewMemoryGameRepository - keeps finished games for the lifetime of the process.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.GameRecord),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.GameRecord) error {
	if !game.IsFinished() {
		return fmt.Errorf("%w: %s", ErrGameNotFinished, game.ID)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *game
	stored.Moves = append([]entity.Move(nil), game.Moves...)
	that.games[game.ID] = stored

	return nil
}
