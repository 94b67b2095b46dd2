package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/hexapawn/internal/entity"
)

var ErrGameNotFinished = errors.New("game is not finished")

// GameRepository - archive of finished games. Records are written once the
// game is over and never read back by the session.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.GameRecord) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - archive of finished games in Redis; ttl 0 keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.GameRecord) error {
	if !game.IsFinished() {
		return fmt.Errorf("%w: %s", ErrGameNotFinished, game.ID)
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	err = that.client.Set(ctx, gameKey(game.ID), gameJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func gameKey(id string) string {
	return "game:" + id
}
