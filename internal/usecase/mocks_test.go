package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/hexapawn/internal/entity"
	"github.com/rocketscienceinc/hexapawn/internal/hexapawn"
)

type mockLearner struct {
	mock.Mock
}

func (that *mockLearner) StartGame() {
	that.Called()
}

func (that *mockLearner) SelectMove(board entity.Board) (hexapawn.Selection, error) {
	args := that.Called(board)
	return args.Get(0).(hexapawn.Selection), args.Error(1)
}

func (that *mockLearner) PunishLastMove() (entity.Move, error) {
	args := that.Called()
	return args.Get(0).(entity.Move), args.Error(1)
}

func (that *mockLearner) Exhausted() int {
	return that.Called().Int(0)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.GameRecord) error {
	return that.Called(ctx, game).Error(0)
}
