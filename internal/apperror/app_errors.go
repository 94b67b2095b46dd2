package apperror

import "errors"

var (
	ErrIllegalPosition   = errors.New("illegal board pattern")
	ErrIllegalMove       = errors.New("illegal move")
	ErrIllegalCoordinate = errors.New("illegal co-ordinates")
	ErrNoMoveToPunish    = errors.New("no computer move to punish")
)
