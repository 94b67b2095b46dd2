package entity

import (
	"fmt"
	"time"
)

type WinReason string

const (
	ReasonNone    WinReason = ""
	ReasonAdvance WinReason = "advance"
	ReasonCapture WinReason = "capture"
	ReasonBlocked WinReason = "blocked"
	ReasonResign  WinReason = "resign"
)

type Winner string

const (
	WinnerPlayer   Winner = "player"
	WinnerComputer Winner = "computer"
)

// Move - a pawn step from one square to another, both numbered 1-9.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (that Move) String() string {
	return fmt.Sprintf("%d,%d", that.From, that.To)
}

// GameRecord - the archived course of one finished game.
type GameRecord struct {
	ID         string    `json:"id"`
	Moves      []Move    `json:"moves"`
	Winner     Winner    `json:"winner"`
	Reason     WinReason `json:"reason"`
	FinalBoard string    `json:"final_board"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewGameRecord(id string) *GameRecord {
	return &GameRecord{
		ID:    id,
		Moves: []Move{},
	}
}

func (that *GameRecord) AddMove(move Move) {
	that.Moves = append(that.Moves, move)
}

func (that *GameRecord) Finish(winner Winner, reason WinReason, board Board, at time.Time) {
	that.Winner = winner
	that.Reason = reason
	that.FinalBoard = board.String()
	that.FinishedAt = at
}

func (that *GameRecord) IsFinished() bool {
	return that.Winner != ""
}

// Tally - games won by the computer and by the player during one session.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (that *Tally) Record(winner Winner) {
	switch winner {
	case WinnerComputer:
		that.Wins++
	case WinnerPlayer:
		that.Losses++
	}
}

func (that Tally) Games() int {
	return that.Wins + that.Losses
}

func (that Tally) String() string {
	return fmt.Sprintf("I HAVE WON %d AND YOU %d OUT OF %d GAMES.", that.Wins, that.Losses, that.Games())
}
