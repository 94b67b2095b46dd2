package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/hexapawn/internal/apperror"
	"github.com/rocketscienceinc/hexapawn/internal/entity"
)

const boardIndent = "          "

const (
	blackColor = "1"
	whiteColor = "4"
)

// Console - line-oriented terminal front end of the game.
type Console struct {
	scanner *bufio.Scanner
	writer  io.Writer
	output  *termenv.Output
	color   bool
}

func New(reader io.Reader, writer io.Writer, color bool) *Console {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanWords)

	return &Console{
		scanner: scanner,
		writer:  writer,
		output:  termenv.NewOutput(writer),
		color:   color,
	}
}

// AskInstructions - asks until the answer starts with Y or N.
func (that *Console) AskInstructions(ctx context.Context) (bool, error) {
	that.print("INSTRUCTIONS (Y-N) ? ")

	for {
		token, err := that.next(ctx)
		if err != nil {
			return false, err
		}

		switch unicode.ToUpper(rune(token[0])) {
		case 'Y':
			return true, nil
		case 'N':
			return false, nil
		}
	}
}

func (that *Console) ShowInstructions() {
	that.print(instructions)
}

// ReadMove - prompts until the player types two squares in range, such as "9,6".
// Whether the move is legal on the board is left to the caller.
func (that *Console) ReadMove(ctx context.Context) (entity.Move, error) {
	for {
		that.print("YOUR MOVE ? ")

		token, err := that.next(ctx)
		if err != nil {
			return entity.Move{}, err
		}

		move, err := ParseMove(token)
		switch {
		case err == nil:
			return move, nil
		case errors.Is(err, apperror.ErrIllegalCoordinate):
			that.println("ILLEGAL CO-ORDINATES.")
		default:
			that.println("ILLEGAL MOVE.")
		}
	}
}

func (that *Console) ShowBoard(board entity.Board) {
	for _, row := range board.Rows() {
		that.println(boardIndent + that.colorize(row))
	}
}

func (that *Console) IllegalMove() {
	that.println("ILLEGAL MOVE.")
}

func (that *Console) ComputerMove(move entity.Move) {
	that.println(fmt.Sprintf("I MOVE FROM %d TO %d", move.From, move.To))
}

func (that *Console) Resign() {
	that.println("I RESIGN")
}

func (that *Console) PlayerBlocked() {
	that.print("YOU CAN'T MOVE, SO ")
}

func (that *Console) PlayerWins() {
	that.println("YOU WIN.")
}

func (that *Console) ComputerWins() {
	that.println("I WIN.")
}

func (that *Console) Tally(tally entity.Tally) {
	that.println(tally.String())
}

func (that *Console) IllegalPosition() {
	that.println("ILLEGAL BOARD PATTERN")
}

// ParseMove - reads "from,to"; empty fields between commas are skipped.
func ParseMove(token string) (entity.Move, error) {
	fields := strings.FieldsFunc(token, func(r rune) bool { return r == ',' })
	if len(fields) < 2 {
		return entity.Move{}, fmt.Errorf("%w: %q", apperror.ErrIllegalMove, token)
	}

	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: %q", apperror.ErrIllegalMove, token)
	}

	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: %q", apperror.ErrIllegalMove, token)
	}

	if !entity.OnBoard(from) || !entity.OnBoard(to) {
		return entity.Move{}, fmt.Errorf("%w: %d,%d", apperror.ErrIllegalCoordinate, from, to)
	}

	return entity.Move{From: from, To: to}, nil
}

func (that *Console) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", io.EOF
	}

	return that.scanner.Text(), nil
}

func (that *Console) colorize(row string) string {
	if !that.color {
		return row
	}

	var sb strings.Builder
	for _, symbol := range row {
		style := that.output.String(string(symbol))
		switch symbol {
		case 'X':
			style = style.Foreground(that.output.Color(blackColor))
		case 'O':
			style = style.Foreground(that.output.Color(whiteColor))
		}
		sb.WriteString(style.String())
	}

	return sb.String()
}

func (that *Console) print(text string) {
	_, _ = io.WriteString(that.writer, text)
}

func (that *Console) println(text string) {
	that.print(text + "\n")
}
