package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/telemetry"
)

type gameUseCase interface {
	Start(ctx context.Context, sessionID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error)
}

// Console plays one game over a line-based text stream.
type Console struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	in  io.Reader
	out io.Writer
}

func New(logger *slog.Logger, gameUseCase gameUseCase, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:      logger.With("component", "console"),
		gameUseCase: gameUseCase,
		in:          in,
		out:         out,
	}
}

// Run plays until the game ends or the input is exhausted. Input errors re-prompt the same player.
func (that *Console) Run(ctx context.Context, sessionID string) error {
	log := that.logger.With("method", "Run")

	ctx, span := telemetry.Tracer("console").Start(ctx, "game.session")
	defer span.End()

	game, err := that.gameUseCase.Start(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	span.SetAttributes(attribute.String("game.id", game.ID))
	log = log.With("gameID", game.ID)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := that.readLines(readCtx)

	that.printBoard(game)

	for {
		that.printf("Input next move for player %q:\n", game.Turn.String())

		var line inputLine
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-lines:
			if !ok {
				if err = <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				log.Info("input closed before the game ended")
				return nil
			}
			line = next
		}

		row, col, err := parseMove(line)
		if err != nil {
			log.Debug("bad input", "length", len(line.text), "error", err)
			that.printInputError(err)
			continue
		}

		that.printf("Placing move at (%d, %d):\n", row, col)

		updated, err := that.gameUseCase.MakeTurn(ctx, game.ID, row, col)
		switch {
		case errors.Is(err, apperror.ErrInvalidRow),
			errors.Is(err, apperror.ErrInvalidCol),
			errors.Is(err, apperror.ErrCellOccupied):
			that.printf("Error: %s\n", moveErrorMessage(err, row, col))
			continue
		case errors.Is(err, apperror.ErrGameFinished):
			that.printGameOver(updated)
			return nil
		case err != nil:
			return fmt.Errorf("failed to make turn: %w", err)
		}

		game = updated
		that.printBoard(game)

		if _, over := game.GameOver(); over {
			that.printGameOver(game)
			span.SetAttributes(attribute.Int("game.turns_played", game.TurnsPlayed))
			return nil
		}
	}
}

// maxLineLength bounds a move line; longer lines are dropped and reported as bad input.
const maxLineLength = 1024

// inputLine is one line of input; tooLong marks a line cut at maxLineLength.
type inputLine struct {
	text    string
	tooLong bool
}

// readLines feeds input lines until EOF or cancellation; readErr receives exactly one value afterwards.
func (that *Console) readLines(ctx context.Context) (<-chan inputLine, <-chan error) {
	lines := make(chan inputLine)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		reader := bufio.NewReader(that.in)
		for {
			line, err := readLine(reader)
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readErr <- err
				return
			}

			select {
			case lines <- line:
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
	}()

	return lines, readErr
}

// readLine reads up to the next line end, keeping at most maxLineLength bytes.
func readLine(reader *bufio.Reader) (inputLine, error) {
	var line inputLine
	var text []byte

	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if len(text) > 0 || line.tooLong {
				break
			}
			return inputLine{}, err
		}

		if line.tooLong || len(text)+len(chunk) > maxLineLength {
			line.tooLong = true
			text = nil
		} else {
			text = append(text, chunk...)
		}

		if !isPrefix {
			break
		}
	}

	line.text = string(text)

	return line, nil
}

// inputError describes a line that is not a move.
type inputError struct {
	kind   error
	reason error
}

func (that *inputError) Error() string {
	if that.reason == nil {
		return that.kind.Error()
	}
	return that.kind.Error() + ": " + that.reason.Error()
}

func (that *inputError) Unwrap() error {
	return that.kind
}

// parseMove turns a "row col" line of 1-based numbers into 0-based coordinates.
func parseMove(line inputLine) (int, int, error) {
	if line.tooLong {
		return 0, 0, &inputError{kind: apperror.ErrBadInput}
	}

	parts := strings.Fields(line.text)
	if len(parts) != 2 {
		return 0, 0, &inputError{kind: apperror.ErrBadInput}
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &inputError{kind: apperror.ErrRowParse, reason: unwrapNumError(err)}
	}

	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &inputError{kind: apperror.ErrColParse, reason: unwrapNumError(err)}
	}

	return row - 1, col - 1, nil
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}

func moveErrorMessage(err error, row, col int) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidRow):
		return "Invalid Row!"
	case errors.Is(err, apperror.ErrInvalidCol):
		return "Invalid Col!"
	default:
		return fmt.Sprintf("Position (%d, %d) already taken.", row, col)
	}
}

func (that *Console) printInputError(err error) {
	var inErr *inputError
	if !errors.As(err, &inErr) || inErr.reason == nil {
		that.printf("Bad user input.\n")
		return
	}

	if errors.Is(inErr.kind, apperror.ErrRowParse) {
		that.printf("Row parsing failed. %s\n", inErr.reason)
		return
	}

	that.printf("Column parsing failed. %s\n", inErr.reason)
}

func (that *Console) printBoard(game *entity.Game) {
	that.printf("Board:\n%s\n", game.Render())
}

func (that *Console) printGameOver(game *entity.Game) {
	outcome, _ := game.GameOver()

	switch outcome {
	case entity.OutcomePlayer1Wins:
		that.printf("Game Over. Player 1 wins!\n")
	case entity.OutcomePlayer2Wins:
		that.printf("Game Over. Player 2 wins!\n")
	default:
		that.printf("Game Over. Cat's game!\n")
	}
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write to console", "error", err)
	}
}
