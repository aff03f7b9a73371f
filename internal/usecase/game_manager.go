package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/telemetry"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager keeps the game in progress in a store so an interrupted session can resume it.
// Finished games are removed from the store.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
	}
}

// Start resumes the stored game of sessionID or creates a new one. A stored game that is
// finished or inconsistent is deleted and replaced.
// An empty sessionID always starts a new game under a random id.
func (that *GameManager) Start(ctx context.Context, sessionID string) (*entity.Game, error) {
	log := that.logger.With("method", "Start", "sessionID", sessionID)

	ctx, span := telemetry.Tracer("usecase").Start(ctx, "game.start")
	defer span.End()

	if sessionID != "" {
		existingGame, err := that.gameRepo.GetByID(ctx, sessionID)

		switch {
		case err == nil:
			if validErr := existingGame.Validate(); validErr != nil {
				log.Warn("discarding inconsistent stored game", "error", validErr)
			} else if !existingGame.IsFinished() {
				log.Info("resumed game", "turnsPlayed", existingGame.TurnsPlayed)
				span.SetAttributes(attribute.Bool("game.resumed", true))

				return existingGame, nil
			}

			that.deleteGame(ctx, existingGame)
		case !errors.Is(err, apperror.ErrGameNotFound):
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to load game")

			return nil, fmt.Errorf("failed get game by id: %w", err)
		}
	}

	gameID := sessionID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	newGame := entity.NewGame(gameID)
	if err := that.updateGame(ctx, newGame); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create game")

		return nil, fmt.Errorf("failed create game: %w", err)
	}

	span.SetAttributes(
		attribute.String("game.id", gameID),
		attribute.Bool("game.resumed", false),
	)
	log.Info("created game", "gameID", gameID)

	return newGame, nil
}

// MakeTurn applies a move for whoever's turn it is. A rejected move leaves the stored game as it was.
// When the move ends the game the stored game is deleted and the final state is returned.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	ctx, span := telemetry.Tracer("usecase").Start(ctx, "game.turn")
	defer span.End()

	span.SetAttributes(
		attribute.String("game.id", gameID),
		attribute.Int("move.row", row),
		attribute.Int("move.col", col),
	)

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load game")

		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	if err = game.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inconsistent game")
		log.Warn("discarding inconsistent stored game", "error", err)

		that.deleteGame(ctx, game)

		return nil, fmt.Errorf("failed load game: %w", err)
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)

		return game, apperror.ErrGameFinished
	}

	span.SetAttributes(attribute.String("move.player", game.Turn.String()))

	if err = game.MakeTurn(row, col); err != nil {
		span.RecordError(err)
		log.Debug("move rejected", "row", row, "col", col, "error", err)

		return game, fmt.Errorf("failed make turn: %w", err)
	}

	span.SetAttributes(attribute.Int("game.turns_played", game.TurnsPlayed))

	if outcome, over := game.GameOver(); over {
		span.SetAttributes(attribute.String("game.outcome", outcome.String()))
		log.Info("game finished", "outcome", outcome.String(), "turnsPlayed", game.TurnsPlayed)

		that.deleteGame(ctx, game)

		return game, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save game")

		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Debug("game deleted")
}
