package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/pinellone-backend/internal/apperror"
	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
	"github.com/rocketscienceinc/pinellone-backend/internal/pinellone"
)

type GamePlayService interface {
	Draw(ctx context.Context, gameID, playerID, mode string, discardIndex int) (*entity.GameView, error)
	DrawPreview(ctx context.Context, gameID, mode string, discardIndex int) (*entity.DrawPreview, error)
	Meld(ctx context.Context, gameID, playerID string, cardIndices []int) (*entity.GameView, error)
	Attach(ctx context.Context, gameID, playerID string, cardIndex, meldIndex int) (*entity.GameView, error)
	Discard(ctx context.Context, gameID, playerID string, cardIndex int) (*entity.GameView, error)
	Close(ctx context.Context, gameID, playerID string) (*entity.GameView, error)

	GameState(ctx context.Context, gameID, viewerID string) (*entity.GameView, error)
}

type gamePlayService struct {
	logger *slog.Logger

	engine      *pinellone.Engine
	gameService GameService
}

func NewGamePlayService(logger *slog.Logger, engine *pinellone.Engine, gameService GameService) GamePlayService {
	return &gamePlayService{
		logger:      logger,
		engine:      engine,
		gameService: gameService,
	}
}

func (that *gamePlayService) Draw(ctx context.Context, gameID, playerID, mode string, discardIndex int) (*entity.GameView, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	err = that.engine.Draw(game, playerID, mode, discardIndex)

	// a dry deck finishes the round; that terminal state must be committed
	if errors.Is(err, apperror.ErrDeckExhausted) {
		if updateErr := that.gameService.UpdateGame(ctx, game); updateErr != nil {
			return nil, fmt.Errorf("failed to store exhausted game: %w", updateErr)
		}

		return nil, err
	}

	if err != nil {
		return nil, err
	}

	return that.commit(ctx, game, playerID)
}

func (that *gamePlayService) DrawPreview(ctx context.Context, gameID, mode string, discardIndex int) (*entity.DrawPreview, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return that.engine.DrawPreview(game, mode, discardIndex), nil
}

func (that *gamePlayService) Meld(ctx context.Context, gameID, playerID string, cardIndices []int) (*entity.GameView, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.engine.Meld(game, playerID, cardIndices); err != nil {
		return nil, err
	}

	return that.commit(ctx, game, playerID)
}

func (that *gamePlayService) Attach(ctx context.Context, gameID, playerID string, cardIndex, meldIndex int) (*entity.GameView, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.engine.Attach(game, playerID, cardIndex, meldIndex); err != nil {
		return nil, err
	}

	return that.commit(ctx, game, playerID)
}

func (that *gamePlayService) Discard(ctx context.Context, gameID, playerID string, cardIndex int) (*entity.GameView, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.engine.Discard(game, playerID, cardIndex); err != nil {
		return nil, err
	}

	return that.commit(ctx, game, playerID)
}

func (that *gamePlayService) Close(ctx context.Context, gameID, playerID string) (*entity.GameView, error) {
	log := that.logger.With("method", "Close")

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.engine.Close(game, playerID); err != nil {
		return nil, err
	}

	log.Info("game closed", "game", game.ID, "winner", game.Winner)

	return that.commit(ctx, game, playerID)
}

func (that *gamePlayService) GameState(ctx context.Context, gameID, viewerID string) (*entity.GameView, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return that.engine.View(game, viewerID), nil
}

// commit persists the mutated session and returns the actor's view of it.
func (that *gamePlayService) commit(ctx context.Context, game *entity.Game, viewerID string) (*entity.GameView, error) {
	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	return that.engine.View(game, viewerID), nil
}
