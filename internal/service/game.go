package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pinellone-backend/internal/apperror"
	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
	"github.com/rocketscienceinc/pinellone-backend/internal/pkg"
	"github.com/rocketscienceinc/pinellone-backend/internal/pinellone"
	"github.com/rocketscienceinc/pinellone-backend/internal/repository"
)

type GameService interface {
	CreateGame(ctx context.Context, playerNames []string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	GetPlayerByID(ctx context.Context, id string) (*entity.PlayerRef, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.PlayerRef) error
	GetByID(ctx context.Context, id string) (*entity.PlayerRef, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	engine     *pinellone.Engine
	gameRepo   gameRepo
	playerRepo playerRepo
}

func NewGameService(engine *pinellone.Engine, gameRepo gameRepo, playerRepo playerRepo) GameService {
	return &gameService{
		engine:     engine,
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
	}
}

// CreateGame deals a fresh session for the two named players and persists
// the session document together with the player-to-session references.
func (that *gameService) CreateGame(ctx context.Context, playerNames []string) (*entity.Game, error) {
	game, err := that.engine.NewGame(pkg.GenerateGameID(), playerNames)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	for _, player := range game.Players {
		ref := &entity.PlayerRef{ID: player.ID, Name: player.Name, GameID: game.ID}
		if err = that.playerRepo.CreateOrUpdate(ctx, ref); err != nil {
			return nil, fmt.Errorf("failed to store player ref: %w", err)
		}
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetPlayerByID(ctx context.Context, id string) (*entity.PlayerRef, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve player from storage: %w", err)
	}

	return player, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	game, err := that.GetGameByID(ctx, gameID)
	if err != nil {
		return err
	}

	for _, player := range game.Players {
		if err = that.playerRepo.DeleteByID(ctx, player.ID); err != nil {
			return fmt.Errorf("failed to delete player ref: %w", err)
		}
	}

	if err = that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
