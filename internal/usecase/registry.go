package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
)

// GameUseCase is the boundary the transport consumes: session lifecycle plus
// the five player actions, every reply already redacted for the caller.
type GameUseCase interface {
	CreateSession(ctx context.Context, playerNames []string) (*entity.Game, error)
	SessionView(ctx context.Context, gameID, viewerID string) (*entity.GameView, error)
	CloseSession(ctx context.Context, gameID string) error

	ResolvePlayer(ctx context.Context, playerID string) (*entity.PlayerRef, error)

	Draw(ctx context.Context, gameID, playerID, mode string, discardIndex int) (*entity.GameView, error)
	DrawPreview(ctx context.Context, gameID, mode string, discardIndex int) (*entity.DrawPreview, error)
	Meld(ctx context.Context, gameID, playerID string, cardIndices []int) (*entity.GameView, error)
	Attach(ctx context.Context, gameID, playerID string, cardIndex, meldIndex int) (*entity.GameView, error)
	Discard(ctx context.Context, gameID, playerID string, cardIndex int) (*entity.GameView, error)
	Close(ctx context.Context, gameID, playerID string) (*entity.GameView, error)
}

type gameService interface {
	CreateGame(ctx context.Context, playerNames []string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetPlayerByID(ctx context.Context, id string) (*entity.PlayerRef, error)
}

type gamePlayService interface {
	Draw(ctx context.Context, gameID, playerID, mode string, discardIndex int) (*entity.GameView, error)
	DrawPreview(ctx context.Context, gameID, mode string, discardIndex int) (*entity.DrawPreview, error)
	Meld(ctx context.Context, gameID, playerID string, cardIndices []int) (*entity.GameView, error)
	Attach(ctx context.Context, gameID, playerID string, cardIndex, meldIndex int) (*entity.GameView, error)
	Discard(ctx context.Context, gameID, playerID string, cardIndex int) (*entity.GameView, error)
	Close(ctx context.Context, gameID, playerID string) (*entity.GameView, error)
	GameState(ctx context.Context, gameID, viewerID string) (*entity.GameView, error)
}

// SessionRegistry serializes access per session: one mutating operation at a
// time on a given game, while distinct games never contend. Locks are created
// lazily, so sessions persisted before a restart stay reachable.
type SessionRegistry struct {
	logger *slog.Logger

	gameService gameService
	gamePlay    gamePlayService

	mu    sync.RWMutex
	locks map[string]*sync.RWMutex
}

func NewSessionRegistry(logger *slog.Logger, gameSvc gameService, gamePlay gamePlayService) *SessionRegistry {
	return &SessionRegistry{
		logger:      logger,
		gameService: gameSvc,
		gamePlay:    gamePlay,
		locks:       make(map[string]*sync.RWMutex),
	}
}

func (that *SessionRegistry) CreateSession(ctx context.Context, playerNames []string) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, playerNames)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	that.locks[game.ID] = &sync.RWMutex{}
	that.mu.Unlock()

	that.logger.Info("session created", "game", game.ID)

	return game, nil
}

func (that *SessionRegistry) SessionView(ctx context.Context, gameID, viewerID string) (*entity.GameView, error) {
	lock := that.sessionLock(gameID)
	lock.RLock()
	defer lock.RUnlock()

	return that.gamePlay.GameState(ctx, gameID, viewerID)
}

// CloseSession removes the session document and its lock entry.
func (that *SessionRegistry) CloseSession(ctx context.Context, gameID string) error {
	lock := that.sessionLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	that.mu.Lock()
	delete(that.locks, gameID)
	that.mu.Unlock()

	that.logger.Info("session closed", "game", gameID)

	return nil
}

func (that *SessionRegistry) ResolvePlayer(ctx context.Context, playerID string) (*entity.PlayerRef, error) {
	return that.gameService.GetPlayerByID(ctx, playerID)
}

func (that *SessionRegistry) Draw(ctx context.Context, gameID, playerID, mode string, discardIndex int) (*entity.GameView, error) {
	lock := that.sessionLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	return that.gamePlay.Draw(ctx, gameID, playerID, mode, discardIndex)
}

func (that *SessionRegistry) DrawPreview(ctx context.Context, gameID, mode string, discardIndex int) (*entity.DrawPreview, error) {
	lock := that.sessionLock(gameID)
	lock.RLock()
	defer lock.RUnlock()

	return that.gamePlay.DrawPreview(ctx, gameID, mode, discardIndex)
}

func (that *SessionRegistry) Meld(ctx context.Context, gameID, playerID string, cardIndices []int) (*entity.GameView, error) {
	lock := that.sessionLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	return that.gamePlay.Meld(ctx, gameID, playerID, cardIndices)
}

func (that *SessionRegistry) Attach(ctx context.Context, gameID, playerID string, cardIndex, meldIndex int) (*entity.GameView, error) {
	lock := that.sessionLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	return that.gamePlay.Attach(ctx, gameID, playerID, cardIndex, meldIndex)
}

func (that *SessionRegistry) Discard(ctx context.Context, gameID, playerID string, cardIndex int) (*entity.GameView, error) {
	lock := that.sessionLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	return that.gamePlay.Discard(ctx, gameID, playerID, cardIndex)
}

func (that *SessionRegistry) Close(ctx context.Context, gameID, playerID string) (*entity.GameView, error) {
	lock := that.sessionLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	return that.gamePlay.Close(ctx, gameID, playerID)
}

// sessionLock returns the lock guarding one session, creating it on first
// touch. A lock for an unknown game is harmless: the service layer answers
// with session-not-found either way.
func (that *SessionRegistry) sessionLock(gameID string) *sync.RWMutex {
	that.mu.RLock()
	lock, ok := that.locks[gameID]
	that.mu.RUnlock()

	if ok {
		return lock
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if lock, ok = that.locks[gameID]; ok {
		return lock
	}

	lock = &sync.RWMutex{}
	that.locks[gameID] = lock

	return lock
}
