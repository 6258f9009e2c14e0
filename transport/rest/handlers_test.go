package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pinellone-backend/internal/apperror"
	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
)

// fakeUseCase answers every action with canned data, or with err when set.
type fakeUseCase struct {
	err  error
	view *entity.GameView
}

func (that *fakeUseCase) CreateSession(_ context.Context, playerNames []string) (*entity.Game, error) {
	if that.err != nil {
		return nil, that.err
	}

	players := make([]*entity.Player, 0, len(playerNames))
	for i, name := range playerNames {
		players = append(players, &entity.Player{ID: "p" + string(rune('1'+i)), Name: name})
	}

	return &entity.Game{ID: "game-1", Players: players}, nil
}

func (that *fakeUseCase) SessionView(_ context.Context, gameID, _ string) (*entity.GameView, error) {
	if that.err != nil {
		return nil, that.err
	}

	return &entity.GameView{ID: gameID}, nil
}

func (that *fakeUseCase) CloseSession(_ context.Context, _ string) error {
	return that.err
}

func (that *fakeUseCase) ResolvePlayer(_ context.Context, playerID string) (*entity.PlayerRef, error) {
	if that.err != nil {
		return nil, that.err
	}

	return &entity.PlayerRef{ID: playerID, Name: "Ana", GameID: "game-1"}, nil
}

func (that *fakeUseCase) action() (*entity.GameView, error) {
	if that.err != nil {
		return nil, that.err
	}

	if that.view != nil {
		return that.view, nil
	}

	return &entity.GameView{ID: "game-1"}, nil
}

func (that *fakeUseCase) Draw(_ context.Context, _, _, _ string, _ int) (*entity.GameView, error) {
	return that.action()
}

func (that *fakeUseCase) DrawPreview(_ context.Context, _, mode string, _ int) (*entity.DrawPreview, error) {
	if that.err != nil {
		return nil, that.err
	}

	return &entity.DrawPreview{DrawType: mode, DeckCards: 2, TotalCards: 2, Valid: true}, nil
}

func (that *fakeUseCase) Meld(_ context.Context, _, _ string, _ []int) (*entity.GameView, error) {
	return that.action()
}

func (that *fakeUseCase) Attach(_ context.Context, _, _ string, _, _ int) (*entity.GameView, error) {
	return that.action()
}

func (that *fakeUseCase) Discard(_ context.Context, _, _ string, _ int) (*entity.GameView, error) {
	return that.action()
}

func (that *fakeUseCase) Close(_ context.Context, _, _ string) (*entity.GameView, error) {
	return that.action()
}

func request(t *testing.T, uc *fakeUseCase, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	server := New(slog.Default(), uc)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	return rec
}

func TestHandlers_Ping(t *testing.T) {
	rec := request(t, &fakeUseCase{}, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestHandlers_CreateGame(t *testing.T) {
	t.Run("creates a session for two players", func(t *testing.T) {
		rec := request(t, &fakeUseCase{}, http.MethodPost, "/games", `{"player_names":["Ana","Bo"]}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp createGameResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "game-1", resp.GameID)
		require.Len(t, resp.Players, 2)
		assert.Equal(t, "Ana", resp.Players[0].Name)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		rec := request(t, &fakeUseCase{}, http.MethodPost, "/games", `{"player_names":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlers_GetGame(t *testing.T) {
	t.Run("returns the view", func(t *testing.T) {
		rec := request(t, &fakeUseCase{}, http.MethodGet, "/games/game-1?player_id=p1", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var view entity.GameView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "game-1", view.ID)
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		uc := &fakeUseCase{err: apperror.ErrSessionNotFound}

		rec := request(t, uc, http.MethodGet, "/games/missing", "")

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "session_not_found", resp.Error)
	})
}

func TestHandlers_Draw(t *testing.T) {
	t.Run("deck draw succeeds", func(t *testing.T) {
		rec := request(t, &fakeUseCase{}, http.MethodPost, "/games/game-1/draw",
			`{"player_id":"p1","draw_type":"deck"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("acting out of turn is a 400 with its own code", func(t *testing.T) {
		uc := &fakeUseCase{err: apperror.ErrNotYourTurn}

		rec := request(t, uc, http.MethodPost, "/games/game-1/draw",
			`{"player_id":"p2","draw_type":"deck"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not_your_turn", resp.Error)
	})

	t.Run("drawing from a dry deck is a conflict", func(t *testing.T) {
		uc := &fakeUseCase{err: apperror.ErrDeckExhausted}

		rec := request(t, uc, http.MethodPost, "/games/game-1/draw",
			`{"player_id":"p1","draw_type":"deck"}`)

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "deck_exhausted", resp.Error)
	})
}

func TestHandlers_DrawPreview(t *testing.T) {
	rec := request(t, &fakeUseCase{}, http.MethodPost, "/games/game-1/draw-preview",
		`{"draw_type":"deck"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var preview entity.DrawPreview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	assert.True(t, preview.Valid)
	assert.Equal(t, 2, preview.DeckCards)
}

func TestHandlers_Meld(t *testing.T) {
	t.Run("invalid meld maps to its error code", func(t *testing.T) {
		uc := &fakeUseCase{err: apperror.ErrInvalidMeld}

		rec := request(t, uc, http.MethodPost, "/games/game-1/meld",
			`{"player_id":"p1","card_indices":[0,1,2]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_meld", resp.Error)
	})
}

func TestHandlers_Discard(t *testing.T) {
	t.Run("discarding before opening maps to its error code", func(t *testing.T) {
		uc := &fakeUseCase{err: apperror.ErrMustOpenFirst}

		rec := request(t, uc, http.MethodPost, "/games/game-1/discard",
			`{"player_id":"p1","card_index":0}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "must_open_first", resp.Error)
	})
}

func TestHandlers_Close(t *testing.T) {
	t.Run("acting on a finished session is a conflict", func(t *testing.T) {
		uc := &fakeUseCase{err: apperror.ErrSessionClosed}

		rec := request(t, uc, http.MethodPost, "/games/game-1/close",
			`{"player_id":"p1"}`)

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "session_closed", resp.Error)
	})
}

func TestHandlers_DeleteGame(t *testing.T) {
	rec := request(t, &fakeUseCase{}, http.MethodDelete, "/games/game-1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlers_GetPlayer(t *testing.T) {
	rec := request(t, &fakeUseCase{}, http.MethodGet, "/players/p1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var ref entity.PlayerRef
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ref))
	assert.Equal(t, "game-1", ref.GameID)
}
