package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/pinellone-backend/internal/apperror"
	"github.com/rocketscienceinc/pinellone-backend/internal/pinellone"
	"github.com/rocketscienceinc/pinellone-backend/internal/usecase"
)

type handlers struct {
	logger      *slog.Logger
	gameUseCase usecase.GameUseCase
}

func newHandlers(logger *slog.Logger, gameUseCase usecase.GameUseCase) *handlers {
	return &handlers{
		logger:      logger,
		gameUseCase: gameUseCase,
	}
}

type createGameRequest struct {
	PlayerNames []string `json:"player_names"`
}

type createGameResponse struct {
	GameID  string       `json:"game_id"`
	Players []playerInfo `json:"players"`
}

type playerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type drawRequest struct {
	PlayerID     string `json:"player_id"`
	DrawType     string `json:"draw_type"`
	DiscardIndex *int   `json:"discard_index,omitempty"`
}

type meldRequest struct {
	PlayerID    string `json:"player_id"`
	CardIndices []int  `json:"card_indices"`
}

type attachRequest struct {
	PlayerID  string `json:"player_id"`
	CardIndex int    `json:"card_index"`
	MeldIndex int    `json:"meld_index"`
}

type discardRequest struct {
	PlayerID  string `json:"player_id"`
	CardIndex int    `json:"card_index"`
}

type closeRequest struct {
	PlayerID string `json:"player_id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (that *handlers) Ping(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}

func (that *handlers) CreateGame(ctx echo.Context) error {
	var req createGameRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	game, err := that.gameUseCase.CreateSession(ctx.Request().Context(), req.PlayerNames)
	if err != nil {
		return that.fail(ctx, err)
	}

	resp := createGameResponse{GameID: game.ID}
	for _, player := range game.Players {
		resp.Players = append(resp.Players, playerInfo{ID: player.ID, Name: player.Name})
	}

	return ctx.JSON(http.StatusCreated, resp)
}

func (that *handlers) GetGame(ctx echo.Context) error {
	view, err := that.gameUseCase.SessionView(ctx.Request().Context(), ctx.Param("id"), ctx.QueryParam("player_id"))
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

func (that *handlers) DeleteGame(ctx echo.Context) error {
	if err := that.gameUseCase.CloseSession(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *handlers) GetPlayer(ctx echo.Context) error {
	ref, err := that.gameUseCase.ResolvePlayer(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ref)
}

func (that *handlers) Draw(ctx echo.Context) error {
	var req drawRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	discardIndex := -1
	if req.DiscardIndex != nil {
		discardIndex = *req.DiscardIndex
	}

	view, err := that.gameUseCase.Draw(ctx.Request().Context(), ctx.Param("id"), req.PlayerID, req.DrawType, discardIndex)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

func (that *handlers) DrawPreview(ctx echo.Context) error {
	var req drawRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	discardIndex := -1
	if req.DiscardIndex != nil {
		discardIndex = *req.DiscardIndex
	}

	preview, err := that.gameUseCase.DrawPreview(ctx.Request().Context(), ctx.Param("id"), req.DrawType, discardIndex)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, preview)
}

func (that *handlers) Meld(ctx echo.Context) error {
	var req meldRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	view, err := that.gameUseCase.Meld(ctx.Request().Context(), ctx.Param("id"), req.PlayerID, req.CardIndices)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

func (that *handlers) Attach(ctx echo.Context) error {
	var req attachRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	view, err := that.gameUseCase.Attach(ctx.Request().Context(), ctx.Param("id"), req.PlayerID, req.CardIndex, req.MeldIndex)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

func (that *handlers) Discard(ctx echo.Context) error {
	var req discardRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	view, err := that.gameUseCase.Discard(ctx.Request().Context(), ctx.Param("id"), req.PlayerID, req.CardIndex)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

func (that *handlers) Close(ctx echo.Context) error {
	var req closeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "bad_request", "malformed request body")
	}

	view, err := that.gameUseCase.Close(ctx.Request().Context(), ctx.Param("id"), req.PlayerID)
	if err != nil {
		return that.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// fail maps engine errors to structured HTTP failures. Rule violations are
// the client's fault; anything unrecognized is ours.
func (that *handlers) fail(ctx echo.Context, err error) error {
	code, status := http.StatusBadRequest, "invalid_request"

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		code, status = http.StatusNotFound, "session_not_found"
	case errors.Is(err, apperror.ErrSessionClosed):
		code, status = http.StatusConflict, "session_closed"
	case errors.Is(err, apperror.ErrNotYourTurn):
		status = "not_your_turn"
	case errors.Is(err, apperror.ErrWrongPhase):
		status = "wrong_phase"
	case errors.Is(err, apperror.ErrInvalidDraw):
		status = "invalid_draw"
	case errors.Is(err, apperror.ErrInvalidMeld):
		status = "invalid_meld"
	case errors.Is(err, apperror.ErrInvalidAttach):
		status = "invalid_attach"
	case errors.Is(err, apperror.ErrMustOpenFirst):
		status = "must_open_first"
	case errors.Is(err, apperror.ErrCannotClose):
		status = "cannot_close"
	case errors.Is(err, apperror.ErrDeckExhausted):
		code, status = http.StatusConflict, "deck_exhausted"
	case errors.Is(err, pinellone.ErrInvalidPlayers):
		status = "invalid_players"
	case errors.Is(err, pinellone.ErrInvalidDiscard):
		status = "invalid_discard"
	default:
		that.logger.Error("unexpected error", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"})
	}

	return ctx.JSON(code, errorResponse{Error: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, status, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Error: status, Message: message})
}
