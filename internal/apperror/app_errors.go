package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is already closed")

	ErrNotYourTurn = errors.New("it's not your turn")
	ErrWrongPhase  = errors.New("action is not legal in the current phase")

	ErrInvalidDraw   = errors.New("invalid draw")
	ErrInvalidMeld   = errors.New("invalid meld")
	ErrInvalidAttach = errors.New("invalid attach")
	ErrMustOpenFirst = errors.New("player must open before discarding")
	ErrCannotClose   = errors.New("player cannot close the game")

	ErrDeckExhausted = errors.New("deck and discard pile are exhausted")
)
