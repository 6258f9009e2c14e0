package entity

import (
	"fmt"

	"github.com/rocketscienceinc/pinellone-backend/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const (
	PhaseDraw    = "draw"
	PhasePlay    = "play"
	PhaseDiscard = "discard"
)

const (
	DrawModeDeck    = "deck"
	DrawModeDiscard = "discard"
)

// Game is the authoritative state of one Pinellone session. It is mutated
// only through the engine and serializes to a single JSON document.
type Game struct {
	ID                 string    `json:"id"`
	Players            []*Player `json:"players"`
	Deck               []Card    `json:"deck"`
	DiscardPile        []Card    `json:"discard_pile"`
	CurrentPlayerIndex int       `json:"current_player_index"`
	Phase              string    `json:"phase"`
	Status             string    `json:"status"`
	Winner             string    `json:"winner,omitempty"`
	TotalCards         int       `json:"total_cards"`
}

func (that *Game) CurrentPlayer() *Player {
	return that.Players[that.CurrentPlayerIndex]
}

func (that *Game) PlayerByID(id string) (*Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}

	return nil, false
}

// AdvanceTurn passes play to the other player and resets the phase.
func (that *Game) AdvanceTurn() {
	that.CurrentPlayerIndex = (that.CurrentPlayerIndex + 1) % len(that.Players)
	that.Phase = PhaseDraw
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// ConfirmTurn - checks that the session is still open, the action comes from
// the current player and the session is in the required phase.
func (that *Game) ConfirmTurn(playerID, phase string) error {
	if that.IsFinished() {
		return apperror.ErrSessionClosed
	}

	if that.CurrentPlayer().ID != playerID {
		return apperror.ErrNotYourTurn
	}

	if that.Phase != phase {
		return fmt.Errorf("%w: phase is %s", apperror.ErrWrongPhase, that.Phase)
	}

	return nil
}

// CardsInPlay counts every card in the session; for all reachable states it
// must equal TotalCards.
func (that *Game) CardsInPlay() int {
	total := len(that.Deck) + len(that.DiscardPile)

	for _, player := range that.Players {
		total += len(player.Hand)
		for _, meld := range player.Melds {
			total += len(meld)
		}
	}

	return total
}
