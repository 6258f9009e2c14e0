package pinellone

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pinellone-backend/internal/apperror"
	"github.com/rocketscienceinc/pinellone-backend/internal/config"
	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
	"github.com/rocketscienceinc/pinellone-backend/internal/pkg"
)

const playersPerGame = 2

var (
	ErrInvalidPlayers = errors.New("exactly two player names required")
	ErrInvalidDiscard = errors.New("invalid discard")
)

// Engine applies player actions to a game session. Every action validates
// before it mutates, so a failed call leaves the session untouched.
type Engine struct {
	rules Ruleset
	conf  config.Rules
}

func NewEngine(conf config.Rules) *Engine {
	return &Engine{
		rules: NewRuleset(conf),
		conf:  conf,
	}
}

// NewGame builds a fresh session: shuffled double deck, dealt hands, empty
// discard pile, player 0 to draw.
func (that *Engine) NewGame(id string, playerNames []string) (*entity.Game, error) {
	if len(playerNames) != playersPerGame {
		return nil, ErrInvalidPlayers
	}

	deck := entity.ShuffleDeck(entity.NewDeck(that.conf.DeckCount, that.conf.JokersPerDeck))
	total := len(deck)

	rest, hands, err := entity.DealCards(deck, playersPerGame, that.conf.CardsPerPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to deal cards: %w", err)
	}

	players := make([]*entity.Player, 0, playersPerGame)
	for i, name := range playerNames {
		player := &entity.Player{
			ID:   pkg.GeneratePlayerID(),
			Name: name,
		}
		for _, card := range hands[i] {
			player.AddCard(card)
		}
		players = append(players, player)
	}

	return &entity.Game{
		ID:          id,
		Players:     players,
		Deck:        rest,
		DiscardPile: []entity.Card{},
		Phase:       entity.PhaseDraw,
		Status:      entity.StatusOngoing,
		TotalCards:  total,
	}, nil
}

// Draw executes the draw phase. Deck mode takes the configured number of
// cards from the deck, replenishing it from the discard pile when short.
// Discard mode takes one deck card plus the pile from discardIndex to its
// top. On success the phase moves to play.
func (that *Engine) Draw(game *entity.Game, playerID, mode string, discardIndex int) error {
	if err := game.ConfirmTurn(playerID, entity.PhaseDraw); err != nil {
		return err
	}

	player := game.CurrentPlayer()

	switch mode {
	case entity.DrawModeDeck:
		cards, err := that.drawFromDeck(game, that.conf.DeckDrawCount)
		if err != nil {
			return err
		}
		for _, card := range cards {
			player.AddCard(card)
		}

	case entity.DrawModeDiscard:
		if len(game.DiscardPile) == 0 || discardIndex < 0 || discardIndex >= len(game.DiscardPile) {
			return fmt.Errorf("%w: discard index %d out of range", apperror.ErrInvalidDraw, discardIndex)
		}

		if len(game.Deck) == 0 {
			return fmt.Errorf("%w: deck is empty", apperror.ErrInvalidDraw)
		}

		player.AddCard(game.Deck[0])
		game.Deck = game.Deck[1:]

		taken := game.DiscardPile[discardIndex:]
		game.DiscardPile = game.DiscardPile[:discardIndex:discardIndex]
		for _, card := range taken {
			player.AddCard(card)
		}

	default:
		return fmt.Errorf("%w: unknown draw mode %q", apperror.ErrInvalidDraw, mode)
	}

	game.Phase = entity.PhasePlay

	return nil
}

// DrawPreview reports what a draw would add without mutating the session.
func (that *Engine) DrawPreview(game *entity.Game, mode string, discardIndex int) *entity.DrawPreview {
	preview := &entity.DrawPreview{DrawType: mode}

	if game.IsFinished() || game.Phase != entity.PhaseDraw {
		return preview
	}

	switch mode {
	case entity.DrawModeDeck:
		if len(game.Deck)+discardReserve(game) >= that.conf.DeckDrawCount {
			preview.DeckCards = that.conf.DeckDrawCount
			preview.Valid = true
		}

	case entity.DrawModeDiscard:
		if len(game.Deck) > 0 && discardIndex >= 0 && discardIndex < len(game.DiscardPile) {
			preview.DeckCards = 1
			preview.DiscardCards = append([]entity.Card{}, game.DiscardPile[discardIndex:]...)
			preview.Valid = true
		}
	}

	preview.TotalCards = preview.DeckCards + len(preview.DiscardCards)

	return preview
}

// Meld lays down the cards at the given hand positions as a new meld. The
// first meld must be a sestina when the rule set demands it.
func (that *Engine) Meld(game *entity.Game, playerID string, cardIndices []int) error {
	if err := game.ConfirmTurn(playerID, entity.PhasePlay); err != nil {
		return err
	}

	player := game.CurrentPlayer()

	cards, err := resolveIndices(player.Hand, cardIndices)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMeld, err)
	}

	if !player.HasOpened && that.conf.OpenRequiresSestina {
		if !that.rules.IsValidSestina(cards) {
			return fmt.Errorf("%w: first meld must be a sestina", apperror.ErrInvalidMeld)
		}
	} else if !that.rules.IsValidMeld(cards) {
		return apperror.ErrInvalidMeld
	}

	player.RemoveCards(cardIndices)
	player.AddMeld(cards)

	return nil
}

// Attach grows an existing meld by one card from the hand. meldIndex counts
// through the player's own melds first; when the variant allows it, indices
// past them continue into the opponent's melds.
func (that *Engine) Attach(game *entity.Game, playerID string, cardIndex, meldIndex int) error {
	if err := game.ConfirmTurn(playerID, entity.PhasePlay); err != nil {
		return err
	}

	player := game.CurrentPlayer()

	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return fmt.Errorf("%w: card index %d out of range", apperror.ErrInvalidAttach, cardIndex)
	}

	owner, localIndex, err := that.resolveMeld(game, player, meldIndex)
	if err != nil {
		return err
	}

	card := player.Hand[cardIndex]
	meld := owner.Melds[localIndex]

	ok, atFront := that.rules.CanAttach(card, meld)
	if !ok {
		return apperror.ErrInvalidAttach
	}

	player.RemoveCards([]int{cardIndex})

	if atFront {
		owner.Melds[localIndex] = append([]entity.Card{card}, meld...)
	} else {
		owner.Melds[localIndex] = append(meld, card)
	}

	return nil
}

// Discard moves one card from the hand to the top of the discard pile and
// passes the turn. A player who has never melded cannot discard.
func (that *Engine) Discard(game *entity.Game, playerID string, cardIndex int) error {
	if err := game.ConfirmTurn(playerID, entity.PhasePlay); err != nil {
		return err
	}

	player := game.CurrentPlayer()

	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return fmt.Errorf("%w: card index %d out of range", ErrInvalidDiscard, cardIndex)
	}

	if !player.HasOpened {
		return apperror.ErrMustOpenFirst
	}

	cards := player.RemoveCards([]int{cardIndex})
	game.DiscardPile = append(game.DiscardPile, cards[0])

	game.AdvanceTurn()

	return nil
}

// Close ends the game: the closing player discards their last card, scores
// are settled and the session turns terminal.
func (that *Engine) Close(game *entity.Game, playerID string) error {
	if err := game.ConfirmTurn(playerID, entity.PhasePlay); err != nil {
		return err
	}

	player := game.CurrentPlayer()

	if !that.rules.CanClose(player) {
		return apperror.ErrCannotClose
	}

	cards := player.RemoveCards([]int{0})
	game.DiscardPile = append(game.DiscardPile, cards[0])

	for _, p := range game.Players {
		if p.ID == player.ID {
			p.Score += that.conf.CloseBonus
		} else {
			p.Score -= p.HandValue()
		}
	}

	game.Status = entity.StatusFinished
	game.Winner = player.ID

	return nil
}

// View projects the session for one viewer: own hand concrete, the other
// hand only as a count.
func (that *Engine) View(game *entity.Game, viewerID string) *entity.GameView {
	players := make([]entity.PlayerView, 0, len(game.Players))

	for _, player := range game.Players {
		view := entity.PlayerView{
			ID:        player.ID,
			Name:      player.Name,
			HandCount: len(player.Hand),
			Melds:     player.Melds,
			HasOpened: player.HasOpened,
			Score:     player.Score,
			CanClose:  that.rules.CanClose(player),
		}

		if player.ID == viewerID {
			view.Hand = player.Hand
		}

		players = append(players, view)
	}

	return &entity.GameView{
		ID:                 game.ID,
		Players:            players,
		CurrentPlayerIndex: game.CurrentPlayerIndex,
		Phase:              game.Phase,
		DeckCount:          len(game.Deck),
		DiscardPile:        game.DiscardPile,
		IsGameOver:         game.IsFinished(),
		Winner:             game.Winner,
	}
}

// drawFromDeck removes n cards from the top of the deck, first shuffling the
// discard pile (minus its top card) back in when the deck runs short. When
// even that cannot supply n cards the round is over.
func (that *Engine) drawFromDeck(game *entity.Game, n int) ([]entity.Card, error) {
	// the session turns terminal here: a round nobody can draw in is over
	if len(game.Deck)+discardReserve(game) < n {
		game.Status = entity.StatusFinished

		return nil, apperror.ErrDeckExhausted
	}

	if len(game.Deck) < n {
		reshuffled := entity.ShuffleDeck(game.DiscardPile[:len(game.DiscardPile)-1])
		game.Deck = append(game.Deck, reshuffled...)
		game.DiscardPile = game.DiscardPile[len(game.DiscardPile)-1:]
	}

	cards := make([]entity.Card, n)
	copy(cards, game.Deck[:n])
	game.Deck = game.Deck[n:]

	return cards, nil
}

// resolveMeld maps a wire-level meld index to its owning player.
func (that *Engine) resolveMeld(game *entity.Game, player *entity.Player, meldIndex int) (*entity.Player, int, error) {
	if meldIndex >= 0 && meldIndex < len(player.Melds) {
		return player, meldIndex, nil
	}

	if that.conf.AttachOpponentMelds {
		rest := meldIndex - len(player.Melds)
		for _, other := range game.Players {
			if other.ID == player.ID {
				continue
			}
			if rest >= 0 && rest < len(other.Melds) {
				return other, rest, nil
			}
			rest -= len(other.Melds)
		}
	}

	return nil, 0, fmt.Errorf("%w: meld index %d out of range", apperror.ErrInvalidAttach, meldIndex)
}

// discardReserve - cards the discard pile can lend to the deck; the top card
// always stays.
func discardReserve(game *entity.Game) int {
	if len(game.DiscardPile) <= 1 {
		return 0
	}

	return len(game.DiscardPile) - 1
}

// resolveIndices copies the cards at the given hand positions, in the order
// they were submitted. Out-of-range or repeated positions are rejected.
func resolveIndices(hand []entity.Card, indices []int) ([]entity.Card, error) {
	if len(indices) == 0 {
		return nil, errors.New("no cards selected")
	}

	seen := make(map[int]bool, len(indices))
	cards := make([]entity.Card, 0, len(indices))

	for _, i := range indices {
		if i < 0 || i >= len(hand) {
			return nil, fmt.Errorf("card index %d out of range", i)
		}
		if seen[i] {
			return nil, fmt.Errorf("card index %d repeated", i)
		}
		seen[i] = true
		cards = append(cards, hand[i])
	}

	return cards, nil
}
