package pinellone

import (
	"github.com/rocketscienceinc/pinellone-backend/internal/config"
	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
)

const maxRankValue = 13 // K

// Ruleset holds the configured rule interpretation. All predicates are pure:
// they never error, they return false on structurally invalid input.
type Ruleset struct {
	conf config.Rules
}

func NewRuleset(conf config.Rules) Ruleset {
	return Ruleset{conf: conf}
}

// IsValidMeld reports whether the cards form a legal meld: at least three
// cards, not all wild, making up either a rank set or a suited run.
func (that Ruleset) IsValidMeld(cards []entity.Card) bool {
	if len(cards) < 3 || allWild(cards) {
		return false
	}

	if that.conf.AllowRankSets && isValidSet(cards) {
		return true
	}

	return isValidRun(cards)
}

// IsValidSestina reports whether the cards form the closing combination: a
// suited run whose natural core is at least the configured length, with wild
// cards tolerated only at the ends.
func (that Ruleset) IsValidSestina(cards []entity.Card) bool {
	if len(cards) < that.conf.SestinaMinLength {
		return false
	}

	naturals := make([]entity.Card, 0, len(cards))
	firstNatural, lastNatural := -1, -1

	for i, card := range cards {
		if card.IsWild() {
			continue
		}

		naturals = append(naturals, card)
		if firstNatural == -1 {
			firstNatural = i
		}
		lastNatural = i
	}

	if len(naturals) < that.conf.SestinaMinLength {
		return false
	}

	// wilds may pad the ends but never sit inside the natural core
	if lastNatural-firstNatural+1 != len(naturals) {
		return false
	}

	// end wilds occupy rank slots too, so validate the padded sequence:
	// a wild below the ace or above the king falls off the scale
	return isValidRun(cards)
}

// CanAttach reports whether appending the card to either end of the meld
// preserves its validity.
func (that Ruleset) CanAttach(card entity.Card, meld []entity.Card) (bool, bool) {
	if len(meld) == 0 {
		return false, false
	}

	front := append([]entity.Card{card}, meld...)
	if that.IsValidMeld(front) {
		return true, true
	}

	back := make([]entity.Card, 0, len(meld)+1)
	back = append(back, meld...)
	back = append(back, card)

	return that.IsValidMeld(back), false
}

// CanClose reports whether the player may close the game: exactly one card
// left in hand and a sestina among the completed melds.
func (that Ruleset) CanClose(player *entity.Player) bool {
	if len(player.Hand) != 1 {
		return false
	}

	return that.HasSestina(player)
}

func (that Ruleset) HasSestina(player *entity.Player) bool {
	for _, meld := range player.Melds {
		if that.IsValidSestina(meld) {
			return true
		}
	}

	return false
}

// MeldValue scores a completed meld. Sestine count double; long wild-free
// runs earn their own multipliers.
func (that Ruleset) MeldValue(meld []entity.Card) int {
	base := 0
	clean := true

	for _, card := range meld {
		base += card.Value()
		if card.IsWild() {
			clean = false
		}
	}

	if that.IsValidSestina(meld) {
		return base * 2
	}

	switch {
	case clean && len(meld) >= 10:
		return base * 3
	case clean && len(meld) >= 7:
		return base * 2
	}

	return base
}

// isValidSet - same rank across distinct suits, with at most one wild
// standing in for a missing suit slot.
func isValidSet(cards []entity.Card) bool {
	if len(cards) > len(entity.Suits) {
		return false
	}

	rank := ""
	wilds := 0
	seen := make(map[string]bool, len(entity.Suits))

	for _, card := range cards {
		if card.IsWild() {
			wilds++
			continue
		}

		if rank == "" {
			rank = card.Rank
		}

		if card.Rank != rank || seen[card.Suit] {
			return false
		}
		seen[card.Suit] = true
	}

	return wilds <= 1
}

// isValidRun - consecutive ranks of one suit, in submitted order. A wild
// stands for exactly the rank its position requires; the "2" slot between
// ace and three can only ever be taken by a wild. Two adjacent wilds are
// not allowed.
func isValidRun(cards []entity.Card) bool {
	suit := ""
	start := 0

	for i, card := range cards {
		if card.IsWild() {
			if i > 0 && cards[i-1].IsWild() {
				return false
			}
			continue
		}

		if suit == "" {
			suit = card.Suit
			start = card.RankValue() - i
		}

		if card.Suit != suit || card.RankValue() != start+i {
			return false
		}
	}

	if suit == "" {
		return false
	}

	return start >= 1 && start+len(cards)-1 <= maxRankValue
}

func allWild(cards []entity.Card) bool {
	for _, card := range cards {
		if !card.IsWild() {
			return false
		}
	}

	return true
}
