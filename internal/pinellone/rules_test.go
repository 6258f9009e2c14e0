package pinellone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/pinellone-backend/internal/config"
	"github.com/rocketscienceinc/pinellone-backend/internal/entity"
)

func defaultRules() config.Rules {
	return config.Rules{
		DeckCount:           2,
		JokersPerDeck:       2,
		CardsPerPlayer:      15,
		DeckDrawCount:       2,
		OpenRequiresSestina: true,
		AllowRankSets:       true,
		AttachOpponentMelds: false,
		SestinaMinLength:    6,
		CloseBonus:          100,
	}
}

func card(rank, suit string) entity.Card {
	return entity.NewCard(rank, suit)
}

func TestRuleset_IsValidMeld(t *testing.T) {
	rules := NewRuleset(defaultRules())

	t.Run("three of a kind set is valid", func(t *testing.T) {
		cards := []entity.Card{card("A", entity.SuitSpades), card("A", entity.SuitHearts), card("A", entity.SuitDiamonds)}

		assert.True(t, rules.IsValidMeld(cards))
	})

	t.Run("set with repeated suit is invalid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), card("7", entity.SuitSpades), card("7", entity.SuitHearts)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("set with a wild filler is valid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), card("7", entity.SuitHearts), entity.NewJoker()}

		assert.True(t, rules.IsValidMeld(cards))
	})

	t.Run("set with two wild fillers is invalid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), entity.NewJoker(), entity.NewJoker()}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("four card set may still carry only one wild", func(t *testing.T) {
		cards := []entity.Card{card("A", entity.SuitSpades), card("A", entity.SuitHearts), entity.NewJoker(), entity.NewPinella(entity.SuitClubs)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("suited run is valid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), card("8", entity.SuitSpades), card("9", entity.SuitSpades)}

		assert.True(t, rules.IsValidMeld(cards))
	})

	t.Run("non-consecutive run is invalid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), card("9", entity.SuitSpades), card("J", entity.SuitSpades)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("mixed suit run is invalid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), card("8", entity.SuitHearts), card("9", entity.SuitSpades)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("joker fills the gap in a run", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), entity.NewJoker(), card("9", entity.SuitSpades)}

		assert.True(t, rules.IsValidMeld(cards))
	})

	t.Run("pinella fills the two slot between ace and three", func(t *testing.T) {
		cards := []entity.Card{card("A", entity.SuitSpades), entity.NewPinella(entity.SuitClubs), card("3", entity.SuitSpades)}

		assert.True(t, rules.IsValidMeld(cards))
	})

	t.Run("adjacent wilds are invalid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), entity.NewJoker(), entity.NewPinella(entity.SuitSpades), card("10", entity.SuitSpades)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("run cannot extend past the king", func(t *testing.T) {
		cards := []entity.Card{card("Q", entity.SuitSpades), card("K", entity.SuitSpades), entity.NewJoker()}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("run cannot extend below the ace", func(t *testing.T) {
		cards := []entity.Card{entity.NewJoker(), card("A", entity.SuitSpades), entity.NewPinella(entity.SuitClubs)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("fewer than three cards is invalid", func(t *testing.T) {
		cards := []entity.Card{card("7", entity.SuitSpades), card("8", entity.SuitSpades)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		assert.False(t, rules.IsValidMeld(nil))
	})

	t.Run("all wild cards are invalid", func(t *testing.T) {
		cards := []entity.Card{entity.NewJoker(), entity.NewJoker(), entity.NewPinella(entity.SuitSpades)}

		assert.False(t, rules.IsValidMeld(cards))
	})

	t.Run("sets can be disabled by the rule set", func(t *testing.T) {
		conf := defaultRules()
		conf.AllowRankSets = false
		strict := NewRuleset(conf)

		cards := []entity.Card{card("A", entity.SuitSpades), card("A", entity.SuitHearts), card("A", entity.SuitDiamonds)}

		assert.False(t, strict.IsValidMeld(cards))
	})
}

func TestRuleset_IsValidSestina(t *testing.T) {
	rules := NewRuleset(defaultRules())

	sixRun := []entity.Card{
		card("3", entity.SuitSpades), card("4", entity.SuitSpades), card("5", entity.SuitSpades),
		card("6", entity.SuitSpades), card("7", entity.SuitSpades), card("8", entity.SuitSpades),
	}

	t.Run("six natural consecutive cards form a sestina", func(t *testing.T) {
		assert.True(t, rules.IsValidSestina(sixRun))
	})

	t.Run("a wild at the end is tolerated", func(t *testing.T) {
		cards := append(append([]entity.Card{}, sixRun...), entity.NewJoker())

		assert.True(t, rules.IsValidSestina(cards))
	})

	t.Run("a wild inside the natural core breaks it", func(t *testing.T) {
		cards := []entity.Card{
			card("3", entity.SuitSpades), card("4", entity.SuitSpades), card("5", entity.SuitSpades),
			entity.NewJoker(),
			card("6", entity.SuitSpades), card("7", entity.SuitSpades), card("8", entity.SuitSpades),
		}

		assert.False(t, rules.IsValidSestina(cards))
	})

	t.Run("five naturals plus a wild are not enough", func(t *testing.T) {
		cards := []entity.Card{
			card("3", entity.SuitSpades), card("4", entity.SuitSpades), card("5", entity.SuitSpades),
			card("6", entity.SuitSpades), card("7", entity.SuitSpades), entity.NewJoker(),
		}

		assert.False(t, rules.IsValidSestina(cards))
	})

	t.Run("an end wild cannot stand above the king", func(t *testing.T) {
		cards := []entity.Card{
			card("8", entity.SuitSpades), card("9", entity.SuitSpades), card("10", entity.SuitSpades),
			card("J", entity.SuitSpades), card("Q", entity.SuitSpades), card("K", entity.SuitSpades),
			entity.NewJoker(),
		}

		assert.False(t, rules.IsValidSestina(cards))
	})

	t.Run("two wilds at one end are invalid", func(t *testing.T) {
		cards := append([]entity.Card{entity.NewJoker(), entity.NewPinella(entity.SuitClubs)}, sixRun...)

		assert.False(t, rules.IsValidSestina(cards))
	})

	t.Run("mixed suits are not a sestina", func(t *testing.T) {
		cards := append(append([]entity.Card{}, sixRun[:5]...), card("8", entity.SuitHearts))

		assert.False(t, rules.IsValidSestina(cards))
	})
}

func TestRuleset_CanAttach(t *testing.T) {
	rules := NewRuleset(defaultRules())

	run := []entity.Card{card("7", entity.SuitSpades), card("8", entity.SuitSpades), card("9", entity.SuitSpades)}

	t.Run("card attaches to the back of a run", func(t *testing.T) {
		ok, atFront := rules.CanAttach(card("10", entity.SuitSpades), run)

		assert.True(t, ok)
		assert.False(t, atFront)
	})

	t.Run("card attaches to the front of a run", func(t *testing.T) {
		ok, atFront := rules.CanAttach(card("6", entity.SuitSpades), run)

		assert.True(t, ok)
		assert.True(t, atFront)
	})

	t.Run("unrelated card does not attach", func(t *testing.T) {
		ok, _ := rules.CanAttach(card("J", entity.SuitSpades), run)

		assert.False(t, ok)
	})

	t.Run("fourth suit attaches to a set", func(t *testing.T) {
		set := []entity.Card{card("A", entity.SuitSpades), card("A", entity.SuitHearts), card("A", entity.SuitDiamonds)}

		ok, _ := rules.CanAttach(card("A", entity.SuitClubs), set)

		assert.True(t, ok)
	})

	t.Run("nothing attaches to an empty meld", func(t *testing.T) {
		ok, _ := rules.CanAttach(card("A", entity.SuitSpades), nil)

		assert.False(t, ok)
	})
}

func TestRuleset_CanClose(t *testing.T) {
	rules := NewRuleset(defaultRules())

	sestina := []entity.Card{
		card("3", entity.SuitSpades), card("4", entity.SuitSpades), card("5", entity.SuitSpades),
		card("6", entity.SuitSpades), card("7", entity.SuitSpades), card("8", entity.SuitSpades),
	}

	t.Run("one card left and a sestina allows closing", func(t *testing.T) {
		player := &entity.Player{
			Hand:  []entity.Card{card("K", entity.SuitHearts)},
			Melds: [][]entity.Card{sestina},
		}

		assert.True(t, rules.CanClose(player))
	})

	t.Run("two cards left blocks closing", func(t *testing.T) {
		player := &entity.Player{
			Hand:  []entity.Card{card("K", entity.SuitHearts), card("Q", entity.SuitHearts)},
			Melds: [][]entity.Card{sestina},
		}

		assert.False(t, rules.CanClose(player))
	})

	t.Run("no sestina blocks closing", func(t *testing.T) {
		run := []entity.Card{card("7", entity.SuitHearts), card("8", entity.SuitHearts), card("9", entity.SuitHearts)}
		player := &entity.Player{
			Hand:  []entity.Card{card("K", entity.SuitHearts)},
			Melds: [][]entity.Card{run},
		}

		assert.False(t, rules.CanClose(player))
	})
}

func TestRuleset_MeldValue(t *testing.T) {
	rules := NewRuleset(defaultRules())

	t.Run("sestina counts double", func(t *testing.T) {
		sestina := []entity.Card{
			card("3", entity.SuitSpades), card("4", entity.SuitSpades), card("5", entity.SuitSpades),
			card("6", entity.SuitSpades), card("7", entity.SuitSpades), card("8", entity.SuitSpades),
		}

		// 5+5+5+10+10+10 doubled
		assert.Equal(t, 90, rules.MeldValue(sestina))
	})

	t.Run("plain run counts its card values", func(t *testing.T) {
		run := []entity.Card{card("7", entity.SuitHearts), card("8", entity.SuitHearts), card("9", entity.SuitHearts)}

		assert.Equal(t, 30, rules.MeldValue(run))
	})
}
