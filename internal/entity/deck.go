package entity

import (
	"errors"
	"math/rand"
)

var ErrNotEnoughCards = errors.New("not enough cards in deck")

// pinellaSuits - only the black twos stay in the deck, as wild pinelle.
var pinellaSuits = []string{SuitSpades, SuitClubs}

// NewDeck builds an unshuffled Pinellone supply: per deck, every suit holds
// A and 3..K, the black twos come back as pinelle, plus the jokers.
func NewDeck(deckCount, jokersPerDeck int) []Card {
	size := deckCount * (len(Suits)*len(NormalRanks) + len(pinellaSuits) + jokersPerDeck)
	deck := make([]Card, 0, size)

	for i := 0; i < deckCount; i++ {
		for _, suit := range pinellaSuits {
			deck = append(deck, NewPinella(suit))
		}

		for _, suit := range Suits {
			for _, rank := range NormalRanks {
				deck = append(deck, NewCard(rank, suit))
			}
		}

		for i := 0; i < jokersPerDeck; i++ {
			deck = append(deck, NewJoker())
		}
	}

	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

// DealCards removes hands for each player from the front of the deck and
// returns the remaining supply.
func DealCards(deck []Card, players, perPlayer int) ([]Card, [][]Card, error) {
	if len(deck) < players*perPlayer {
		return nil, nil, ErrNotEnoughCards
	}

	hands := make([][]Card, 0, players)
	rest := deck

	for i := 0; i < players; i++ {
		hand := make([]Card, perPlayer)
		copy(hand, rest[:perPlayer])
		rest = rest[perPlayer:]
		hands = append(hands, hand)
	}

	return rest, hands, nil
}
