package entity

const (
	SuitSpades   = "♠"
	SuitHearts   = "♥"
	SuitDiamonds = "♦"
	SuitClubs    = "♣"
)

const (
	CardTypeNormal  = "normal"
	CardTypeJoker   = "joker"
	CardTypePinella = "pinella"
)

const (
	RankAce   = "A"
	RankTwo   = "2"
	RankJoker = "Joker"
)

// Suits in display order.
var Suits = []string{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// NormalRanks - the ranks dealt as normal cards. Twos only exist as pinelle.
var NormalRanks = []string{"A", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// rankOrder positions ranks on the run scale. The "2" slot sits between
// ace and three and can only be filled by a wild card.
var rankOrder = map[string]int{
	"A": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7,
	"8": 8, "9": 9, "10": 10, "J": 11, "Q": 12, "K": 13,
}

// Card is an immutable value object. Two physical copies of the same card
// exist in a double-deck game, so cards carry no per-copy identity.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
	Type string `json:"card_type"`
}

func NewCard(rank, suit string) Card {
	return Card{Rank: rank, Suit: suit, Type: CardTypeNormal}
}

func NewJoker() Card {
	return Card{Rank: RankJoker, Suit: "", Type: CardTypeJoker}
}

func NewPinella(suit string) Card {
	return Card{Rank: RankTwo, Suit: suit, Type: CardTypePinella}
}

func (that Card) IsJoker() bool {
	return that.Type == CardTypeJoker
}

func (that Card) IsPinella() bool {
	return that.Type == CardTypePinella
}

func (that Card) IsWild() bool {
	return that.IsJoker() || that.IsPinella()
}

// Value - card value for scoring.
func (that Card) Value() int {
	switch {
	case that.IsJoker():
		return 25
	case that.IsPinella():
		return 20
	case that.Rank == RankAce:
		return 15
	case that.Rank == "3" || that.Rank == "4" || that.Rank == "5":
		return 5
	default:
		return 10
	}
}

// RankValue - position of the card on the run scale, 0 for wilds.
func (that Card) RankValue() int {
	if that.IsWild() {
		return 0
	}
	return rankOrder[that.Rank]
}

// SortKey orders a hand by suit then rank, wilds at the end.
func (that Card) SortKey() int {
	if that.IsWild() {
		return 9999
	}

	suitOrder := map[string]int{SuitSpades: 1, SuitHearts: 2, SuitDiamonds: 3, SuitClubs: 4}

	return suitOrder[that.Suit]*100 + rankOrder[that.Rank]
}

func (that Card) String() string {
	if that.IsJoker() {
		return "Joker"
	}
	return that.Rank + that.Suit
}
