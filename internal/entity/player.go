package entity

import "sort"

type Player struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Hand      []Card   `json:"hand"`
	Melds     [][]Card `json:"melds"`
	HasOpened bool     `json:"has_opened"`
	Score     int      `json:"score"`
}

// PlayerRef maps a player identifier back to its session.
type PlayerRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	GameID string `json:"game_id"`
}

// AddCard puts a card into the hand, keeping it sorted so that indexed
// actions stay stable between the client's view and the next request.
func (that *Player) AddCard(card Card) {
	that.Hand = append(that.Hand, card)
	sort.SliceStable(that.Hand, func(i, j int) bool {
		return that.Hand[i].SortKey() < that.Hand[j].SortKey()
	})
}

// RemoveCards removes the cards at the given hand positions. Indices must be
// valid and pairwise distinct; the caller validates before mutating.
func (that *Player) RemoveCards(indices []int) []Card {
	removed := make([]Card, 0, len(indices))

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, i := range sorted {
		removed = append(removed, that.Hand[i])
		that.Hand = append(that.Hand[:i], that.Hand[i+1:]...)
	}

	return removed
}

// AddMeld lays down a new meld; the first one opens the player.
func (that *Player) AddMeld(meld []Card) {
	that.Melds = append(that.Melds, meld)
	that.HasOpened = true
}

// HandValue - total scoring value of cards left in hand.
func (that *Player) HandValue() int {
	total := 0
	for _, card := range that.Hand {
		total += card.Value()
	}

	return total
}
