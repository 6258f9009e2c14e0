package entity

// GameView is the redacted projection of a session for one viewer: the
// viewer's own hand is concrete, every other hand is a count. Views are
// computed on demand and never stored.
type GameView struct {
	ID                 string       `json:"id"`
	Players            []PlayerView `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	Phase              string       `json:"phase"`
	DeckCount          int          `json:"deck_count"`
	DiscardPile        []Card       `json:"discard_pile"`
	IsGameOver         bool         `json:"is_game_over"`
	Winner             string       `json:"winner,omitempty"`
}

type PlayerView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Hand      []Card   `json:"hand,omitempty"`
	HandCount int      `json:"hand_count"`
	Melds     [][]Card `json:"melds"`
	HasOpened bool     `json:"has_opened"`
	Score     int      `json:"score"`
	CanClose  bool     `json:"can_close"`
}

// DrawPreview describes what a draw would add to the hand without mutating
// the session. Deck cards stay face down and are reported as a count.
type DrawPreview struct {
	DrawType     string `json:"draw_type"`
	DeckCards    int    `json:"deck_cards"`
	DiscardCards []Card `json:"discard_cards,omitempty"`
	TotalCards   int    `json:"total_cards"`
	Valid        bool   `json:"valid"`
}
