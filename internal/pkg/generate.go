package pkg

import "github.com/google/uuid"

// GenerateGameID returns a new unique game session identifier.
func GenerateGameID() string {
	return uuid.NewString()
}

// GeneratePlayerID returns a new unique player identifier.
func GeneratePlayerID() string {
	return uuid.NewString()
}
