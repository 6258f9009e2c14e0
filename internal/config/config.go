package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env-default:"info"`
	HTTPPort string `yaml:"http-port" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Rules    Rules  `yaml:"rules"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

// Rules - the Pinellone rule set. Every contested interpretation of the
// official rules is a knob here instead of a hardcoded choice.
type Rules struct {
	DeckCount      int `yaml:"deck-count" env-default:"2"`
	JokersPerDeck  int `yaml:"jokers-per-deck" env-default:"2"`
	CardsPerPlayer int `yaml:"cards-per-player" env-default:"15"`
	DeckDrawCount  int `yaml:"deck-draw-count" env-default:"2"`

	OpenRequiresSestina bool `yaml:"open-requires-sestina" env-default:"true"`
	AllowRankSets       bool `yaml:"allow-rank-sets" env-default:"true"`
	AttachOpponentMelds bool `yaml:"attach-opponent-melds" env-default:"false"`

	SestinaMinLength int `yaml:"sestina-min-length" env-default:"6"`
	CloseBonus       int `yaml:"close-bonus" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
