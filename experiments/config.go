package experiments

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	OpponentRandom    = "random"
	OpponentHeuristic = "heuristic"
)

var ErrUnknownOpponent = errors.New("unknown opponent")

// Config describes a sweep of MCTS agents against fixed-policy opponents
type Config struct {
	Simulations []int     `yaml:"simulations"` // Search budgets per decision
	Weights     []float64 `yaml:"weights"`     // Flip7 reward weights
	Opponents   []string  `yaml:"opponents"`   // random or heuristic
	Games       int       `yaml:"games"`       // Games per setting
	Seed        uint64    `yaml:"seed"`
	Workers     int       `yaml:"workers"`   // Search goroutines per decision
	Threshold   int       `yaml:"threshold"` // Stay limit of the heuristic opponent
}

func DefaultConfig() Config {
	return Config{
		Simulations: []int{10, 100, 1000},
		Weights:     []float64{0, 10, 25, 50, 100},
		Opponents:   []string{OpponentRandom, OpponentHeuristic},
		Games:       2,
		Workers:     1,
		Threshold:   15,
	}
}

// ParseConfig decodes a YAML sweep, filling omitted fields with defaults
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config: %w", err)
	}

	defaults := DefaultConfig()
	if len(cfg.Simulations) == 0 {
		cfg.Simulations = defaults.Simulations
	}
	if len(cfg.Weights) == 0 {
		cfg.Weights = defaults.Weights
	}
	if len(cfg.Opponents) == 0 {
		cfg.Opponents = defaults.Opponents
	}
	if cfg.Games == 0 {
		cfg.Games = defaults.Games
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = defaults.Threshold
	}

	return cfg, cfg.Validate()
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	for _, sims := range c.Simulations {
		if sims < 0 {
			return fmt.Errorf("invalid simulation budget %d", sims)
		}
	}
	for _, opponent := range c.Opponents {
		if opponent != OpponentRandom && opponent != OpponentHeuristic {
			return fmt.Errorf("%w: %q", ErrUnknownOpponent, opponent)
		}
	}
	if c.Games < 0 {
		return fmt.Errorf("invalid number of games %d", c.Games)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers %d", c.Workers)
	}
	return nil
}
