package agent

import (
	"flip7/game"

	"golang.org/x/exp/rand"
)

const DefaultThreshold = 15

type Agent interface {
	// ChooseAction returns the action to play for the current player. The
	// state must not be mutated.
	ChooseAction(state *game.GameState) (game.Action, error)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandom returns an agent that plays uniformly random legal actions.
func NewRandom(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) ChooseAction(state *game.GameState) (game.Action, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return 0, game.ErrGameOver
	}
	return actions[a.rng.Intn(len(actions))], nil
}

type thresholdAgent struct {
	limit int
}

// NewThreshold returns an agent that stays once its line, before any flip7
// bonus, is worth at least limit points.
func NewThreshold(limit int) Agent {
	if limit <= 0 {
		limit = DefaultThreshold
	}
	return thresholdAgent{limit: limit}
}

func (a thresholdAgent) ChooseAction(state *game.GameState) (game.Action, error) {
	if state.GameOver() {
		return 0, game.ErrGameOver
	}

	round := state.Round()
	score := 0
	for _, n := range round.Numbers {
		score += n
	}
	if round.Multiplier {
		score *= 2
	}
	score += round.Modifier

	if score >= a.limit {
		return game.Stay, nil
	}
	return game.Hit, nil
}
