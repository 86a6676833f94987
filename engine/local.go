package engine

import (
	"errors"
	"fmt"
	"time"

	"flip7/agent"
	"flip7/experiments/metrics"
	"flip7/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Engine struct {
	ID     string
	State  *game.GameState
	Agents []agent.Agent // Indexed by player
}

// LocalEngine seats one agent per player around a freshly shuffled game.
func LocalEngine(agents []agent.Agent, seed uint64) *Engine {
	if len(agents) < 1 {
		panic("need at least one agent")
	}

	return &Engine{
		ID:     uuid.NewString(),
		State:  game.NewGameState(len(agents), seed),
		Agents: agents,
	}
}

// Run executes the game loop until a winner is found. Neither the rules nor
// the agents refill an exhausted deck, so running out of cards ends the game
// in favour of the current leader.
func (e *Engine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:         e.ID,
		NumPlayers: e.State.NumPlayers(),
		StartTime:  time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s started with %d players", e.ID, e.State.NumPlayers())

	step := 1
	for !e.State.GameOver() && step <= MaxMoves {
		player := e.State.CurrentPlayer()

		action, err := e.Agents[player].ChooseAction(e.State)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %d failed to choose an action: %w", player, err)
		}

		outcome, err := e.State.ApplyAction(action)
		if errors.Is(err, game.ErrEmptyDeck) {
			// Played cards are not reshuffled, an empty pile ends the game
			log.Warn().Msgf("game %s ran out of cards at move %d", e.ID, step)
			gameMetric.Exhausted = true
			break
		}
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %d played %v: %w", player, action, err)
		}

		log.Debug().Msgf("move %d: player %d %v -> %s (banked %d) %v",
			step, player, action, outcome.Result, outcome.Banked, e.State)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:     step,
			Player:   player,
			Action:   action,
			Result:   outcome.Result,
			Banked:   outcome.Banked,
			RoundEnd: outcome.RoundEnd,
		})
		step++
	}

	winner, ok := e.State.Winner()
	if !ok {
		winner = e.State.Leader()
		if !gameMetric.Exhausted {
			log.Warn().Msgf("game %s stopped after %d moves without a winner", e.ID, MaxMoves)
		}
	}

	gameMetric.Winner = winner
	gameMetric.Totals = e.State.Totals()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game %s over! winner: player %d with totals %v", e.ID, winner, gameMetric.Totals)
	return gameMetric, moveMetrics, nil
}
