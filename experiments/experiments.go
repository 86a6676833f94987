package experiments

import (
	"fmt"

	"flip7/agent"
	"flip7/engine"
	"flip7/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Record summarises the games of one setting. The MCTS agent always sits in seat 0.
type Record struct {
	Simulations  int
	Flip7Weight  float64
	Opponent     string
	Games        int
	MCTSWins     int
	OpponentWins int
	Exhausted    int // Games decided by the leader when the deck ran out
}

// Run plays every combination of budget, weight and opponent. Agents are
// created fresh for each game and all seeds derive from cfg.Seed.
func Run(cfg Config) ([]Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	log.Info().Msgf("starting sweep over %d budgets, %d weights and %d opponents...",
		len(cfg.Simulations), len(cfg.Weights), len(cfg.Opponents))

	var records []Record
	for _, sims := range cfg.Simulations {
		for _, weight := range cfg.Weights {
			for _, opponent := range cfg.Opponents {
				record := Record{Simulations: sims, Flip7Weight: weight, Opponent: opponent, Games: cfg.Games}

				for i := 0; i < cfg.Games; i++ {
					mcts := searcher.NewMCTS(
						searcher.WithSimulations(sims),
						searcher.WithFlip7Weight(weight),
						searcher.WithWorkers(cfg.Workers),
						searcher.WithSeed(rng.Uint64()),
					)
					opp := newOpponent(opponent, cfg.Threshold, rng.Uint64())

					e := engine.LocalEngine([]agent.Agent{mcts, opp}, rng.Uint64())
					gameMetric, _, err := e.Run()
					if err != nil {
						return records, fmt.Errorf("game %d with sims=%d weight=%v vs %s: %w", i+1, sims, weight, opponent, err)
					}

					switch gameMetric.Winner {
					case 0:
						record.MCTSWins++
					case 1:
						record.OpponentWins++
					}
					if gameMetric.Exhausted {
						record.Exhausted++
					}
				}

				log.Info().Msgf("sims=%d weight=%v vs=%s -> mcts_wins=%d / %d",
					sims, weight, opponent, record.MCTSWins, record.Games)
				records = append(records, record)
			}
		}
	}

	log.Info().Msgf("completed sweep with %d settings", len(records))
	return records, nil
}

func newOpponent(name string, threshold int, seed uint64) agent.Agent {
	if name == OpponentHeuristic {
		return agent.NewThreshold(threshold)
	}
	return agent.NewRandom(seed)
}
