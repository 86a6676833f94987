package searcher

import (
	"fmt"
	"math"
	"sync"
	"time"

	"flip7/experiments/metrics"
	"flip7/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultSimulations = 1000
	DefaultFlip7Weight = 50.0
)

type Option func(mcts *MCTS)

// ActionStats holds the merged root statistics of one action
type ActionStats struct {
	Action  game.Action
	Visits  int
	Rewards float64
}

// Mean returns the average reward, -Inf for an action never simulated
func (s ActionStats) Mean() float64 {
	if s.Visits == 0 {
		return math.Inf(-1)
	}
	return s.Rewards / float64(s.Visits)
}

// MCTS searches the current player's turn over determinized copies of the
// hidden deck. It is not safe for concurrent use: decisions share one seeded
// generator so that a whole game replays from the seed.
type MCTS struct {
	simulations int
	flip7Weight float64
	exploration float64
	workers     int
	duration    time.Duration
	rng         *rand.Rand
	metrics     metrics.Collector
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations >= 0 {
			m.simulations = simulations
		}
	}
}

// WithFlip7Weight sets the reward bonus for simulations that reach a flip7
func WithFlip7Weight(weight float64) Option {
	return func(m *MCTS) {
		m.flip7Weight = weight
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWorkers searches independent trees in parallel and merges their root statistics
func WithWorkers(workers int) Option {
	return func(m *MCTS) {
		if workers > 0 {
			m.workers = workers
		}
	}
}

// WithDuration stops every search after the given wall time even if the
// budget is not spent. Searches are no longer reproducible with a duration.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		simulations: DefaultSimulations,
		flip7Weight: DefaultFlip7Weight,
		exploration: DefaultExploration,
		workers:     1,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Simulations() int {
	return m.simulations
}

// ChooseAction decides with the configured simulation budget
func (m *MCTS) ChooseAction(state *game.GameState) (game.Action, error) {
	return m.Decide(state, m.simulations)
}

// Decide returns the root action with the highest mean reward after budget
// simulations. The given state is never mutated. When no action was
// simulated, e.g. with a zero budget, a legal action is chosen uniformly at
// random.
func (m *MCTS) Decide(state *game.GameState, budget int) (game.Action, error) {
	stats, metric, err := m.Simulate(state, budget)
	if err != nil {
		return 0, err
	}

	best := -1
	maxMean := math.Inf(-1)
	for i, s := range stats {
		if mean := s.Mean(); mean > maxMean {
			maxMean = mean
			best = i
		}
	}
	if best < 0 {
		actions := state.LegalActions()
		action := actions[m.rng.Intn(len(actions))]
		log.Warn().Msgf("no simulated action with budget %d, falling back to random %v", budget, action)
		return action, nil
	}

	log.Debug().Msgf("player %d chose %v after %d simulations in %v: %+v",
		state.CurrentPlayer(), stats[best].Action, metric.Simulations, metric.Duration, stats)
	return stats[best].Action, nil
}

// Simulate runs budget simulations split across the workers and returns the
// merged statistics of the root actions in legal action order.
func (m *MCTS) Simulate(state *game.GameState, budget int) ([]ActionStats, metrics.SearchMetric, error) {
	if len(state.LegalActions()) == 0 {
		return nil, metrics.SearchMetric{}, fmt.Errorf("cannot search: %w", game.ErrGameOver)
	}
	if budget < 0 {
		budget = 0
	}

	m.metrics.Start(m.workers, budget, m.flip7Weight)
	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	// Seeds are drawn in order so a fixed agent seed replays the whole search
	searches := make([]*search, m.workers)
	for i := range searches {
		share := budget / m.workers
		if i < budget%m.workers {
			share++
		}
		searches[i] = &search{
			player:      state.CurrentPlayer(),
			base:        state.Total(state.CurrentPlayer()),
			exploration: m.exploration,
			flip7Weight: m.flip7Weight,
			budget:      share,
			deadline:    deadline,
			rng:         rand.New(rand.NewSource(m.rng.Uint64())),
			metrics:     m.metrics,
		}
	}

	if m.workers == 1 {
		searches[0].run(state)
	} else {
		var wg sync.WaitGroup
		for _, s := range searches {
			wg.Add(1)
			go func(s *search) {
				defer wg.Done()
				s.run(state)
			}(s)
		}
		wg.Wait()
	}

	return merge(searches), m.metrics.Complete(), nil
}

func merge(searches []*search) []ActionStats {
	var stats []ActionStats
	for _, s := range searches {
		if stats == nil {
			stats = make([]ActionStats, len(s.root.actions))
			for i, action := range s.root.actions {
				stats[i].Action = action
			}
		}
		for i, child := range s.root.children {
			stats[i].Visits += child.visits
			stats[i].Rewards += child.rewards
		}
	}
	return stats
}

// search is a single tree grown by one worker
type search struct {
	root        *node
	player      int // The player whose turn is being searched
	base        int // The player's total at the root
	exploration float64
	flip7Weight float64
	budget      int
	deadline    time.Time
	rng         *rand.Rand
	metrics     metrics.Collector
}

func (s *search) run(state *game.GameState) {
	s.root = newNode(nil, s.determinize(state))
	s.root.expand(s.rng)

	for i := 0; i < s.budget; i++ {
		if !s.deadline.IsZero() && time.Now().After(s.deadline) {
			break
		}
		s.simulate()
		s.metrics.AddSimulation()
	}
}

// determinize samples one ordering of the hidden deck
func (s *search) determinize(state *game.GameState) *game.GameState {
	det := state.Clone()
	det.Deck().ShuffleWith(s.rng)
	return det
}

func (s *search) simulate() {
	leaf := selectThenExpand(s.root, s.exploration, s.rng)
	reward := s.evaluate(leaf)
	backup(leaf, reward)
}

func selectThenExpand(root *node, c float64, rng *rand.Rand) *node {
	n := root
	for !n.isLeaf() {
		n = n.selectChild(c)
	}
	if n.visits > 0 && !n.terminal {
		n.expand(rng)
		if !n.isLeaf() {
			n = n.randomChild(rng)
		}
	}
	return n
}

// evaluate rolls out a fresh determinization of the leaf and scores the
// searching player's net gain over the turn
func (s *search) evaluate(leaf *node) float64 {
	state := s.determinize(leaf.state)

	flip7, full := leaf.flip7, true
	if !leaf.terminal {
		rolled, completed := rollout(state, s.rng)
		flip7 = flip7 || rolled
		full = completed
	}
	if full {
		s.metrics.AddFullRollout()
	}

	reward := float64(state.Total(s.player) - s.base)
	if flip7 {
		s.metrics.AddFlip7()
		reward += s.flip7Weight
	}
	return reward
}

// rollout plays uniformly random legal actions until the current line ends.
// It stops early, without error, when the deck runs out.
func rollout(state *game.GameState, rng *rand.Rand) (flip7 bool, completed bool) {
	for {
		actions := state.LegalActions()
		if len(actions) == 0 {
			return flip7, true
		}
		if state.Deck().Remaining() == 0 {
			return flip7, false
		}

		action := actions[rng.Intn(len(actions))] // Random rollout policy
		outcome, err := state.ApplyAction(action)
		if err != nil {
			return flip7, false
		}
		flip7 = flip7 || outcome.Flip7
		if outcome.RoundEnd {
			return flip7, true
		}
	}
}

func backup(leaf *node, reward float64) {
	n := leaf
	for n != nil {
		n = n.backup(reward)
	}
}
