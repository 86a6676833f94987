package metrics

import (
	"sync/atomic"
	"time"

	"flip7/game"
)

type SearchMetric struct {
	Workers      int
	Budget       int
	Flip7Weight  float64
	Duration     time.Duration
	Simulations  int
	FullRollouts int // Rollouts that ended with the turn rather than an empty deck
	Flip7s       int // Simulations that reached a flip7 bonus
}

type MoveMetric struct {
	Step     int
	Player   int
	Action   game.Action
	Result   game.Result
	Banked   int
	RoundEnd bool
}

type GameMetric struct {
	ID         string
	NumPlayers int
	Winner     int
	Exhausted  bool // The deck ran out before anyone reached the winning score
	Totals     []int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(workers, budget int, flip7Weight float64)
	AddSimulation()
	AddFullRollout()
	AddFlip7()
	Complete() SearchMetric
}

type collector struct {
	workers      int
	budget       int
	flip7Weight  float64
	startTime    time.Time
	simulations  atomic.Int32
	fullRollouts atomic.Int32
	flip7s       atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, budget int, flip7Weight float64) {
	m.startTime = time.Now()
	m.workers = workers
	m.budget = budget
	m.flip7Weight = flip7Weight
	m.simulations.Store(0)
	m.fullRollouts.Store(0)
	m.flip7s.Store(0)
}

func (m *collector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *collector) AddFullRollout() {
	m.fullRollouts.Add(1)
}

func (m *collector) AddFlip7() {
	m.flip7s.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:      m.workers,
		Budget:       m.budget,
		Flip7Weight:  m.flip7Weight,
		Duration:     time.Since(m.startTime),
		Simulations:  int(m.simulations.Load()),
		FullRollouts: int(m.fullRollouts.Load()),
		Flip7s:       int(m.flip7s.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, budget int, flip7Weight float64) {}
func (m *dummyCollector) AddSimulation()                                 {}
func (m *dummyCollector) AddFullRollout()                                {}
func (m *dummyCollector) AddFlip7()                                      {}
func (m *dummyCollector) Complete() SearchMetric                         { return SearchMetric{} }
