package engine

import "flip7/experiments/metrics"

const MaxMoves = 10000

type Runner interface {
	// Run plays a game till there's a winner, the deck runs out or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
