package searcher

import "math"

// Hyperparameters for MCTS

const DefaultExploration = 1.4 // UCB1 exploration constant C

type uct struct {
	c   float64
	lnN float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, lnN: math.Log(N)}
}

// evaluate scores a child with q total reward over n visits. Unvisited
// children score +Inf so that every child is tried once before any revisit.
func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	// UCB1 = q/n + c*sqrt(ln(N)/n)
	return q/n + u.c*math.Sqrt(u.lnN/n)
}
