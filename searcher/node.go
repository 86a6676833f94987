package searcher

import (
	"math"

	"flip7/game"

	"golang.org/x/exp/rand"
)

// node is one vertex of the search tree. A parent owns its children and each
// child keeps a plain back-reference for backup.
type node struct {
	parent   *node
	state    *game.GameState // Determinized snapshot after the action leading here
	actions  []game.Action   // actions[i] leads to children[i]
	children []*node
	terminal bool // The searching player's turn is over, or the action could not be played
	flip7    bool // A flip7 bonus fired on the path from the root
	rewards  float64
	visits   int
}

func newNode(parent *node, state *game.GameState) *node {
	return &node{
		parent:   parent,
		state:    state,
		terminal: state.GameOver(),
	}
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node) mean() float64 {
	if n.visits == 0 {
		return math.Inf(-1)
	}
	return n.rewards / float64(n.visits)
}

// expand adds one child per legal action. Every child gets its own clone of
// the state, re-shuffled before the action is played on it.
func (n *node) expand(rng *rand.Rand) {
	if n.terminal {
		return
	}

	actions := n.state.LegalActions()
	n.actions = make([]game.Action, 0, len(actions))
	n.children = make([]*node, 0, len(actions))
	for _, action := range actions {
		state := n.state.Clone()
		state.Deck().ShuffleWith(rng)

		child := newNode(n, state)
		child.flip7 = n.flip7
		outcome, err := state.ApplyAction(action)
		if err != nil {
			// Only an exhausted deck can fail a legal action
			child.terminal = true
		} else {
			child.flip7 = child.flip7 || outcome.Flip7
			child.terminal = child.terminal || outcome.RoundEnd || state.GameOver()
		}

		n.actions = append(n.actions, action)
		n.children = append(n.children, child)
	}
}

// selectChild returns the child with the highest UCB1 score. The first
// unvisited child wins outright.
func (n *node) selectChild(c float64) *node {
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
	}

	policy := newUCT(c, float64(n.visits))
	var best *node
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		if score := policy.evaluate(child.rewards, float64(child.visits)); score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// randomChild picks a child uniformly
func (n *node) randomChild(rng *rand.Rand) *node {
	return n.children[rng.Intn(len(n.children))]
}

// backup records a reward and returns the parent, nil at the root
func (n *node) backup(reward float64) *node {
	n.rewards += reward
	n.visits++
	return n.parent
}
