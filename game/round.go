package game

const (
	Flip7Size  = 7  // Distinct numbers needed for the bonus
	Flip7Bonus = 15 // Points added for collecting Flip7Size distinct numbers
)

// RoundState is the active player's uncommitted line
type RoundState struct {
	Numbers       []int // Distinct number values in draw order
	Modifier      int   // Sum of flat modifier cards
	Multiplier    bool  // Whether the x2 card was drawn
	SecondChances int   // Unused second chance tokens
}

func (r RoundState) Has(value int) bool {
	for _, n := range r.Numbers {
		if n == value {
			return true
		}
	}
	return false
}

func (r RoundState) Distinct() int {
	return len(r.Numbers)
}

// Score computes the value of banking the line now. A line without any
// number cards is worth nothing, modifiers included.
func (r RoundState) Score() int {
	if len(r.Numbers) == 0 {
		return 0
	}
	score := 0
	for _, n := range r.Numbers {
		score += n
	}
	if r.Multiplier {
		score *= 2
	}
	score += r.Modifier
	if r.Distinct() >= Flip7Size {
		score += Flip7Bonus
	}
	return score
}

// clone keeps a nil line nil so that a reset round equals RoundState{}
func (r RoundState) clone() RoundState {
	if r.Numbers == nil {
		return r
	}
	numbers := make([]int, len(r.Numbers))
	copy(numbers, r.Numbers)
	r.Numbers = numbers
	return r
}
