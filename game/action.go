package game

import "fmt"

// Action is a player's choice on their turn
type Action int

const (
	Hit  Action = iota // Draw another card
	Stay               // Bank the current line
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stay:
		return "stay"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Result tags the effect of an applied action
type Result string

const (
	ResultStayed             Result = "stayed"
	ResultBust               Result = "bust"
	ResultDuplicateDiscarded Result = "duplicate_discarded"
	ResultNumberAdded        Result = "number_added"
	ResultFlip7              Result = "flip7"
	ResultModifierAdded      Result = "modifier_added"
	ResultMultiplierAdded    Result = "x2_added"
	ResultFreeze             Result = "freeze"
	ResultFlipThreeDone      Result = "flipthree_done"
	ResultFlipThreeResolved  Result = "flipthree_resolved"
	ResultSecondChanceAdded  Result = "secondchance_added"
)

// Outcome describes what happened when an action was applied
type Outcome struct {
	Result   Result
	Card     Card   // The card drawn by a hit
	HasCard  bool   // False for stay
	Banked   int    // Score committed to the player's total, 0 if nothing was banked
	RoundEnd bool   // The active player's line is over and the turn has advanced
	Flip7    bool   // A flip7 bonus fired, possibly inside a forced sequence
	Draws    []Card // Forced draws of a FlipThree in draw order
}
