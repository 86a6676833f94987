package game

import (
	"errors"
	"fmt"
)

const (
	WinningScore = 200 // Total that ends the game at a bank event
	ForcedDraws  = 3   // Draws forced by a FlipThree card
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrGameOver      = errors.New("game is over")
)

// GameState is the full game: per-player totals, the deck and the active
// player's line. It is mutated only through ApplyAction and deep copied with
// Clone whenever a hypothetical future is explored.
type GameState struct {
	numPlayers    int
	totals        []int      // Cumulative score per player
	currentPlayer int        // Index of the player to act
	deck          *Deck      // Draw pile, its order is hidden information
	round         RoundState // The current player's uncommitted line
	winner        int        // Index of the winner, -1 while the game is running
}

// NewGameState deals a fresh game whose deck is shuffled with the given seed.
func NewGameState(numPlayers int, seed uint64) *GameState {
	if numPlayers < 1 {
		panic("need at least one player")
	}
	deck := NewDeck(seed)
	deck.Shuffle()
	return &GameState{
		numPlayers: numPlayers,
		totals:     make([]int, numPlayers),
		deck:       deck,
		winner:     -1,
	}
}

func (gs *GameState) Clone() *GameState {
	totals := make([]int, len(gs.totals))
	copy(totals, gs.totals)

	return &GameState{
		numPlayers:    gs.numPlayers,
		totals:        totals,
		currentPlayer: gs.currentPlayer,
		deck:          gs.deck.Clone(),
		round:         gs.round.clone(),
		winner:        gs.winner,
	}
}

func (gs *GameState) NumPlayers() int {
	return gs.numPlayers
}

func (gs *GameState) CurrentPlayer() int {
	return gs.currentPlayer
}

// Totals returns a copy of the cumulative scores
func (gs *GameState) Totals() []int {
	totals := make([]int, len(gs.totals))
	copy(totals, gs.totals)
	return totals
}

func (gs *GameState) Total(player int) int {
	return gs.totals[player]
}

// Round returns a copy of the current player's line
func (gs *GameState) Round() RoundState {
	return gs.round.clone()
}

// Deck exposes the draw pile so that searchers can re-shuffle it
func (gs *GameState) Deck() *Deck {
	return gs.deck
}

func (gs *GameState) SetDeck(cards []Card) {
	gs.deck.SetCards(cards)
}

// Winner returns the winning player once a bank event reached WinningScore
func (gs *GameState) Winner() (int, bool) {
	return gs.winner, gs.winner >= 0
}

func (gs *GameState) GameOver() bool {
	return gs.winner >= 0
}

// Leader returns the player with the highest total, the lowest index on ties
func (gs *GameState) Leader() int {
	leader := 0
	for i, total := range gs.totals {
		if total > gs.totals[leader] {
			leader = i
		}
	}
	return leader
}

// LegalActions returns the actions available to the current player, always
// in the order hit, stay.
func (gs *GameState) LegalActions() []Action {
	if gs.GameOver() {
		return []Action{}
	}
	return []Action{Hit, Stay}
}

func (gs *GameState) isLegal(action Action) bool {
	for _, legal := range gs.LegalActions() {
		if legal == action {
			return true
		}
	}
	return false
}

// ApplyAction plays an action for the current player. A hit on an empty deck
// fails with ErrEmptyDeck and leaves the state untouched.
func (gs *GameState) ApplyAction(action Action) (Outcome, error) {
	if !gs.isLegal(action) {
		return Outcome{}, fmt.Errorf("%w: %v", ErrIllegalAction, action)
	}

	if action == Stay {
		banked := gs.bank()
		gs.advance()
		return Outcome{Result: ResultStayed, Banked: banked, RoundEnd: true}, nil
	}

	card, err := gs.deck.Draw()
	if err != nil {
		return Outcome{}, fmt.Errorf("cannot hit: %w", err)
	}

	var outcome Outcome
	if card.Kind == KindAction && card.Effect == FlipThree {
		outcome = gs.flipThree(card)
	} else {
		outcome = gs.resolve(card)
	}
	if outcome.RoundEnd {
		gs.advance()
	}
	return outcome, nil
}

// resolve applies a single drawn card other than FlipThree to the line
func (gs *GameState) resolve(card Card) Outcome {
	switch card.Kind {
	case KindNumber:
		if gs.round.Has(card.Value) {
			if gs.round.SecondChances > 0 {
				gs.round.SecondChances--
				return Outcome{Result: ResultDuplicateDiscarded, Card: card, HasCard: true}
			}
			// Bust: the line is lost
			gs.round = RoundState{}
			return Outcome{Result: ResultBust, Card: card, HasCard: true, RoundEnd: true}
		}
		gs.round.Numbers = append(gs.round.Numbers, card.Value)
		if gs.round.Distinct() >= Flip7Size {
			banked := gs.bank()
			return Outcome{Result: ResultFlip7, Card: card, HasCard: true, Banked: banked, RoundEnd: true, Flip7: true}
		}
		return Outcome{Result: ResultNumberAdded, Card: card, HasCard: true}

	case KindModifier:
		gs.round.Modifier += card.Value
		return Outcome{Result: ResultModifierAdded, Card: card, HasCard: true}

	case KindMultiplier:
		gs.round.Multiplier = true
		return Outcome{Result: ResultMultiplierAdded, Card: card, HasCard: true}
	}

	switch card.Effect {
	case Freeze:
		banked := gs.bank()
		return Outcome{Result: ResultFreeze, Card: card, HasCard: true, Banked: banked, RoundEnd: true}
	case SecondChance:
		gs.round.SecondChances++
		return Outcome{Result: ResultSecondChanceAdded, Card: card, HasCard: true}
	default:
		panic(fmt.Sprintf("unexpected card %v", card))
	}
}

// flipThree forces up to ForcedDraws more draws. A FlipThree drawn inside the
// sequence adds its own ForcedDraws to the count, which keeps the draw order
// of nested sequences without recursing. The sequence stops as soon as a draw
// ends the round or the deck runs out.
func (gs *GameState) flipThree(card Card) Outcome {
	outcome := Outcome{Result: ResultFlipThreeDone, Card: card, HasCard: true}

	pending := ForcedDraws
	for pending > 0 {
		forced, err := gs.deck.Draw()
		if err != nil {
			break
		}
		pending--
		outcome.Draws = append(outcome.Draws, forced)

		if forced.Kind == KindAction && forced.Effect == FlipThree {
			pending += ForcedDraws
			continue
		}

		res := gs.resolve(forced)
		if res.RoundEnd {
			outcome.Result = ResultFlipThreeResolved
			outcome.Banked = res.Banked
			outcome.RoundEnd = true
			outcome.Flip7 = res.Flip7
			return outcome
		}
	}
	return outcome
}

// bank commits the line to the current player's total and clears it
func (gs *GameState) bank() int {
	score := gs.round.Score()
	gs.totals[gs.currentPlayer] += score
	gs.round = RoundState{}
	if gs.totals[gs.currentPlayer] >= WinningScore && gs.winner < 0 {
		gs.winner = gs.currentPlayer
	}
	return score
}

func (gs *GameState) advance() {
	gs.currentPlayer = (gs.currentPlayer + 1) % gs.numPlayers
}

func (gs *GameState) String() string {
	return fmt.Sprintf("GameState(totals=%v, player=%d, numbers=%v, modifier=%d, x2=%t, second_chance=%d, deck=%d)",
		gs.totals, gs.currentPlayer, gs.round.Numbers, gs.round.Modifier, gs.round.Multiplier,
		gs.round.SecondChances, gs.deck.Remaining())
}
