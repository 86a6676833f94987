package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newRiggedState returns a game whose draw pile is exactly the given cards
func newRiggedState(numPlayers int, cards ...Card) *GameState {
	gs := NewGameState(numPlayers, 1)
	gs.SetDeck(cards)
	return gs
}

func hit(t *testing.T, gs *GameState) Outcome {
	t.Helper()
	outcome, err := gs.ApplyAction(Hit)
	require.NoError(t, err)
	return outcome
}

func TestRoundScore(t *testing.T) {
	t.Run("summing numbers and modifiers", func(t *testing.T) {
		round := RoundState{Numbers: []int{3, 4}, Modifier: 5}
		require.Equal(t, 12, round.Score())
	})

	t.Run("doubling before modifiers", func(t *testing.T) {
		round := RoundState{Numbers: []int{3, 4}, Modifier: 5, Multiplier: true}
		require.Equal(t, 19, round.Score())
	})

	t.Run("adding the bonus for seven distinct numbers", func(t *testing.T) {
		round := RoundState{Numbers: []int{0, 1, 2, 3, 4, 5, 6}}
		require.Equal(t, 21+Flip7Bonus, round.Score())
	})

	t.Run("empty line is worth nothing", func(t *testing.T) {
		round := RoundState{Modifier: 8, Multiplier: true}
		require.Equal(t, 0, round.Score())
	})
}

func TestRoundCopy(t *testing.T) {
	t.Run("reset line stays equal to the zero round", func(t *testing.T) {
		gs := newRiggedState(2)

		require.Nil(t, gs.Round().Numbers)
		require.Equal(t, RoundState{}, gs.Round())
	})

	t.Run("copy does not share numbers", func(t *testing.T) {
		gs := newRiggedState(2, Number(4))
		hit(t, gs)

		round := gs.Round()
		round.Numbers[0] = 9

		require.Equal(t, []int{4}, gs.Round().Numbers, "Mutating the copy should not reach the state")
	})
}

func TestNewGameState(t *testing.T) {
	t.Run("seeded games deal the same deck", func(t *testing.T) {
		first := NewGameState(2, 42)
		second := NewGameState(2, 42)

		require.Equal(t, first.Deck().Cards(), second.Deck().Cards(), "Same seed should reproduce the deck order")
		require.NotEqual(t, NewDeck(42).Cards(), first.Deck().Cards(), "Deck should be shuffled")
	})

	t.Run("starting position", func(t *testing.T) {
		gs := NewGameState(3, 1)

		require.Equal(t, []int{0, 0, 0}, gs.Totals())
		require.Equal(t, 0, gs.CurrentPlayer())
		require.Equal(t, DeckSize, gs.Deck().Remaining())
		require.Equal(t, []Action{Hit, Stay}, gs.LegalActions())
		require.False(t, gs.GameOver())
	})

	t.Run("panics without players", func(t *testing.T) {
		require.Panics(t, func() { NewGameState(0, 1) })
	})
}

func TestApplyActionStay(t *testing.T) {
	gs := newRiggedState(2, Number(3), Number(4), Modifier(5))
	hit(t, gs)
	hit(t, gs)
	hit(t, gs)

	outcome, err := gs.ApplyAction(Stay)

	require.NoError(t, err)
	require.Equal(t, ResultStayed, outcome.Result)
	require.Equal(t, 12, outcome.Banked, "Should bank the line score")
	require.True(t, outcome.RoundEnd, "Staying should end the line")
	require.Equal(t, []int{12, 0}, gs.Totals())
	require.Equal(t, 1, gs.CurrentPlayer(), "Turn should advance")
	require.Equal(t, RoundState{}, gs.Round(), "Line should reset")
}

func TestApplyActionNumbers(t *testing.T) {
	t.Run("adding a new number", func(t *testing.T) {
		gs := newRiggedState(2, Number(9))

		outcome := hit(t, gs)

		require.Equal(t, ResultNumberAdded, outcome.Result)
		require.Equal(t, Number(9), outcome.Card)
		require.True(t, outcome.HasCard)
		require.False(t, outcome.RoundEnd)
		require.Equal(t, []int{9}, gs.Round().Numbers)
		require.Equal(t, 0, gs.CurrentPlayer(), "Turn should not advance")
	})

	t.Run("busting on a duplicate", func(t *testing.T) {
		gs := newRiggedState(2, Number(5), Modifier(3), Number(5))
		hit(t, gs)
		hit(t, gs)

		outcome := hit(t, gs)

		require.Equal(t, ResultBust, outcome.Result)
		require.True(t, outcome.RoundEnd)
		require.Equal(t, 0, outcome.Banked)
		require.Equal(t, []int{0, 0}, gs.Totals(), "Bust should not score")
		require.Equal(t, RoundState{}, gs.Round(), "Line should reset")
		require.Equal(t, 1, gs.CurrentPlayer(), "Turn should advance")
	})

	t.Run("discarding a duplicate with a second chance", func(t *testing.T) {
		gs := newRiggedState(2, Special(SecondChance), Number(5), Number(5), Number(6))
		outcome := hit(t, gs)
		require.Equal(t, ResultSecondChanceAdded, outcome.Result)
		require.Equal(t, 1, gs.Round().SecondChances)
		hit(t, gs)

		outcome = hit(t, gs)

		require.Equal(t, ResultDuplicateDiscarded, outcome.Result)
		require.False(t, outcome.RoundEnd)
		require.Equal(t, 0, gs.Round().SecondChances, "Should consume exactly one token")
		require.Equal(t, []int{5}, gs.Round().Numbers, "Duplicate should not be collected")

		outcome = hit(t, gs)
		require.Equal(t, ResultNumberAdded, outcome.Result)
		require.Equal(t, []int{5, 6}, gs.Round().Numbers)
	})

	t.Run("collecting seven distinct numbers", func(t *testing.T) {
		gs := newRiggedState(2,
			Number(1), Number(2), Number(3), Number(4), Number(5), Number(6), Modifier(2), Number(7))
		for i := 0; i < 7; i++ {
			outcome := hit(t, gs)
			require.False(t, outcome.RoundEnd)
		}

		outcome := hit(t, gs)

		require.Equal(t, ResultFlip7, outcome.Result)
		require.True(t, outcome.Flip7)
		require.True(t, outcome.RoundEnd)
		require.Equal(t, 28+2+Flip7Bonus, outcome.Banked, "Bonus should be added exactly once")
		require.Equal(t, []int{45, 0}, gs.Totals())
		require.Equal(t, 1, gs.CurrentPlayer())
	})
}

func TestApplyActionModifiers(t *testing.T) {
	gs := newRiggedState(1, Modifier(6), Multiplier())

	outcome := hit(t, gs)
	require.Equal(t, ResultModifierAdded, outcome.Result)
	outcome = hit(t, gs)
	require.Equal(t, ResultMultiplierAdded, outcome.Result)

	round := gs.Round()
	require.Equal(t, 6, round.Modifier)
	require.True(t, round.Multiplier)
}

func TestApplyActionFreeze(t *testing.T) {
	t.Run("banking the line at its current score", func(t *testing.T) {
		gs := newRiggedState(2,
			Number(3), Special(SecondChance), Multiplier(), Number(4), Modifier(5), Special(Freeze))
		for i := 0; i < 5; i++ {
			hit(t, gs)
		}

		outcome := hit(t, gs)

		require.Equal(t, ResultFreeze, outcome.Result)
		require.True(t, outcome.RoundEnd)
		require.Equal(t, 19, outcome.Banked, "Freeze should bank the pre-freeze score")
		require.Equal(t, []int{19, 0}, gs.Totals())
		require.Equal(t, RoundState{}, gs.Round(), "Tokens should not survive the freeze")
		require.Equal(t, 1, gs.CurrentPlayer())
	})

	t.Run("freezing an empty line", func(t *testing.T) {
		gs := newRiggedState(2, Modifier(5), Special(Freeze))
		hit(t, gs)

		outcome := hit(t, gs)

		require.Equal(t, ResultFreeze, outcome.Result)
		require.Equal(t, 0, outcome.Banked, "Modifiers alone score nothing")
		require.True(t, outcome.RoundEnd)
	})
}

func TestApplyActionFlipThree(t *testing.T) {
	t.Run("forcing three draws", func(t *testing.T) {
		gs := newRiggedState(2, Special(FlipThree), Number(1), Modifier(2), Number(3), Number(4))

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeDone, outcome.Result)
		require.False(t, outcome.RoundEnd)
		require.Equal(t, []Card{Number(1), Modifier(2), Number(3)}, outcome.Draws)
		require.Equal(t, []int{1, 3}, gs.Round().Numbers)
		require.Equal(t, 1, gs.Deck().Remaining(), "Should draw only three cards")
		require.Equal(t, 0, gs.CurrentPlayer())
	})

	t.Run("stopping early on a bust", func(t *testing.T) {
		gs := newRiggedState(2, Special(FlipThree), Number(5), Number(5), Number(7))

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeResolved, outcome.Result)
		require.True(t, outcome.RoundEnd)
		require.Equal(t, []Card{Number(5), Number(5)}, outcome.Draws)
		require.Equal(t, 1, gs.Deck().Remaining(), "Third draw should never happen")
		require.Equal(t, []int{0, 0}, gs.Totals())
		require.Equal(t, 1, gs.CurrentPlayer())
	})

	t.Run("stopping early on a freeze", func(t *testing.T) {
		gs := newRiggedState(2, Number(8), Special(FlipThree), Number(2), Special(Freeze), Number(9))
		hit(t, gs)

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeResolved, outcome.Result)
		require.Equal(t, 10, outcome.Banked)
		require.Equal(t, []int{10, 0}, gs.Totals())
		require.Equal(t, 1, gs.Deck().Remaining())
	})

	t.Run("reporting a flip7 inside the sequence", func(t *testing.T) {
		gs := newRiggedState(2,
			Number(1), Number(2), Number(3), Number(4), Number(5),
			Special(FlipThree), Number(6), Number(7), Number(8))
		for i := 0; i < 5; i++ {
			hit(t, gs)
		}

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeResolved, outcome.Result)
		require.True(t, outcome.Flip7)
		require.Equal(t, 28+Flip7Bonus, outcome.Banked)
		require.Equal(t, 1, gs.Deck().Remaining())
	})

	t.Run("nesting extends the sequence", func(t *testing.T) {
		gs := newRiggedState(2,
			Special(FlipThree), Number(1), Special(FlipThree), Number(2), Number(3), Number(4), Number(5), Number(6))

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeDone, outcome.Result)
		require.Equal(t,
			[]Card{Number(1), Special(FlipThree), Number(2), Number(3), Number(4), Number(5)}, outcome.Draws)
		require.Equal(t, []int{1, 2, 3, 4, 5}, gs.Round().Numbers)
		require.Equal(t, 1, gs.Deck().Remaining())
	})

	t.Run("stopping when the deck runs out", func(t *testing.T) {
		gs := newRiggedState(2, Special(FlipThree), Number(1))

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeDone, outcome.Result)
		require.Equal(t, []Card{Number(1)}, outcome.Draws)
		require.False(t, outcome.RoundEnd)
		require.Equal(t, 0, gs.Deck().Remaining())
	})
}

func TestApplyActionErrors(t *testing.T) {
	t.Run("hitting an empty deck", func(t *testing.T) {
		gs := newRiggedState(2, Number(4))
		hit(t, gs)

		_, err := gs.ApplyAction(Hit)

		require.ErrorIs(t, err, ErrEmptyDeck)
		require.Equal(t, []int{4}, gs.Round().Numbers, "State should be untouched")
		require.Equal(t, 0, gs.CurrentPlayer(), "State should be untouched")
	})

	t.Run("rejecting unknown actions", func(t *testing.T) {
		gs := NewGameState(2, 1)

		_, err := gs.ApplyAction(Action(7))

		require.ErrorIs(t, err, ErrIllegalAction)
	})
}

func TestWinner(t *testing.T) {
	t.Run("reaching the winning score", func(t *testing.T) {
		gs := newRiggedState(2, Number(12))
		gs.totals[0] = 190
		hit(t, gs)

		outcome, err := gs.ApplyAction(Stay)

		require.NoError(t, err)
		require.Equal(t, 12, outcome.Banked)
		winner, ok := gs.Winner()
		require.True(t, ok)
		require.Equal(t, 0, winner)
		require.True(t, gs.GameOver())
		require.Empty(t, gs.LegalActions(), "No player may act after the game ends")
		for _, action := range []Action{Hit, Stay} {
			_, err := gs.ApplyAction(action)
			require.ErrorIs(t, err, ErrIllegalAction)
		}
	})

	t.Run("reaching the winning score on a freeze", func(t *testing.T) {
		gs := newRiggedState(2, Number(12), Special(Freeze))
		gs.totals[0] = 190
		hit(t, gs)

		outcome := hit(t, gs)

		require.Equal(t, ResultFreeze, outcome.Result)
		require.Equal(t, 12, outcome.Banked)
		winner, ok := gs.Winner()
		require.True(t, ok, "Freeze banks the line like a stay")
		require.Equal(t, 0, winner)
		require.Empty(t, gs.LegalActions())
	})

	t.Run("reaching the winning score on a flip7", func(t *testing.T) {
		gs := newRiggedState(2, Number(1), Number(2), Number(3), Number(4), Number(5), Number(6), Number(7))
		gs.totals[0] = 170
		for i := 0; i < Flip7Size-1; i++ {
			hit(t, gs)
		}
		_, ok := gs.Winner()
		require.False(t, ok, "Nothing is banked before the seventh number")

		outcome := hit(t, gs)

		require.Equal(t, ResultFlip7, outcome.Result)
		require.Equal(t, 28+Flip7Bonus, outcome.Banked)
		require.Equal(t, []int{213, 0}, gs.Totals())
		winner, ok := gs.Winner()
		require.True(t, ok)
		require.Equal(t, 0, winner)
	})

	t.Run("reaching the winning score on a flip7 inside a FlipThree", func(t *testing.T) {
		gs := newRiggedState(2, Number(1), Number(2), Number(3), Number(4), Number(5), Number(6),
			Special(FlipThree), Number(7), Number(8))
		gs.totals[0] = 170
		for i := 0; i < Flip7Size-1; i++ {
			hit(t, gs)
		}

		outcome := hit(t, gs)

		require.Equal(t, ResultFlipThreeResolved, outcome.Result)
		require.True(t, outcome.Flip7)
		require.Equal(t, []Card{Number(7)}, outcome.Draws, "Sequence should stop once the bonus banks")
		require.Equal(t, 28+Flip7Bonus, outcome.Banked)
		winner, ok := gs.Winner()
		require.True(t, ok)
		require.Equal(t, 0, winner)
		require.Equal(t, 1, gs.Deck().Remaining())
	})

	t.Run("falling short of the winning score", func(t *testing.T) {
		gs := newRiggedState(2, Number(9))
		gs.totals[0] = 190
		hit(t, gs)

		_, err := gs.ApplyAction(Stay)

		require.NoError(t, err)
		_, ok := gs.Winner()
		require.False(t, ok)
		require.Equal(t, []Action{Hit, Stay}, gs.LegalActions())
	})

	t.Run("leader breaks ties by index", func(t *testing.T) {
		gs := NewGameState(3, 1)
		gs.totals = []int{10, 30, 30}

		require.Equal(t, 1, gs.Leader())
	})
}

func TestClone(t *testing.T) {
	gs := newRiggedState(2, Number(2), Number(3), Number(3), Number(11))
	hit(t, gs)

	clone := gs.Clone()
	cloneOutcome, err := clone.ApplyAction(Hit)
	require.NoError(t, err)
	require.Equal(t, ResultNumberAdded, cloneOutcome.Result)
	_, err = clone.ApplyAction(Stay)
	require.NoError(t, err)
	clone.Deck().Shuffle()

	require.Equal(t, []int{0, 0}, gs.Totals(), "Original totals should not change")
	require.Equal(t, []int{2}, gs.Round().Numbers, "Original line should not change")
	require.Equal(t, []Card{Number(3), Number(3), Number(11)}, gs.Deck().Cards(), "Original deck should not change")
	require.Equal(t, 0, gs.CurrentPlayer())
	require.Equal(t, []int{5, 0}, clone.Totals())
}
