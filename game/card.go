package game

import "fmt"

type Kind int

const (
	KindNumber     Kind = iota // 0
	KindModifier               // 1
	KindMultiplier             // 2
	KindAction                 // 3
)

// Effect names the action cards
type Effect int

const (
	Freeze       Effect = iota // Banks the current line and ends the round
	FlipThree                  // Forces up to three more draws
	SecondChance               // Protects against one duplicate number
)

func (e Effect) String() string {
	switch e {
	case Freeze:
		return "Freeze"
	case FlipThree:
		return "FlipThree"
	case SecondChance:
		return "SecondChance"
	default:
		return fmt.Sprintf("Effect(%d)", int(e))
	}
}

// Card is an immutable value, two cards with equal fields are the same card
type Card struct {
	Kind   Kind
	Value  int    // Face value for number and modifier cards
	Effect Effect // Only meaningful for action cards
}

func Number(value int) Card {
	return Card{Kind: KindNumber, Value: value}
}

func Modifier(value int) Card {
	return Card{Kind: KindModifier, Value: value}
}

func Multiplier() Card {
	return Card{Kind: KindMultiplier}
}

func Special(effect Effect) Card {
	return Card{Kind: KindAction, Effect: effect}
}

func (c Card) String() string {
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("N%d", c.Value)
	case KindModifier:
		return fmt.Sprintf("+%d", c.Value)
	case KindMultiplier:
		return "x2"
	default:
		return c.Effect.String()
	}
}
