package game

import (
	"errors"

	"golang.org/x/exp/rand"
)

const DeckSize = 94

var ErrEmptyDeck = errors.New("drawing from empty deck")

// Deck is an ordered pile of cards drawn from the front. Each deck owns its
// own randomness source so that shuffles can be replayed from a seed.
type Deck struct {
	cards []Card
	src   *rand.PCGSource
	rng   *rand.Rand
}

// NewDeck returns the full unshuffled deck:
//   - number cards 0 x1, 1 x1, then n x n for 2..12
//   - modifiers +2..+10, one each
//   - Freeze x2, FlipThree x2, SecondChance x1 and a single x2 multiplier
func NewDeck(seed uint64) *Deck {
	cards := make([]Card, 0, DeckSize)
	cards = append(cards, Number(0), Number(1))
	for n := 2; n <= 12; n++ {
		for i := 0; i < n; i++ {
			cards = append(cards, Number(n))
		}
	}
	for m := 2; m <= 10; m++ {
		cards = append(cards, Modifier(m))
	}
	cards = append(cards,
		Special(Freeze), Special(Freeze),
		Special(FlipThree), Special(FlipThree),
		Special(SecondChance),
		Multiplier(),
	)
	if len(cards) != DeckSize {
		panic("deck size mismatch")
	}

	src := &rand.PCGSource{}
	src.Seed(seed)
	return &Deck{
		cards: cards,
		src:   src,
		rng:   rand.New(src),
	}
}

// Seed resets the deck's randomness source
func (d *Deck) Seed(seed uint64) {
	d.rng.Seed(seed)
}

// Shuffle reorders the cards in place with the deck's own source
func (d *Deck) Shuffle() {
	d.ShuffleWith(d.rng)
}

// ShuffleWith reorders the cards in place with the given generator, leaving
// the deck's own source untouched.
func (d *Deck) ShuffleWith(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the cards in draw order
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

// SetCards replaces the deck contents wholesale, e.g. to inject a determinized ordering
func (d *Deck) SetCards(cards []Card) {
	d.cards = make([]Card, len(cards))
	copy(d.cards, cards)
}

// Clone returns an independent deck. The randomness source is copied by value
// so the clone continues from the same point without advancing the original.
func (d *Deck) Clone() *Deck {
	src := *d.src
	return &Deck{
		cards: d.Cards(),
		src:   &src,
		rng:   rand.New(&src),
	}
}
