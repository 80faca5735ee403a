package engine

import (
	"math"
	"math/rand"
)

// Card is a playing card rank (1 byte). Suits are irrelevant to baccarat
// scoring and counting, so only the rank is kept.
// Encoding: 0=A, 1-9=2-10, 10=J, 11=Q, 12=K.
type Card uint8

// NumRanks is the number of distinct card ranks.
const NumRanks = 13

// CardsPerDeck is the size of a single deck.
const CardsPerDeck = 52

// BaccaratValue returns the card's baccarat point value:
// ace counts 1, ten and face cards count 0.
func (c Card) BaccaratValue() int {
	switch {
	case c == 0: // Ace
		return 1
	case c >= 9: // 10, J, Q, K
		return 0
	default: // 2-9
		return int(c) + 1
	}
}

var rankNames = [NumRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}

func (c Card) String() string {
	if int(c) < len(rankNames) {
		return rankNames[c]
	}
	return "?"
}

// HandScore returns the baccarat score of a hand: sum of card values mod 10.
func HandScore(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.BaccaratValue()
	}
	return total % 10
}

// Shoe is an ordered multi-deck card sequence. Cards are removed from the
// dealing end only and never replenished; a fresh shoe replaces it wholesale
// on reshuffle.
type Shoe struct {
	cards []Card
	decks int
}

// NewShoe builds a freshly shuffled shoe of the given number of decks.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	s := &Shoe{
		cards: make([]Card, 0, decks*CardsPerDeck),
		decks: decks,
	}
	for d := 0; d < decks; d++ {
		for suit := 0; suit < 4; suit++ {
			for rank := 0; rank < NumRanks; rank++ {
				s.cards = append(s.cards, Card(rank))
			}
		}
	}
	rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	return s
}

// NewStackedShoe builds an unshuffled shoe that deals the given cards in
// order. Used by tests that need exact hands.
func NewStackedShoe(inDealOrder ...Card) *Shoe {
	cards := make([]Card, len(inDealOrder))
	for i, c := range inDealOrder {
		cards[len(cards)-1-i] = c
	}
	return &Shoe{cards: cards}
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int { return len(s.cards) }

// RemainingDecks returns the remaining shoe length in decks.
func (s *Shoe) RemainingDecks() float64 {
	return float64(len(s.cards)) / CardsPerDeck
}

// Draw removes and returns the card at the dealing end.
func (s *Shoe) Draw() Card {
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c
}

// DrawCutoff draws the stop-card position for the next shoe from a normal
// distribution around mean, rounded to the nearest integer and clamped to a
// valid range.
func DrawCutoff(mean, stdev float64, decks int, rng *rand.Rand) int {
	pos := int(math.Round(rng.NormFloat64()*stdev + mean))
	if pos < 6 {
		pos = 6
	}
	if max := decks * CardsPerDeck; pos > max {
		pos = max
	}
	return pos
}
