package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
)

// Color is the color of a suit
type Color string

// color constants
const (
	Black Color = "black"
	Red   Color = "red"
)

// face card ranks. Aces are stored low and only compare high.
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13

	// AceHigh is the rank an ace compares as in orderings
	AceHigh = 14
)

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// Valid reports whether the card holds a rank between 1 and 13 and one of
// the four suits
func (c Card) Valid() bool {
	if c.Rank < 1 || c.Rank > 13 {
		return false
	}

	switch c.Suit {
	case Spades, Clubs, Diamonds, Hearts:
		return true
	}

	return false
}

// AceHighRank returns the rank used for ordering comparisons, where an ace
// compares as 14 rather than 1
func (c Card) AceHighRank() int {
	if c.Rank == Ace {
		return AceHigh
	}

	return c.Rank
}

// Color returns the color of the card's suit
func (c Card) Color() Color {
	if c.Suit == Hearts || c.Suit == Diamonds {
		return Red
	}

	return Black
}

// Symbol returns the display symbol for the rank (i.e., "A" or "10")
func (c Card) Symbol() string {
	switch c.Rank {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}

	return strconv.Itoa(c.Rank)
}

// SuitSymbol returns the unicode symbol for the card's suit
func (c Card) SuitSymbol() string {
	switch c.Suit {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	}

	panic("unknown suit")
}

func (c Card) String() string {
	return c.Symbol() + c.SuitSymbol()
}

var cardRx = regexp.MustCompile(`(?i)^([1-9]|1[0-3])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 1 and <= 13 and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will return a slice of cards from a string in the format of 1c,3h,4s,...
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardsToString will convert a slice of cards to their display form
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}
