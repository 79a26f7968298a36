package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardroom-server/pkg/deck"
)

func TestHandAnalyzer_GetHand(t *testing.T) {
	tests := []struct {
		cards string
		hand  Hand
	}{
		{"2s,5h,7d,9c,12h", HighCard},
		{"2s,2h,7d,9c,12h", OnePair},
		{"2s,2h,9d,9c,12h", TwoPair},
		{"2s,2h,2d,9c,12h", ThreeOfAKind},
		{"2s,3h,4d,5c,6h", Straight},
		{"1s,2h,3d,4c,5h", Straight},
		{"10s,11h,12d,13c,1h", Straight},
		{"2s,5s,7s,9s,12s", Flush},
		{"2s,2h,2d,9c,9h", FullHouse},
		{"2s,2h,2d,2c,9h", FourOfAKind},
		{"2s,3s,4s,5s,6s", StraightFlush},
		{"1s,2s,3s,4s,5s", StraightFlush},
		{"10s,11s,12s,13s,1s", RoyalFlush},
	}

	for _, tc := range tests {
		h := NewHandAnalyzer(deck.CardsFromString(tc.cards))
		assert.Equal(t, tc.hand, h.GetHand(), "cards: %s", tc.cards)
	}
}

func TestHandAnalyzer_classOrdering(t *testing.T) {
	assert.True(t, RoyalFlush > StraightFlush)
	assert.True(t, StraightFlush > FourOfAKind)
	assert.True(t, FourOfAKind > FullHouse)
	assert.True(t, FullHouse > Flush)
	assert.True(t, Flush > Straight)
	assert.True(t, Straight > ThreeOfAKind)
	assert.True(t, ThreeOfAKind > TwoPair)
	assert.True(t, TwoPair > OnePair)
	assert.True(t, OnePair > HighCard)
}

func TestHandAnalyzer_getters(t *testing.T) {
	h := NewHandAnalyzer(deck.CardsFromString("2s,2h,2d,9c,9h"))

	fh, ok := h.GetFullHouse()
	assert.True(t, ok)
	assert.Equal(t, []int{2, 9}, fh)

	trips, ok := h.GetThreeOfAKind()
	assert.True(t, ok)
	assert.Equal(t, 2, trips)

	pair, ok := h.GetPair()
	assert.True(t, ok)
	assert.Equal(t, 9, pair)

	high, ok := h.GetHighCard()
	assert.True(t, ok)
	assert.Equal(t, 9, high)

	_, ok = h.GetStraight()
	assert.False(t, ok)
	assert.False(t, h.GetFlush())
}

func TestHandAnalyzer_twoPairOrder(t *testing.T) {
	h := NewHandAnalyzer(deck.CardsFromString("1s,1h,9d,9c,12h"))

	// ace pair compares high
	tp, ok := h.GetTwoPair()
	assert.True(t, ok)
	assert.Equal(t, []int{14, 9}, tp)
}

func TestHandAnalyzer_shortHand(t *testing.T) {
	h := NewHandAnalyzer(deck.CardsFromString("2s,2h,9d"))
	assert.Equal(t, OnePair, h.GetHand())

	// fewer than five cards can never be a straight or flush
	h = NewHandAnalyzer(deck.CardsFromString("2s,3s,4s"))
	assert.Equal(t, HighCard, h.GetHand())

	h = NewHandAnalyzer([]deck.Card{})
	assert.Equal(t, HighCard, h.GetHand())

	_, ok := h.GetHighCard()
	assert.False(t, ok)
}
