package poker

import (
	"sort"

	"cardroom-server/pkg/deck"
)

// HandAnalyzer can analyze a hand of up to five cards
type HandAnalyzer struct {
	cards    []deck.Card
	quads    []int
	trips    []int
	pairs    []int
	flush    bool
	straight int

	hand Hand
}

type sortByAceHighRank []deck.Card

func (s sortByAceHighRank) Len() int {
	return len(s)
}

func (s sortByAceHighRank) Less(i, j int) bool {
	return s[i].AceHighRank() < s[j].AceHighRank()
}

func (s sortByAceHighRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// NewHandAnalyzer will return a new HandAnalyzer instance
func NewHandAnalyzer(cards []deck.Card) *HandAnalyzer {
	newCards := make([]deck.Card, len(cards))
	copy(newCards, cards)

	sort.Sort(sort.Reverse(sortByAceHighRank(newCards)))

	h := &HandAnalyzer{
		cards: newCards,
	}

	// the method order here is required
	h.analyzeHand()
	h.calculateHand()

	return h
}

// analyzeHand will loop through the hand and calculate the various combinations.
// This is required to be called in order for the public Get*() methods to return properly.
// This method should only be called once from the constructor
func (h *HandAnalyzer) analyzeHand() {
	quads := make([]int, 0)
	trips := make([]int, 0)
	pairs := make([]int, 0)

	prevRank := 0
	numOfRank := 0

	nCards := len(h.cards)
	for i, card := range h.cards {
		rank := card.AceHighRank()
		if rank == prevRank {
			numOfRank++
		} else {
			numOfRank = 1
		}

		// if the next card is a different rank, or we're at the end,
		// record the longest group this rank formed
		if i+1 == nCards || h.cards[i+1].AceHighRank() != rank {
			switch numOfRank {
			case 4:
				quads = append(quads, rank)
			case 3:
				trips = append(trips, rank)
			case 2:
				pairs = append(pairs, rank)
			}
		}

		prevRank = rank
	}

	h.quads = quads
	h.trips = trips
	h.pairs = pairs

	h.analyzeFlush()
	h.analyzeStraight()
}

// NOTE: only called from analyzeHand
func (h *HandAnalyzer) analyzeFlush() {
	if len(h.cards) != 5 {
		return
	}

	suit := h.cards[0].Suit
	for _, card := range h.cards[1:] {
		if card.Suit != suit {
			return
		}
	}

	h.flush = true
}

// NOTE: only called from analyzeHand
func (h *HandAnalyzer) analyzeStraight() {
	if len(h.cards) != 5 {
		return
	}

	// paired hands cannot form a straight
	if len(h.pairs) > 0 || len(h.trips) > 0 || len(h.quads) > 0 {
		return
	}

	high := h.cards[0].AceHighRank()
	low := h.cards[4].AceHighRank()
	if high-low == 4 {
		h.straight = high
		return
	}

	// the wheel: A-2-3-4-5
	if high == deck.AceHigh && h.cards[1].AceHighRank() == 5 && low == 2 {
		h.straight = 5
	}
}

func (h *HandAnalyzer) calculateHand() {
	if _, ok := h.GetStraightFlush(); ok {
		if h.GetRoyalFlush() {
			h.hand = RoyalFlush
		} else {
			h.hand = StraightFlush
		}
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if h.GetFlush() {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetRoyalFlush will return true if there's a royal flush
func (h *HandAnalyzer) GetRoyalFlush() bool {
	return h.flush && h.straight == deck.AceHigh
}

// GetStraightFlush will return the high card of the straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	if h.flush && h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetFourOfAKind will return the four of a kind rank, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the trip and pair ranks of the full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) > 0 && len(h.pairs) > 0 {
		return []int{h.trips[0], h.pairs[0]}, true
	}

	return nil, false
}

// GetFlush will return true if the hand is a flush
func (h *HandAnalyzer) GetFlush() bool {
	return h.flush
}

// GetStraight will return the high card of the straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetThreeOfAKind will return the three of a kind rank, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the two pair ranks, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the pair rank, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// GetHighCard will return the highest ace-high rank in the hand
func (h *HandAnalyzer) GetHighCard() (int, bool) {
	if len(h.cards) == 0 {
		return 0, false
	}

	return h.cards[0].AceHighRank(), true
}
