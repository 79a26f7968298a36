package room

import (
	"cardroom-server/pkg/deck"
	"cardroom-server/pkg/poker"
)

// HandRank is the result of evaluating a hand: the rank-class ordering key
// and a display name. Hands are grouped by Ordering; ties within a group are
// broken by kicker comparison, not by the evaluator.
type HandRank struct {
	Ordering int    `json:"ordering"`
	Name     string `json:"name"`
}

// HandEvaluator determines the winning-hand rank of up to five cards
type HandEvaluator interface {
	Evaluate(cards []deck.Card) HandRank
}

// pokerEvaluator is the default HandEvaluator backed by the poker package
type pokerEvaluator struct{}

func (pokerEvaluator) Evaluate(cards []deck.Card) HandRank {
	hand := poker.NewHandAnalyzer(cards).GetHand()

	return HandRank{
		Ordering: int(hand),
		Name:     hand.String(),
	}
}
