package room

import "cardroom-server/pkg/deck"

// Player is the record for one session identity. A player exists from the
// identity's first connection until its last connection departs.
// All fields are guarded by the room's lock.
type Player struct {
	Name      string      `json:"name"`
	Hand      []deck.Card `json:"hand"`
	Submitted bool        `json:"submitted"`
	Balance   float64     `json:"balance"`
	Anted     bool        `json:"anted"`
}

// resetRound clears the per-round state
func (p *Player) resetRound() {
	p.Hand = []deck.Card{}
	p.Submitted = false
	p.Anted = false
}
