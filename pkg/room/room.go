package room

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"cardroom-server/internal/rng"
	"cardroom-server/internal/util"
	"cardroom-server/pkg/deck"
)

// default game parameters, overridable via Options
const (
	defaultAnte            = 5
	defaultStartingBalance = 20
	defaultDeckLowWater    = 5
	historySize            = 100
	maxHandSize            = 5
)

// Options configures a Room. The zero value of any field selects the default.
type Options struct {
	// Ante is the amount debited by the ANTE command
	Ante float64

	// StartingBalance is every new player's stake
	StartingBalance float64

	// DeckLowWater is the refill threshold passed to the default deck
	DeckLowWater int

	// Deck is the shared deck. If nil, a shuffled auto-refilling deck is created.
	Deck *deck.Deck

	// Evaluator determines hand ranks. If nil, the poker package is used.
	Evaluator HandEvaluator

	// NameFunc generates candidate display names for new players
	NameFunc func() string
}

// Room is the session and round-state engine: it owns the member registry,
// the per-identity connection sets, the shared deck, and the pot.
type Room struct {
	mu      sync.Mutex
	members map[string]*Player
	clients map[string][]*Client
	history []*ChatMessage

	deck      *deck.Deck
	evaluator HandEvaluator
	nameFunc  func() string

	ante  float64
	stake float64
	pot   float64

	// antedNotice is set once the everyone-anted notice has been sent for
	// the current round
	antedNotice bool
}

// New returns a new room
func New(opts Options) *Room {
	if opts.Ante == 0 {
		opts.Ante = defaultAnte
	}

	if opts.StartingBalance == 0 {
		opts.StartingBalance = defaultStartingBalance
	}

	if opts.DeckLowWater == 0 {
		opts.DeckLowWater = defaultDeckLowWater
	}

	if opts.Deck == nil {
		d := deck.New()
		d.TrueRandomShuffle(0)
		d.AutoRefill(opts.DeckLowWater)
		opts.Deck = d
	}

	if opts.Evaluator == nil {
		opts.Evaluator = pokerEvaluator{}
	}

	if opts.NameFunc == nil {
		gen := rng.Crypto{}
		opts.NameFunc = func() string {
			return util.GetRandomName(gen)
		}
	}

	return &Room{
		members:   make(map[string]*Player),
		clients:   make(map[string][]*Client),
		deck:      opts.Deck,
		evaluator: opts.Evaluator,
		nameFunc:  opts.NameFunc,
		ante:      opts.Ante,
		stake:     opts.StartingBalance,
	}
}

// Deck returns the room's shared deck
func (r *Room) Deck() *deck.Deck {
	return r.deck
}

// Pot returns the current pot total
func (r *Room) Pot() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.pot
}

// Member returns the player record for the identity, if registered
func (r *Room) Member(sessionID string) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.members[sessionID]
	return p, ok
}

// MemberByName returns the session identity currently using the display name
func (r *Room) MemberByName(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.members {
		if p.Name == name {
			return id, true
		}
	}

	return "", false
}

// MemberJoin registers the connection with its session identity. The player
// record is created on the identity's first join with a freshly generated
// display name unique among current members; subsequent joins for the same
// identity share the record. Returns true when this is the identity's first
// connection.
func (r *Room) MemberJoin(c *Client) bool {
	id := c.SessionID()

	r.mu.Lock()
	player, ok := r.members[id]
	if !ok {
		player = &Player{
			Name:    r.uniqueName(),
			Hand:    []deck.Card{},
			Balance: r.stake,
		}
		r.members[id] = player
	}

	r.clients[id] = append(r.clients[id], c)
	first := len(r.clients[id]) == 1

	name := player.Name
	names := r.memberNames()
	history := make([]*ChatMessage, len(r.history))
	copy(history, r.history)
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"client": c.String(),
		"name":   name,
	}).Debug("member joined")

	r.send(c, &Message{Type: TypeUpdate, Payload: name})
	r.send(c, &Message{Type: TypeUpdate, Payload: names})

	// let the joiner catch up on the conversation
	for _, cm := range history {
		r.send(c, chatEnvelope(cm))
	}

	if first {
		r.serverBroadcast(fmt.Sprintf("%s just connected", name))
	}

	return first
}

// MemberLeft removes the connection from its identity's connection set. When
// the last connection departs, the player record is deleted and true is
// returned so the departure can be announced.
func (r *Room) MemberLeft(c *Client) bool {
	id := c.SessionID()

	r.mu.Lock()
	conns := r.clients[id]
	for i, conn := range conns {
		if conn == c {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(conns) > 0 {
		r.clients[id] = conns
		r.mu.Unlock()
		return false
	}

	delete(r.clients, id)

	var name string
	if player, ok := r.members[id]; ok {
		name = player.Name
		delete(r.members, id)
	}
	r.mu.Unlock()

	if name == "" {
		return false
	}

	logrus.WithFields(logrus.Fields{
		"client": c.String(),
		"name":   name,
	}).Debug("member left")

	r.serverBroadcast(fmt.Sprintf("%s left", name))
	return true
}

// Rename overwrites the player's display name. Uniqueness is not re-checked:
// a rename may collide with another player's name.
func (r *Room) Rename(sessionID, name string) error {
	r.mu.Lock()
	player, ok := r.members[sessionID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownIdentity
	}

	from := player.Name
	player.Name = name
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"from": from,
		"to":   name,
	}).Debug("member renamed")

	return nil
}

// Ante debits the ante from the player and credits the pot. Once every
// registered member (at least two) has anted, the everyone-anted notice is
// broadcast, exactly once per round.
func (r *Room) Ante(sessionID string) error {
	r.mu.Lock()
	player, ok := r.members[sessionID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownIdentity
	}

	player.Balance -= r.ante
	r.pot += r.ante
	player.Anted = true

	notice := fmt.Sprintf("You anted $%s. You have $%s.", formatMoney(r.ante), formatMoney(player.Balance))

	allAnted := false
	if !r.antedNotice && len(r.members) >= 2 {
		allAnted = true
		for _, p := range r.members {
			if !p.Anted {
				allAnted = false
				break
			}
		}

		if allAnted {
			r.antedNotice = true
		}
	}
	pot := r.pot
	r.mu.Unlock()

	r.sendTo(sessionID, &Message{Type: TypeAnte, Payload: notice})

	if allAnted {
		r.serverBroadcast(fmt.Sprintf("Everyone has anted. The pot is $%s.", formatMoney(pot)))
	}

	return nil
}

// Bet moves the amount from the player's balance into the pot. A bet that
// would leave the balance negative is rejected without moving any money; the
// player is notified of the outcome either way.
func (r *Room) Bet(sessionID string, amount float64) error {
	r.mu.Lock()
	player, ok := r.members[sessionID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownIdentity
	}

	var notice string
	var err error
	if player.Balance-amount >= 0 {
		player.Balance -= amount
		r.pot += amount
		notice = fmt.Sprintf("You bet $%s. The pot is now $%s.", formatMoney(amount), formatMoney(r.pot))
	} else {
		err = ErrInsufficientFunds
		notice = fmt.Sprintf("You cannot bet $%s. You have $%s.", formatMoney(amount), formatMoney(player.Balance))
	}
	r.mu.Unlock()

	r.sendTo(sessionID, &Message{Type: TypeBetMoney, Payload: notice})
	return err
}

// MoneyCheck reports the player's balance to their connections
func (r *Room) MoneyCheck(sessionID string) error {
	r.mu.Lock()
	player, ok := r.members[sessionID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownIdentity
	}
	balance := player.Balance
	r.mu.Unlock()

	r.sendTo(sessionID, &Message{Type: TypeMoneyCheck, Payload: balance})
	return nil
}

// DrawCards draws count cards from the shared deck for the player
func (r *Room) DrawCards(sessionID string, count int) error {
	r.mu.Lock()
	_, ok := r.members[sessionID]
	r.mu.Unlock()
	if !ok {
		return ErrUnknownIdentity
	}

	cards, err := r.deck.DrawN(count)
	if err != nil {
		r.serverMessageTo(sessionID, "The deck is empty.")
		return err
	}

	r.sendTo(sessionID, &Message{Type: TypeDrawCards, Payload: cards})
	return nil
}

// GetHand evaluates the presented cards and reports the rank to the player
func (r *Room) GetHand(sessionID string, cards []deck.Card) error {
	r.mu.Lock()
	_, ok := r.members[sessionID]
	r.mu.Unlock()
	if !ok {
		return ErrUnknownIdentity
	}

	rank := r.evaluator.Evaluate(cards)
	r.sendTo(sessionID, &Message{Type: TypeGetHand, Payload: rank})
	return nil
}

// SubmitHand replaces the player's hand and marks it submitted. When every
// registered member has submitted, the round is resolved.
func (r *Room) SubmitHand(sessionID string, cards []deck.Card) error {
	r.mu.Lock()
	player, ok := r.members[sessionID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownIdentity
	}

	hand := make([]deck.Card, len(cards))
	copy(hand, cards)
	player.Hand = hand
	player.Submitted = true

	summary := r.maybeResolve()
	r.mu.Unlock()

	if summary != "" {
		r.serverBroadcast(summary)
	}

	return nil
}

// Chat handles a chat line from the player. Lines starting with /who or /to
// are commands; everything else is broadcast to the whole room.
func (r *Room) Chat(sessionID, text string) error {
	r.mu.Lock()
	player, ok := r.members[sessionID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownIdentity
	}
	from := player.Name
	r.mu.Unlock()

	switch {
	case text == "/who":
		r.serverMessageTo(sessionID, "[who] "+strings.Join(r.activeNames(), ", "))
		return nil
	case strings.HasPrefix(text, "/to "):
		return r.privateMessage(sessionID, from, strings.TrimPrefix(text, "/to "))
	}

	cm := newChatMessage(from, text)
	r.recordHistory(cm)
	r.broadcast(chatEnvelope(cm))
	return nil
}

// privateMessage delivers "/to <name> <text>". Display names may contain
// spaces, so the recipient is matched as the longest member-name prefix of
// the remainder.
func (r *Room) privateMessage(sessionID, from, rest string) error {
	r.mu.Lock()
	var toID, toName string
	for id, p := range r.members {
		if strings.HasPrefix(rest, p.Name+" ") && len(p.Name) > len(toName) {
			toID = id
			toName = p.Name
		}
	}
	r.mu.Unlock()

	if toID == "" {
		r.serverMessageTo(sessionID, "User not found")
		return nil
	}

	text := strings.TrimSpace(strings.TrimPrefix(rest, toName))
	cm := newChatMessage(from, fmt.Sprintf("(%s => %s) %s", from, toName, text))
	cm.Private = true

	r.sendTo(toID, chatEnvelope(cm))
	if toID != sessionID {
		r.sendTo(sessionID, chatEnvelope(cm))
	}

	return nil
}

// uniqueName generates a display name not used by any current member.
// NOTE: must be called with the lock held
func (r *Room) uniqueName() string {
	taken := make(map[string]bool, len(r.members))
	for _, p := range r.members {
		taken[p.Name] = true
	}

	name := r.nameFunc()
	for i := 0; taken[name] && i < 100; i++ {
		name = r.nameFunc()
	}

	// the generator ran dry; fall back to a numeric suffix
	if taken[name] {
		base := name
		for i := 2; taken[name]; i++ {
			name = fmt.Sprintf("%s %d", base, i)
		}
	}

	return name
}

// memberNames returns the display names of all members.
// NOTE: must be called with the lock held
func (r *Room) memberNames() []string {
	names := make([]string, 0, len(r.members))
	for _, p := range r.members {
		names = append(names, p.Name)
	}

	return names
}

func (r *Room) activeNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.memberNames()
}

func (r *Room) recordHistory(cm *ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, cm)
	if len(r.history) > historySize {
		r.history = r.history[len(r.history)-historySize:]
	}
}

func formatMoney(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}

	return s
}
