package deck

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrEmptyDeck is an error when a draw is attempted and there are not enough cards
var ErrEmptyDeck = errors.New("empty deck")

// shufflePasses is the number of passes TrueRandomShuffle performs
const shufflePasses = 7

// Listener receives deck events. Callbacks run synchronously inside the
// deck's critical section for the mutation that produced them, so they must
// not call back into the deck.
type Listener interface {
	// OnDraw is called after a card is drawn with the number of cards remaining
	OnDraw(card Card, remaining int)

	// OnAdd is called after cards are added to the deck
	OnAdd(count int)

	// OnShuffle is called after each shuffle pass
	OnShuffle()
}

// Deck is an ordered sequence of cards. A deck may contain duplicates once
// it has been extended with additional decks.
type Deck struct {
	mu       sync.Mutex
	cards    []Card
	listener Listener
	seed     int64
	rng      *rand.Rand

	// lowWater is the size at or below which a draw triggers replenishment; -1 disables
	lowWater int
}

// New returns a new deck holding all 52 cards of a single suit-set.
// Important! the deck is unshuffled and will not replenish itself. Call
// Shuffle or TrueRandomShuffle, and AutoRefill to enable replenishment.
func New() *Deck {
	return &Deck{
		cards:    buildCards(),
		seed:     -1,
		lowWater: -1,
	}
}

func buildCards() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range []Suit{Spades, Clubs, Diamonds, Hearts} {
		for rank := 1; rank <= 13; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return cards
}

// SetSeed will set the shuffle seed.
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (d *Deck) SetSeed(seed int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

// SetListener attaches the listener that receives draw, add, and shuffle events
func (d *Deck) SetListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener = l
}

// AutoRefill enables auto-replenishment: whenever a draw leaves the deck at
// or below lowWater cards, a fresh 52-card deck is added and the deck is
// reshuffled before the draw returns
func (d *Deck) AutoRefill(lowWater int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lowWater = lowWater
}

// Shuffle will shuffle the deck of cards.
// You can manually specify the seed, or you can leave it as 0 to use the clock.
func (d *Deck) Shuffle(seed int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ensureRNG(seed)
	d.shuffle()
}

// TrueRandomShuffle shuffles the deck seven times to avoid the artifacts of
// a single weak pass
func (d *Deck) TrueRandomShuffle(seed int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ensureRNG(seed)
	for i := 0; i < shufflePasses; i++ {
		d.shuffle()
	}
}

func (d *Deck) ensureRNG(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	if seed == 0 {
		if d.rng != nil {
			return
		}

		seed = time.Now().UnixNano()
	}

	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

// NOTE: must be called with the lock held and the rng initialized
func (d *Deck) shuffle() {
	for j := len(d.cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	if d.listener != nil {
		d.listener.OnShuffle()
	}
}

// Draw removes and returns the front card.
// If there are no cards after the replenishment check, ErrEmptyDeck is returned.
func (d *Deck) Draw() (Card, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.draw()
}

// DrawN draws n cards as a single atomic operation. Either all n cards are
// drawn, or ErrEmptyDeck is returned and the deck is left untouched.
func (d *Deck) DrawN(n int) ([]Card, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lowWater < 0 && len(d.cards) < n {
		return nil, ErrEmptyDeck
	}

	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.draw()
		if err != nil {
			// unreachable once the up-front check passed
			return nil, err
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// NOTE: must be called with the lock held
func (d *Deck) draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	remaining := len(d.cards)

	if d.listener != nil {
		d.listener.OnDraw(card, remaining)
	}

	if d.lowWater >= 0 && remaining <= d.lowWater {
		d.replenish()
	}

	return card, nil
}

// NOTE: must be called with the lock held
func (d *Deck) replenish() {
	fresh := buildCards()
	d.cards = append(d.cards, fresh...)

	if d.listener != nil {
		d.listener.OnAdd(len(fresh))
	}

	if d.rng == nil {
		d.seed = time.Now().UnixNano()
		d.rng = rand.New(rand.NewSource(d.seed))
	}

	for i := 0; i < shufflePasses; i++ {
		d.shuffle()
	}
}

// Add appends the cards to the back of the deck
func (d *Deck) Add(cards ...Card) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cards = append(d.cards, cards...)

	if d.listener != nil {
		d.listener.OnAdd(len(cards))
	}
}

// AddDeck appends all of the other deck's cards to this deck
func (d *Deck) AddDeck(other *Deck) {
	d.Add(other.Cards()...)
}

// Cut moves the bottom half of the deck to the top
func (d *Deck) Cut() {
	d.mu.Lock()
	defer d.mu.Unlock()

	half := len(d.cards) / 2
	cards := make([]Card, 0, len(d.cards))
	cards = append(cards, d.cards[half:]...)
	cards = append(cards, d.cards[:half]...)
	d.cards = cards
}

// Cards returns a copy of the cards currently in the deck
func (d *Deck) Cards() []Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)

	return cards
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards
func (d *Deck) IsEmpty() bool {
	return d.CardsLeft() == 0
}

// Contains returns true if the card is present in the deck
func (d *Deck) Contains(card Card) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.cards {
		if c == card {
			return true
		}
	}

	return false
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return d.CardsLeft() >= want
}
