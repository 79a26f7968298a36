package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom-server/pkg/deck"
)

func TestRoom_resolveKicker(t *testing.T) {
	r := newTestRoom(Options{Ante: 5})

	c1 := NewClient(nil, "s1")
	c2 := NewClient(nil, "s2")
	r.MemberJoin(c1)
	r.MemberJoin(c2)

	require.NoError(t, r.Ante("s1"))
	require.NoError(t, r.Ante("s2"))
	assert.Equal(t, 10.0, r.Pot())
	received(c1)
	received(c2)

	// both hands are high card with equal top kickers; B's lowest kicker
	// (a 3 vs a 2) decides
	handA := deck.CardsFromString("2s,1h,4s,5h,6s")
	handB := deck.CardsFromString("3s,1h,4s,5h,6s")

	require.NoError(t, r.SubmitHand("s1", handA))

	// nothing resolves until everyone has submitted
	p1, _ := r.Member("s1")
	assert.True(t, p1.Submitted)
	assert.Equal(t, 10.0, r.Pot())

	require.NoError(t, r.SubmitHand("s2", handB))

	p1, _ = r.Member("s1")
	p2, _ := r.Member("s2")

	// B takes the whole pot
	assert.Equal(t, 15.0, p1.Balance)
	assert.Equal(t, 25.0, p2.Balance)
	assert.Equal(t, 0.0, r.Pot())

	// round state fully reset
	assert.False(t, p1.Submitted)
	assert.False(t, p2.Submitted)
	assert.False(t, p1.Anted)
	assert.False(t, p2.Anted)
	assert.Empty(t, p1.Hand)
	assert.Empty(t, p2.Hand)

	summary := lastChatText(t, c1)
	assert.Contains(t, summary, "Player 2 won $10 with a High card")
	assert.Contains(t, summary, "Player 1 had a High card")
}

func TestRoom_resolveSplitPot(t *testing.T) {
	r := newTestRoom(Options{Ante: 5})

	c1 := NewClient(nil, "s1")
	c2 := NewClient(nil, "s2")
	r.MemberJoin(c1)
	r.MemberJoin(c2)

	require.NoError(t, r.Ante("s1"))
	require.NoError(t, r.Ante("s2"))
	require.NoError(t, r.Bet("s1", 1))
	assert.Equal(t, 11.0, r.Pot())
	received(c1)
	received(c2)

	// identical values in different suits tie at every position
	require.NoError(t, r.SubmitHand("s1", deck.CardsFromString("2s,4h,6d,9c,13h")))
	require.NoError(t, r.SubmitHand("s2", deck.CardsFromString("2h,4d,6c,9h,13s")))

	p1, _ := r.Member("s1")
	p2, _ := r.Member("s2")

	// true push: the odd pot splits evenly
	assert.InDelta(t, 19.5, p1.Balance, 0.0001)
	assert.InDelta(t, 20.5, p2.Balance, 0.0001)
	assert.Equal(t, 0.0, r.Pot())

	summary := lastChatText(t, c2)
	assert.Contains(t, summary, "won $11 with a High card")
	assert.Contains(t, summary, "Player 1")
	assert.Contains(t, summary, "Player 2")
}

func TestRoom_resolveRankClassWins(t *testing.T) {
	r := newTestRoom(Options{Ante: 5})

	c1 := NewClient(nil, "s1")
	c2 := NewClient(nil, "s2")
	c3 := NewClient(nil, "s3")
	r.MemberJoin(c1)
	r.MemberJoin(c2)
	r.MemberJoin(c3)

	require.NoError(t, r.Ante("s1"))
	require.NoError(t, r.Ante("s2"))
	require.NoError(t, r.Ante("s3"))
	received(c1)
	received(c2)
	received(c3)

	// a flush beats two pairs regardless of kickers
	require.NoError(t, r.SubmitHand("s1", deck.CardsFromString("1s,1h,13d,13c,2h")))
	require.NoError(t, r.SubmitHand("s2", deck.CardsFromString("2c,5c,7c,9c,11c")))
	require.NoError(t, r.SubmitHand("s3", deck.CardsFromString("1d,1c,12d,12c,3h")))

	p2, _ := r.Member("s2")
	assert.Equal(t, 30.0, p2.Balance)

	summary := lastChatText(t, c3)
	assert.Contains(t, summary, "Player 2 won $15 with a Flush")

	// the summary lists every hand, best first
	assert.Contains(t, summary, "Player 1 had a Two pair")
	assert.Contains(t, summary, "Player 3 had a Two pair")
}

func TestRoom_resolveSinglePlayer(t *testing.T) {
	r := newTestRoom(Options{Ante: 5})

	c := NewClient(nil, "solo")
	r.MemberJoin(c)

	require.NoError(t, r.Ante("solo"))
	received(c)

	require.NoError(t, r.SubmitHand("solo", deck.CardsFromString("2s,4h,6d,9c,13h")))

	p, _ := r.Member("solo")
	assert.Equal(t, 20.0, p.Balance)
	assert.Equal(t, 0.0, r.Pot())
	assert.False(t, p.Submitted)
}

func TestRoom_maybeResolveNoMembers(t *testing.T) {
	r := newTestRoom(Options{})

	r.mu.Lock()
	summary := r.maybeResolve()
	r.mu.Unlock()

	assert.Equal(t, "", summary)
	assert.Equal(t, 0.0, r.Pot())
}

func TestBreakTies(t *testing.T) {
	mk := func(name, cards string) rankedPlayer {
		return rankedPlayer{
			player: &Player{
				Name: name,
				Hand: deck.CardsFromString(cards),
			},
			rank: HandRank{Ordering: 0, Name: "High card"},
		}
	}

	// the decisive kicker can be at any position
	winners := breakTies([]rankedPlayer{
		mk("a", "2s,1h,4s,5h,6s"),
		mk("b", "3s,1h,4s,5h,6s"),
	})
	require.Len(t, winners, 1)
	assert.Equal(t, "b", winners[0].player.Name)

	winners = breakTies([]rankedPlayer{
		mk("a", "13s,9h,7d,5c,2h"),
		mk("b", "12s,9h,7d,5c,2h"),
	})
	require.Len(t, winners, 1)
	assert.Equal(t, "a", winners[0].player.Name)

	// three-way tie until the final position, where c's 3 beats the 2s
	winners = breakTies([]rankedPlayer{
		mk("a", "13s,9h,7d,5c,2h"),
		mk("b", "13d,9c,7h,5s,2d"),
		mk("c", "13h,9d,7c,5h,3c"),
	})
	require.Len(t, winners, 1)
	assert.Equal(t, "c", winners[0].player.Name)

	// all five positions equal: a true push
	winners = breakTies([]rankedPlayer{
		mk("a", "13s,9h,7d,5c,2h"),
		mk("b", "13d,9c,7h,5s,2d"),
	})
	assert.Len(t, winners, 2)
}
