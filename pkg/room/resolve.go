package room

import (
	"fmt"
	"sort"
	"strings"

	"cardroom-server/pkg/deck"
)

// rankedPlayer pairs a player with their evaluated hand for resolution
type rankedPlayer struct {
	player *Player
	rank   HandRank
}

// maybeResolve resolves the round if every registered member has submitted a
// hand. With no members the check is vacuous and nothing happens. The
// returned summary is empty unless the round resolved.
// NOTE: must be called with the lock held
func (r *Room) maybeResolve() string {
	if len(r.members) == 0 {
		return ""
	}

	for _, p := range r.members {
		if !p.Submitted {
			return ""
		}
	}

	return r.resolve()
}

// resolve determines the winners, splits the pot, resets the round state,
// and returns the round summary.
// NOTE: must be called with the lock held
func (r *Room) resolve() string {
	ranked := make([]rankedPlayer, 0, len(r.members))
	for _, p := range r.members {
		ranked = append(ranked, rankedPlayer{
			player: p,
			rank:   r.evaluator.Evaluate(p.Hand),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rank.Ordering > ranked[j].rank.Ordering
	})

	top := make([]rankedPlayer, 0, 1)
	for _, rp := range ranked {
		if rp.rank.Ordering != ranked[0].rank.Ordering {
			break
		}
		top = append(top, rp)
	}

	winners := breakTies(top)

	pot := r.pot
	share := pot / float64(len(winners))
	names := make([]string, len(winners))
	for i, rp := range winners {
		rp.player.Balance += share
		names[i] = rp.player.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s won $%s with a %s", strings.Join(names, ", "), formatMoney(pot), winners[0].rank.Name)
	for _, rp := range ranked {
		fmt.Fprintf(&sb, "\n%s had a %s with: [%s]", rp.player.Name, rp.rank.Name, deck.CardsToString(rp.player.Hand))
	}

	for _, p := range r.members {
		p.resetRound()
	}
	r.pot = 0
	r.antedNotice = false

	return sb.String()
}

// breakTies applies standard kicker comparison to the players tied at the
// top rank class: each hand is sorted descending by ace-high value, and the
// first position at which the still-tied hands differ decides. Hands that
// tie at every position split the win.
func breakTies(top []rankedPlayer) []rankedPlayer {
	if len(top) == 1 {
		return top
	}

	kickers := make([][]int, len(top))
	positions := 0
	for i, rp := range top {
		kickers[i] = sortedKickers(rp.player.Hand)
		if len(kickers[i]) > positions {
			positions = len(kickers[i])
		}
	}

	contenders := make([]int, len(top))
	for i := range top {
		contenders[i] = i
	}

	for pos := 0; pos < positions && len(contenders) > 1; pos++ {
		max := 0
		for _, i := range contenders {
			if v := kickerAt(kickers[i], pos); v > max {
				max = v
			}
		}

		next := contenders[:0]
		for _, i := range contenders {
			if kickerAt(kickers[i], pos) == max {
				next = append(next, i)
			}
		}
		contenders = next
	}

	winners := make([]rankedPlayer, len(contenders))
	for n, i := range contenders {
		winners[n] = top[i]
	}

	return winners
}

// sortedKickers returns the hand's ace-high values, descending
func sortedKickers(hand []deck.Card) []int {
	values := make([]int, len(hand))
	for i, c := range hand {
		values[i] = c.AceHighRank()
	}

	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}

func kickerAt(values []int, pos int) int {
	if pos >= len(values) {
		return 0
	}

	return values[pos]
}
