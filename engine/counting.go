package engine

import "sort"

// AssignSides partitions the ten sides among the team in counting-priority
// order, bounded by the global capacity players*maxSidesPerPlayer.
//
// When capacity exceeds the ten sides they are spread evenly, with any
// remainder given to punters before counters (role is a deterministic
// tie-break only). Otherwise no player can track more than their cap, so
// every player takes exactly maxSidesPerPlayer sides along the priority
// list and the sides past the team's capacity go uncounted.
// Each player's running-count map is initialized to zero for their own
// sides only.
func AssignSides(team Team, maxSidesPerPlayer int) {
	counts := make([]int, len(team))
	if len(team)*maxSidesPerPlayer > NumSides {
		perPlayer := NumSides / len(team)
		remainder := NumSides % len(team)

		// Punters take the extra side before counters; within a role the
		// original team order is kept.
		order := make([]int, len(team))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return team[order[a]].Role == RolePunter && team[order[b]].Role != RolePunter
		})
		for _, idx := range order {
			counts[idx] = perPlayer
			if remainder > 0 {
				counts[idx]++
				remainder--
			}
		}
	} else {
		for i := range team {
			counts[i] = maxSidesPerPlayer
		}
	}

	next := 0
	for i, p := range team {
		n := counts[i]
		p.AssignedSides = append([]Side(nil), sidePriority[next:next+n]...)
		next += n
		p.RunningCount = make(map[Side]int, n)
		for _, side := range p.AssignedSides {
			p.RunningCount[side] = 0
		}
	}
}

// UpdateCounts feeds every card revealed this hand to every player's
// running counts.
func UpdateCounts(team Team, revealed []Card) {
	for _, c := range revealed {
		for _, p := range team {
			p.UpdateRunningCount(c)
		}
	}
}

// HotSides returns the de-duplicated set of signaled sides across the whole
// team: a side is signaled when a tracking player's count per remaining deck
// reaches its trigger.
func HotSides(team Team, shoe *Shoe) []Side {
	remainingDecks := shoe.RemainingDecks()
	if remainingDecks <= 0 {
		return nil
	}

	var seen [NumSides]bool
	var hot []Side
	for _, p := range team {
		for _, side := range p.AssignedSides {
			if seen[side] {
				continue
			}
			if float64(p.RunningCount[side])/remainingDecks >= float64(side.Spec().Trigger) {
				seen[side] = true
				hot = append(hot, side)
			}
		}
	}
	sort.Slice(hot, func(i, j int) bool { return hot[i] < hot[j] })
	return hot
}
