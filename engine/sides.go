package engine

// Side identifies one of the ten tie side bets by its tie total (0-9).
type Side uint8

// NumSides is the number of tie side bets.
const NumSides = 10

// SideSpec describes one tie side bet: the per-card count deltas, the
// true-count trigger that signals it, the payout multiplier and the
// Kelly-derived bankroll fraction used to size the aggregate wager.
type SideSpec struct {
	Deltas        [NumRanks]int // count delta per card rank, A..K
	Trigger       int           // signal when count per remaining deck >= Trigger
	Payout        int           // pays (Payout+1)x the stake on an exact match
	KellyFraction float64       // target bankroll fraction when signaled
}

// sideSpecs holds the counting tables for Tie 0 .. Tie 9.
// Delta order is A,2,3,4,5,6,7,8,9,T,J,Q,K.
var sideSpecs = [NumSides]SideSpec{
	{Deltas: [NumRanks]int{2, 2, 2, 2, 1, 1, 0, 1, 1, -3, -3, -3, -3}, Trigger: 7, Payout: 150, KellyFraction: 0.001114551},
	{Deltas: [NumRanks]int{-6, 2, 2, 2, 2, 1, 1, 0, 0, -1, -1, -1, -1}, Trigger: 7, Payout: 215, KellyFraction: 0.000467773},
	{Deltas: [NumRanks]int{-1, -6, 2, 2, 2, 2, 1, 2, 0, -1, -1, -1, -1}, Trigger: 6, Payout: 225, KellyFraction: 0.000536545},
	{Deltas: [NumRanks]int{-1, -1, -6, 2, 2, 3, 3, 0, 2, -1, -1, -1, -1}, Trigger: 7, Payout: 200, KellyFraction: 0.000583976},
	{Deltas: [NumRanks]int{-1, 0, 0, -6, 1, 2, 2, 2, 0, 0, 0, 0, 0}, Trigger: 7, Payout: 120, KellyFraction: 0.000949723},
	{Deltas: [NumRanks]int{0, -1, -1, 0, -6, 2, 2, 2, 2, 0, 0, 0, 0}, Trigger: 7, Payout: 110, KellyFraction: 0.000981404},
	{Deltas: [NumRanks]int{0, 0, 0, 0, 0, -7, 1, 1, 1, 1, 1, 1, 1}, Trigger: 7, Payout: 45, KellyFraction: 0.002509317},
	{Deltas: [NumRanks]int{1, 0, 0, 0, 0, 0, -8, 2, 1, 1, 1, 1, 1}, Trigger: 4, Payout: 45, KellyFraction: 0.002426738},
	{Deltas: [NumRanks]int{1, 1, 0, 0, 0, 0, 0, -7, 1, 1, 1, 1, 1}, Trigger: 6, Payout: 80, KellyFraction: 0.001358738},
	{Deltas: [NumRanks]int{1, 1, 1, 0, 0, 0, 0, 1, -8, 1, 1, 1, 1}, Trigger: 6, Payout: 80, KellyFraction: 0.001249004},
}

// sidePriority lists the sides in counting-priority order. Side assignment
// walks this list so the highest-value counts are always covered first.
var sidePriority = [NumSides]Side{7, 6, 0, 8, 9, 5, 4, 2, 3, 1}

// Spec returns the counting spec for a side.
func (s Side) Spec() *SideSpec { return &sideSpecs[s] }

// SidePayout returns the payout multiplier for a side.
func SidePayout(s Side) int { return sideSpecs[s].Payout }
