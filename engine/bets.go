package engine

import (
	"math/rand"
	"sort"
)

// Rules carries the table conditions and team policy for one simulation.
// It is immutable once constructed; every component receives it explicitly.
type Rules struct {
	Decks             int
	InitialStake      Cents
	MaxSidesPerPlayer int
	CutoffMean        float64
	CutoffStdev       float64

	MinChip    Cents // smallest chip denomination
	BetMinMain Cents
	BetMaxMain Cents
	BetMinSide Cents
	BetMaxSide Cents

	ExchangesPerSession int
	AllInOneExchanges   bool
	PunterBankrollRatio float64 // punter bankroll relative to a counter's

	CounterBetWeights [3]float64 // Player, Banker, Tie
	PunterBetWeights  [3]float64

	AvgMainBet          Cents
	MaxLimitBet         Cents // soft cap the team imposes on main bets
	PunterBetMultiplier float64
	BetStdevFrac        float64 // stdev of a main bet as a fraction of its average

	SideMultiplier          float64 // flat side size relative to the punter main bet
	PuntersPlayingSidesFrac float64
	SidesFracPuntersBetOn   float64
	CounterPlayProb         float64
	PunterNoAdvantageProb   float64

	TiePay            int
	ProportionalSides bool
	KellyMultiplier   float64
}

// BetPlanner decides, per hand and before dealing, who bets, how much and on
// what, for both counters and punters.
type BetPlanner struct {
	rules        *Rules
	numPunters   int
	sideTargets  [NumSides]Cents // aggregate money target per signaled side
	avgPunterBet Cents
	flatSideSize Cents
}

// NewBetPlanner precomputes the Kelly-derived per-side money targets.
func NewBetPlanner(rules *Rules, numPunters int) *BetPlanner {
	bp := &BetPlanner{
		rules:      rules,
		numPunters: numPunters,
	}
	bp.avgPunterBet = Cents(float64(rules.AvgMainBet) * rules.PunterBetMultiplier)
	bp.flatSideSize = Cents(float64(bp.avgPunterBet) * rules.SideMultiplier)

	capPerSide := rules.BetMaxSide * Cents(numPunters)
	for s := Side(0); s < NumSides; s++ {
		if rules.ProportionalSides {
			target := Cents(s.Spec().KellyFraction * float64(rules.InitialStake) * rules.KellyMultiplier)
			target = minCents(target, capPerSide)
			bp.sideTargets[s] = maxCents(RoundToMultiple(target, rules.BetMinSide), rules.BetMinSide)
		} else {
			// Non-proportional sizing assumes everyone may show up on the side.
			bp.sideTargets[s] = bp.flatSideSize * Cents(numPunters)
		}
	}
	return bp
}

// SideTarget returns the aggregate money target for one signaled side.
func (bp *BetPlanner) SideTarget(s Side) Cents { return bp.sideTargets[s] }

// RequiredPunters returns the minimum number of punters needed so that the
// most expensive signaled side can be funded at the per-punter cap.
func (bp *BetPlanner) RequiredPunters(hot []Side) int {
	var most Cents
	for _, s := range hot {
		most = maxCents(most, bp.sideTargets[s])
	}
	return CeilDiv(most, bp.rules.BetMaxSide)
}

// PlanBets fills in every player's main and side bets for the coming hand.
// The counters' and punters' protocols are independent; both consume the
// signaled sides. Returns ErrLedgerInconsistency if proportional side
// allocation fails to match a side's target exactly.
func (bp *BetPlanner) PlanBets(team Team, hot []Side, rng *rand.Rand) error {
	if err := bp.planPunters(team.Punters(), hot, rng); err != nil {
		return err
	}
	bp.planCounters(team, rng)

	for _, p := range team {
		p.TotalBetAmount = p.MainBetAmount
		for _, amount := range p.SideBets {
			p.TotalBetAmount += amount
		}
	}
	return nil
}

// planCounters lets every counter independently join the hand with the
// configured probability and sizes a joining counter's main bet.
func (bp *BetPlanner) planCounters(team Team, rng *rand.Rand) {
	for _, p := range team {
		if p.Role != RoleCounter {
			continue
		}
		if rng.Float64() >= bp.rules.CounterPlayProb {
			continue
		}
		p.MainBetAmount = bp.mainBetSize(bp.rules.AvgMainBet, rng)
		p.MainBetChoice = drawMainBet(bp.rules.CounterBetWeights, rng)
	}
}

// planPunters forces the minimum punter cohort needed to fund the signaled
// sides, lets the rest join independently, then allocates side money.
func (bp *BetPlanner) planPunters(punters Team, hot []Side, rng *rand.Rand) error {
	if len(punters) == 0 {
		return nil
	}

	minPlaying := bp.RequiredPunters(hot)
	if minPlaying > len(punters) {
		minPlaying = len(punters)
	}

	playing := make(Team, 0, len(punters))
	playing = append(playing, punters[:minPlaying]...)
	for _, p := range punters[minPlaying:] {
		if rng.Float64() < bp.rules.PunterNoAdvantageProb {
			playing = append(playing, p)
		}
	}

	for _, p := range playing {
		p.MainBetAmount = bp.mainBetSize(bp.avgPunterBet, rng)
		p.MainBetChoice = drawMainBet(bp.rules.PunterBetWeights, rng)
	}

	if len(hot) == 0 {
		return nil
	}
	if bp.rules.ProportionalSides {
		return bp.allocateProportional(playing, hot, minPlaying, rng)
	}
	bp.allocateFlat(playing, hot, minPlaying, rng)
	return nil
}

// allocateProportional splits each signaled side's money target exactly
// among the punters who cover it. Punters who are part of a side's minimum
// cohort must include that side in their personal combination; the final
// amounts on a side must sum to its target, a hard invariant.
func (bp *BetPlanner) allocateProportional(playing Team, hot []Side, minPlaying int, rng *rand.Rand) error {
	rules := bp.rules

	sorted := append(Team(nil), playing...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Bankroll > sorted[j].Bankroll })

	numBetting := minPlaying + binomial(len(playing)-minPlaying, rules.PuntersPlayingSidesFrac, rng)
	if numBetting > len(sorted) {
		numBetting = len(sorted)
	}
	bettors := sorted[:numBetting]

	needed := make(map[Side]Cents, len(hot))
	minPerSide := make(map[Side]int, len(hot))
	for _, s := range hot {
		needed[s] = bp.sideTargets[s]
		minPerSide[s] = CeilDiv(bp.sideTargets[s], rules.BetMaxSide)
	}

	pool := newCombinationPool(hot)

	remaining := numBetting
	for _, p := range bettors {
		var must []Side
		for _, s := range hot {
			if remaining == minPerSide[s] {
				must = append(must, s)
			}
		}

		k := len(must) + binomial(len(hot)-len(must), rules.SidesFracPuntersBetOn, rng)
		if k <= 0 {
			remaining--
			continue
		}

		combo := pool.pick(k, must, rng)
		for _, s := range combo {
			p.addSide(s)
			minPerSide[s]--
		}
		remaining--
	}

	// Split each side's target evenly among its takers, decrementing the
	// remaining target as amounts are fixed so the last taker absorbs the
	// rounding.
	puntersOnSide := make(map[Side]int, len(hot))
	for _, p := range bettors {
		for _, s := range p.ChosenSides() {
			puntersOnSide[s]++
		}
	}
	for _, p := range bettors {
		for _, s := range p.ChosenSides() {
			amount := minCents(roundShare(needed[s], puntersOnSide[s], rules.BetMinSide), rules.BetMaxSide)
			p.SideBets[s] = amount
			needed[s] -= amount
			puntersOnSide[s]--
		}
	}

	for _, s := range hot {
		var got Cents
		for _, p := range bettors {
			got += p.SideBets[s]
		}
		if got != bp.sideTargets[s] {
			return LedgerErrorf("side %d allocation %v does not match target %v", s, got, bp.sideTargets[s])
		}
	}
	return nil
}

// allocateFlat assigns Gaussian-randomized side amounts with no budget
// matching; every signaled side is guaranteed at least one bettor. Side
// choosing is limited to the same richest-first cohort proportional mode
// uses.
func (bp *BetPlanner) allocateFlat(playing Team, hot []Side, minPlaying int, rng *rand.Rand) {
	rules := bp.rules

	sorted := append(Team(nil), playing...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Bankroll > sorted[j].Bankroll })

	numBetting := minPlaying + binomial(len(playing)-minPlaying, rules.PuntersPlayingSidesFrac, rng)
	if numBetting > len(sorted) {
		numBetting = len(sorted)
	}
	bettors := sorted[:numBetting]

	pool := newCombinationPool(hot)
	covered := make(map[Side]bool, len(hot))

	for _, p := range bettors {
		k := binomial(len(hot), rules.SidesFracPuntersBetOn, rng)
		if k <= 0 {
			continue
		}
		for _, s := range pool.pick(k, nil, rng) {
			p.addSide(s)
			covered[s] = true
		}
	}

	// Force-assign any side nobody chose organically.
	if len(bettors) > 0 {
		for _, s := range hot {
			if !covered[s] {
				bettors[rng.Intn(len(bettors))].addSide(s)
			}
		}
	}

	for _, p := range bettors {
		if len(p.ChosenSides()) == 0 {
			continue
		}
		amount := gaussianBet(bp.flatSideSize, rules.BetStdevFrac, rng)
		amount = maxCents(RoundToMultiple(amount, rules.BetMinSide), rules.BetMinSide)
		amount = minCents(amount, rules.BetMaxSide)
		for _, s := range p.ChosenSides() {
			p.SideBets[s] = amount
		}
	}
}

// mainBetSize draws a Gaussian-randomized main bet, rounds it to the
// minimum-bet step, floors it at the table minimum, and caps it at the
// table maximum and the team's soft limit.
func (bp *BetPlanner) mainBetSize(avg Cents, rng *rand.Rand) Cents {
	rules := bp.rules
	bet := gaussianBet(avg, rules.BetStdevFrac, rng)
	bet = maxCents(RoundToMultiple(bet, rules.BetMinMain), rules.BetMinMain)
	return minCents(minCents(rules.MaxLimitBet, bet), rules.BetMaxMain)
}

func gaussianBet(avg Cents, stdevFrac float64, rng *rand.Rand) Cents {
	return Cents(rng.NormFloat64()*stdevFrac*float64(avg) + float64(avg))
}

// drawMainBet draws the bet side from the categorical distribution
// (Player, Banker, Tie weights).
func drawMainBet(weights [3]float64, rng *rand.Rand) MainBet {
	total := weights[0] + weights[1] + weights[2]
	r := rng.Float64() * total
	if r < weights[0] {
		return BetPlayer
	}
	if r < weights[0]+weights[1] {
		return BetBanker
	}
	return BetTie
}

// binomial draws the number of successes out of n Bernoulli trials with
// probability p. n is at most the team size, so summing draws is fine.
func binomial(n int, p float64, rng *rand.Rand) int {
	if n <= 0 || p <= 0 {
		return 0
	}
	count := 0
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			count++
		}
	}
	return count
}

// roundShare rounds total/n to the nearest multiple of step.
func roundShare(total Cents, n int, step Cents) Cents {
	if n <= 0 || step <= 0 {
		return 0
	}
	d := Cents(n) * step
	return (2*total + d) / (2 * d) * step
}

// combinationPool hands out side combinations of a given size, favoring
// combinations not yet used this hand and refilling a size's pool when it
// runs out.
type combinationPool struct {
	sides  []Side
	bySize map[int][][]Side
}

func newCombinationPool(sides []Side) *combinationPool {
	return &combinationPool{
		sides:  sides,
		bySize: make(map[int][][]Side),
	}
}

// pick returns a random combination of k sides including every side in
// must, removing it from the pool. The pool for that size is regenerated
// when no remaining combination satisfies the constraint.
func (cp *combinationPool) pick(k int, must []Side, rng *rand.Rand) []Side {
	if k > len(cp.sides) {
		k = len(cp.sides)
	}
	if _, ok := cp.bySize[k]; !ok {
		cp.bySize[k] = combinations(cp.sides, k)
	}

	candidates := cp.filter(k, must)
	if len(candidates) == 0 {
		cp.bySize[k] = combinations(cp.sides, k)
		candidates = cp.filter(k, must)
		if len(candidates) == 0 {
			return nil
		}
	}

	idx := candidates[rng.Intn(len(candidates))]
	combo := cp.bySize[k][idx]
	cp.bySize[k] = append(cp.bySize[k][:idx], cp.bySize[k][idx+1:]...)
	return combo
}

// filter returns the pool indices of size-k combinations containing every
// side in must.
func (cp *combinationPool) filter(k int, must []Side) []int {
	var idxs []int
	for i, combo := range cp.bySize[k] {
		if containsAll(combo, must) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func containsAll(combo, must []Side) bool {
	for _, m := range must {
		found := false
		for _, s := range combo {
			if s == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// combinations returns all k-element combinations of sides, in order.
func combinations(sides []Side, k int) [][]Side {
	if k <= 0 || k > len(sides) {
		return nil
	}
	var out [][]Side
	combo := make([]Side, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			out = append(out, append([]Side(nil), combo...))
			return
		}
		for i := start; i <= len(sides)-(k-depth); i++ {
			combo[depth] = sides[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return out
}
