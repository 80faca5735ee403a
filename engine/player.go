package engine

import "strconv"

// Role distinguishes the two jobs on the team.
type Role uint8

const (
	// RoleCounter tracks side-bet counts and bets small to stay accurate.
	RoleCounter Role = iota
	// RolePunter bets big, including signaled sides, looking independent.
	RolePunter
)

func (r Role) String() string {
	if r == RolePunter {
		return "punter"
	}
	return "counter"
}

// MainBet is a main-bet choice.
type MainBet uint8

const (
	BetNone MainBet = iota
	BetPlayer
	BetBanker
	BetTie
)

// BetType indexes the per-bet-type totals: the three main bets followed by
// the ten tie sides.
type BetType uint8

const (
	BetTypePlayer BetType = iota
	BetTypeBanker
	BetTypeTie
	betTypeSideBase
	// NumBetTypes is 3 main bet types + 10 sides.
	NumBetTypes = 3 + NumSides
)

// SideBetType returns the BetType slot for a side.
func SideBetType(s Side) BetType { return betTypeSideBase + BetType(s) }

func (bt BetType) String() string {
	switch bt {
	case BetTypePlayer:
		return "Player"
	case BetTypeBanker:
		return "Banker"
	case BetTypeTie:
		return "Tie"
	default:
		return "Tie " + strconv.Itoa(int(bt-betTypeSideBase))
	}
}

// Player is one team member. All state is trip-local; players are addressed
// by their index in the team slice, never by name lookup.
type Player struct {
	Name string
	Role Role

	// Money state.
	Bankroll       Cents
	IdealBankroll  Cents
	TotalBetAmount Cents // sum of all bets placed this hand

	// Betting state for the current hand.
	MainBetChoice MainBet
	MainBetAmount Cents
	SideBets      map[Side]Cents
	sideOrder     []Side // chosen combination, kept for deterministic settlement

	// Counting state.
	AssignedSides []Side
	RunningCount  map[Side]int

	// Governance state.
	ExchangesUsed int

	// Derived per-hand.
	WinPerBetType [NumBetTypes]Cents
}

// NewPlayer creates a player with empty betting and counting state.
func NewPlayer(name string, role Role) *Player {
	return &Player{
		Name:         name,
		Role:         role,
		SideBets:     make(map[Side]Cents),
		RunningCount: make(map[Side]int),
	}
}

// UpdateRunningCount adds the per-card delta of every tracked side for one
// revealed card.
func (p *Player) UpdateRunningCount(c Card) {
	for _, side := range p.AssignedSides {
		p.RunningCount[side] += side.Spec().Deltas[c]
	}
}

// ResetBet clears all per-hand betting state.
func (p *Player) ResetBet() {
	p.MainBetChoice = BetNone
	p.MainBetAmount = 0
	for side := range p.SideBets {
		delete(p.SideBets, side)
	}
	p.sideOrder = p.sideOrder[:0]
	p.TotalBetAmount = 0
	p.IdealBankroll = 0
	for i := range p.WinPerBetType {
		p.WinPerBetType[i] = 0
	}
}

// ResetCounts zeroes the player's running counts, as happens when the shoe
// is reshuffled.
func (p *Player) ResetCounts() {
	for side := range p.RunningCount {
		p.RunningCount[side] = 0
	}
}

// ResetSession zeroes running counts and the exchange budget between
// sessions, and clears any pending bet.
func (p *Player) ResetSession() {
	p.ResetCounts()
	p.ExchangesUsed = 0
	p.ResetBet()
}

// addSide registers a side in the player's chosen combination with no amount
// assigned yet.
func (p *Player) addSide(s Side) {
	if _, ok := p.SideBets[s]; ok {
		return
	}
	p.SideBets[s] = 0
	p.sideOrder = append(p.sideOrder, s)
}

// ChosenSides returns the player's chosen sides in selection order.
func (p *Player) ChosenSides() []Side { return p.sideOrder }

// Team is the arena of players with stable indices. Counters come first,
// punters after, matching the assignment and forced-play ordering rules.
type Team []*Player

// Counters returns the counter sub-slice of the team.
func (t Team) Counters() Team {
	for i, p := range t {
		if p.Role == RolePunter {
			return t[:i]
		}
	}
	return t
}

// Punters returns the punter sub-slice of the team.
func (t Team) Punters() Team {
	for i, p := range t {
		if p.Role == RolePunter {
			return t[i:]
		}
	}
	return nil
}

// TotalBankroll sums the current bankrolls of the whole team.
func (t Team) TotalBankroll() Cents {
	var sum Cents
	for _, p := range t {
		sum += p.Bankroll
	}
	return sum
}

// TotalBetAmount sums the pending bet commitments of the whole team.
func (t Team) TotalBetAmount() Cents {
	var sum Cents
	for _, p := range t {
		sum += p.TotalBetAmount
	}
	return sum
}

// NewTeam builds the standard team: counters first, then punters.
func NewTeam(numPlayers, numPunters int) Team {
	team := make(Team, 0, numPlayers)
	for i := 0; i < numPlayers-numPunters; i++ {
		team = append(team, NewPlayer(nameFor("Counter", i), RoleCounter))
	}
	for i := 0; i < numPunters; i++ {
		team = append(team, NewPlayer(nameFor("punter", i), RolePunter))
	}
	return team
}

func nameFor(prefix string, i int) string {
	return prefix + "_" + strconv.Itoa(i)
}
