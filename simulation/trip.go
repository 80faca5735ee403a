package simulation

import (
	"math/rand"

	"github.com/ravhello/baccarat/engine"
)

// TripResult aggregates everything one trip produced. Trips are independent;
// the driver merges these into the final report.
type TripResult struct {
	HandsPlayed int

	BankerWins  int
	PlayerWins  int
	TieOutcomes [engine.NumSides]int

	TotalBet  engine.Cents
	TotalWon  engine.Cents
	BetByType [engine.NumBetTypes]engine.Cents
	WonByType [engine.NumBetTypes]engine.Cents

	SignalCounts [engine.NumSides]int

	// EndBankrolls holds each player's bankroll when the trip ended, in
	// team order.
	EndBankrolls []engine.Cents

	// RemainingCards records the shoe length at the end of each session.
	RemainingCards []int

	InitialAssignments int
	Bankrupted         bool

	// Err is set when the trip was aborted by a ledger inconsistency. The
	// other fields then cover only the hands played before the abort.
	Err error
}

// EndTotal returns the team's pooled bankroll at the end of the trip.
func (tr *TripResult) EndTotal() engine.Cents {
	var total engine.Cents
	for _, b := range tr.EndBankrolls {
		total += b
	}
	return total
}

// tripSim runs one trip: a fresh team playing a fixed number of sessions
// back-to-back, carrying bankroll forward and rebalancing in between.
type tripSim struct {
	rules           *engine.Rules
	team            engine.Team
	planner         *engine.BetPlanner
	ledger          *engine.Ledger
	rng             *rand.Rand
	summary         *Summary
	sessions        int
	handsPerSession int
}

func newTripSim(rules *engine.Rules, numPlayers, numPunters, sessions, handsPerSession int, summary *Summary, rng *rand.Rand) *tripSim {
	team := engine.NewTeam(numPlayers, numPunters)
	engine.AssignSides(team, rules.MaxSidesPerPlayer)
	return &tripSim{
		rules:           rules,
		team:            team,
		planner:         engine.NewBetPlanner(rules, len(team.Punters())),
		ledger:          engine.NewLedger(rules, team),
		rng:             rng,
		summary:         summary,
		sessions:        sessions,
		handsPerSession: handsPerSession,
	}
}

func (t *tripSim) run() *TripResult {
	tr := &TripResult{}

	// Seed every bankroll from the configured stake.
	bankrupt, err := t.ledger.RebalanceAll()
	if err != nil {
		tr.Err = err
		return t.finish(tr)
	}
	if bankrupt {
		t.summary.Bankruptcies.Add(1)
		tr.Bankrupted = true
		return t.finish(tr)
	}

	moneyLast := t.team.TotalBankroll()
	for s := 0; s < t.sessions; s++ {
		shoe := engine.NewShoe(t.rules.Decks, t.rng)
		reason, err := t.runSession(shoe, &moneyLast, tr)
		tr.RemainingCards = append(tr.RemainingCards, shoe.Remaining())

		for _, p := range t.team {
			p.ResetSession()
		}
		if err != nil {
			tr.Err = err
			return t.finish(tr)
		}
		if reason == engine.FailureBankruptcy {
			t.summary.Bankruptcies.Add(1)
			tr.Bankrupted = true
			break
		}

		// Rebalance between sessions; a bankruptcy signal here just means
		// the pool is too thin to split evenly, which the next session's
		// hands will surface on their own.
		if s < t.sessions-1 {
			if _, err := t.ledger.RebalanceAll(); err != nil {
				tr.Err = err
				return t.finish(tr)
			}
			moneyLast = t.team.TotalBankroll()
		}
	}
	return t.finish(tr)
}

func (t *tripSim) finish(tr *TripResult) *TripResult {
	tr.InitialAssignments = t.ledger.InitialAssignments
	tr.EndBankrolls = make([]engine.Cents, len(t.team))
	for i, p := range t.team {
		tr.EndBankrolls[i] = p.Bankroll
	}
	return tr
}

// runSession plays up to the configured number of hands, reshuffling when
// the shoe reaches the stop card. It returns the failure that ended the
// session early, or FailureNone when the session ran to completion.
func (t *tripSim) runSession(shoe *engine.Shoe, moneyLast *engine.Cents, tr *TripResult) (engine.FailureReason, error) {
	t.summary.TotalSessions.Add(1)

	for hand := 0; hand < t.handsPerSession; hand++ {
		if shoe.Remaining() <= engine.DrawCutoff(t.rules.CutoffMean, t.rules.CutoffStdev, t.rules.Decks, t.rng) {
			*shoe = *engine.NewShoe(t.rules.Decks, t.rng)
			for _, p := range t.team {
				p.ResetCounts()
			}
		}

		reason, err := t.runHand(shoe, moneyLast, tr)
		if err != nil {
			return engine.FailureNone, err
		}
		if reason != engine.FailureNone {
			return reason, nil
		}
	}

	t.summary.CompletedSessions.Add(1)
	return engine.FailureNone, nil
}

// runHand plays one hand end to end: signal detection, bet planning,
// bankruptcy handling, stake withdrawal, dealing, count updates and
// settlement, with money-conservation checks before and after.
func (t *tripSim) runHand(shoe *engine.Shoe, moneyLast *engine.Cents, tr *TripResult) (engine.FailureReason, error) {
	for _, p := range t.team {
		p.ResetBet()
	}

	if start := t.team.TotalBankroll(); start != *moneyLast {
		return engine.FailureNone, engine.LedgerErrorf("pool changed between hands: had %v, now %v", *moneyLast, start)
	}

	hot := engine.HotSides(t.team, shoe)
	for _, s := range hot {
		tr.SignalCounts[s]++
	}

	if err := t.planner.PlanBets(t.team, hot, t.rng); err != nil {
		return engine.FailureNone, err
	}

	for _, p := range t.team {
		ok, reason, err := t.ledger.HandleBankruptcy(p)
		if err != nil {
			return engine.FailureNone, err
		}
		if ok {
			continue
		}
		if reason == engine.FailureOutOfExchanges {
			if p.Role == engine.RolePunter {
				t.summary.PunterFailures.Add(1)
			} else {
				t.summary.CounterFailures.Add(1)
			}
		}
		*moneyLast = t.team.TotalBankroll()
		return reason, nil
	}

	var totalBet engine.Cents
	for _, p := range t.team {
		if p.Bankroll < p.TotalBetAmount {
			return engine.FailureNone, engine.LedgerErrorf("%s bets %v with bankroll %v", p.Name, p.TotalBetAmount, p.Bankroll)
		}
		p.Bankroll -= p.TotalBetAmount
		totalBet += p.TotalBetAmount

		if p.MainBetChoice != engine.BetNone {
			tr.BetByType[engine.MainBetType(p.MainBetChoice)] += p.MainBetAmount
		}
		for _, s := range p.ChosenSides() {
			tr.BetByType[engine.SideBetType(s)] += p.SideBets[s]
		}
	}

	result := engine.DealHand(shoe)
	engine.UpdateCounts(t.team, result.Revealed())
	settlement := engine.SettleBets(t.team, result.Outcome, t.rules.TiePay)

	for _, p := range t.team {
		if p.Bankroll < 0 {
			return engine.FailureNone, engine.LedgerErrorf("%s bankroll went negative: %v", p.Name, p.Bankroll)
		}
	}
	after := t.team.TotalBankroll()
	if after != *moneyLast-totalBet+settlement.TotalWon {
		return engine.FailureNone, engine.LedgerErrorf("pool after hand is %v, expected %v-%v+%v",
			after, *moneyLast, totalBet, settlement.TotalWon)
	}

	tr.HandsPlayed++
	tr.TotalBet += totalBet
	tr.TotalWon += settlement.TotalWon
	for bt := engine.BetType(0); bt < engine.NumBetTypes; bt++ {
		tr.WonByType[bt] += settlement.WonByBetType[bt]
	}
	switch result.Outcome.Winner {
	case engine.BetBanker:
		tr.BankerWins++
	case engine.BetPlayer:
		tr.PlayerWins++
	default:
		tr.TieOutcomes[result.Outcome.TieTotal]++
	}

	*moneyLast = after
	return engine.FailureNone, nil
}
