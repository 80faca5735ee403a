package engine

import "sort"

// Ledger is the sole authority on bankroll redistribution and bankruptcy
// detection. All of its arithmetic is in integer cents so the team pool is
// conserved exactly across every rebalance.
type Ledger struct {
	rules *Rules
	team  Team

	// InitialAssignments counts how many times ideal bankrolls were seeded
	// from the configured stake rather than from the live pool. Exactly one
	// such seeding happens per trip.
	InitialAssignments int
}

// NewLedger binds a ledger to a team under the given rules.
func NewLedger(rules *Rules, team Team) *Ledger {
	return &Ledger{rules: rules, team: team}
}

// IdealBankrolls computes every player's target bankroll from the pooled
// team capital, splitting it between the counter and punter cohorts by the
// configured ratio, rounding shares to the chip denomination, and
// reconciling the rounding remainder so the targets sum to the pool
// exactly. Reports bankrupt=true when a cohort share would fall below the
// table minimum bet.
func (l *Ledger) IdealBankrolls() (bankrupt bool, err error) {
	rules := l.rules
	pool := l.team.TotalBankroll()
	if pool < 0 {
		return false, LedgerErrorf("team pool is negative: %v", pool)
	}

	var stake, checkTotal Cents
	if pool == 0 {
		stake = rules.InitialStake
		checkTotal = rules.InitialStake
		l.InitialAssignments++
	} else {
		checkTotal = pool
		stake = pool - l.team.TotalBetAmount()
	}

	numPlayers := len(l.team)
	numPunters := len(l.team.Punters())
	ratio := rules.PunterBankrollRatio

	var counterShare, punterShare Cents
	switch {
	case numPunters == 0:
		counterShare = RoundFloatToMultiple(float64(stake)/float64(numPlayers), rules.MinChip)
		punterShare = rules.BetMinMain
	case numPunters == numPlayers:
		punterShare = RoundFloatToMultiple(float64(stake)/float64(numPunters), rules.MinChip)
		counterShare = rules.BetMinMain
	default:
		denom := float64(numPlayers) + float64(numPunters)*(ratio-1)
		counterShare = RoundFloatToMultiple(float64(stake)/denom, rules.MinChip)
		punterShare = RoundFloatToMultiple(ratio*float64(stake)/denom, rules.MinChip)
	}

	if counterShare < rules.BetMinMain || punterShare < rules.BetMinMain {
		return true, nil
	}

	for _, p := range l.team {
		share := counterShare
		if p.Role == RolePunter {
			share = punterShare
		}
		p.IdealBankroll = share + p.TotalBetAmount
	}

	var afterRounding Cents
	for _, p := range l.team {
		afterRounding += p.IdealBankroll
	}
	discrepancy := checkTotal - afterRounding

	if discrepancy != 0 {
		if discrepancy > Cents(numPlayers)*rules.BetMinMain {
			return false, LedgerErrorf("rounding discrepancy %v exceeds %d x minimum bet", discrepancy, numPlayers)
		}
		if discrepancy < 0 {
			// Remove the overshoot from the players with the most slack
			// above their committed bets.
			sorted := append(Team(nil), l.team...)
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].IdealBankroll-sorted[i].TotalBetAmount >
					sorted[j].IdealBankroll-sorted[j].TotalBetAmount
			})
			var solved Cents
			for _, p := range sorted {
				amount := minCents(p.IdealBankroll-p.TotalBetAmount, -discrepancy-solved)
				p.IdealBankroll -= amount
				solved += amount
				if solved == -discrepancy {
					break
				}
			}
		} else {
			// A positive remainder goes entirely to the single player with
			// the least slack.
			least := l.team[0]
			for _, p := range l.team[1:] {
				if p.IdealBankroll-p.TotalBetAmount < least.IdealBankroll-least.TotalBetAmount {
					least = p
				}
			}
			least.IdealBankroll += discrepancy
		}
	}

	var final Cents
	for _, p := range l.team {
		final += p.IdealBankroll
	}
	if final != checkTotal {
		return false, LedgerErrorf("ideal bankrolls sum to %v, pool is %v", final, checkTotal)
	}
	for _, p := range l.team {
		if p.IdealBankroll < p.TotalBetAmount {
			return false, LedgerErrorf("%s: ideal bankroll %v cannot cover committed bets %v",
				p.Name, p.IdealBankroll, p.TotalBetAmount)
		}
	}
	return false, nil
}

// RebalanceAll recomputes ideal bankrolls for the whole team and assigns
// them in one step. It does not touch exchange budgets; HandleBankruptcy
// charges those when the rebalance is bankruptcy-driven.
func (l *Ledger) RebalanceAll() (bankrupt bool, err error) {
	bankrupt, err = l.IdealBankrolls()
	if bankrupt || err != nil {
		return bankrupt, err
	}
	for _, p := range l.team {
		p.Bankroll = p.IdealBankroll
	}
	return false, nil
}

// RebalanceOne transfers money from the player with the largest surplus
// over their ideal bankroll to the broke player, up to the broke player's
// shortfall. Reports bankrupt=true when no donor has a positive surplus or
// when there is no shortfall to fix.
func (l *Ledger) RebalanceOne(broke *Player) (donor *Player, bankrupt bool, err error) {
	bankrupt, err = l.IdealBankrolls()
	if bankrupt || err != nil {
		return nil, bankrupt, err
	}

	required := broke.IdealBankroll - broke.Bankroll
	if required <= 0 {
		return nil, true, nil
	}

	for _, p := range l.team {
		if p == broke {
			continue
		}
		surplus := p.Bankroll - p.IdealBankroll
		if surplus <= 0 {
			continue
		}
		if donor == nil || surplus > donor.Bankroll-donor.IdealBankroll {
			donor = p
		}
	}
	if donor == nil {
		return nil, true, nil
	}

	transfer := minCents(required, donor.Bankroll-donor.IdealBankroll)
	donor.Bankroll -= transfer
	broke.Bankroll += transfer

	if donor.Bankroll < donor.TotalBetAmount {
		return nil, false, LedgerErrorf("donor %s left with %v against committed bets %v",
			donor.Name, donor.Bankroll, donor.TotalBetAmount)
	}
	return donor, false, nil
}

// HandleBankruptcy checks whether the player can cover their committed
// bets, attempting redistribution while their exchange budget lasts. The
// returned reason distinguishes hard bankruptcy from merely running out of
// exchanges; ok=true means the player is covered.
func (l *Ledger) HandleBankruptcy(p *Player) (ok bool, reason FailureReason, err error) {
	if l.team.TotalBankroll() < l.team.TotalBetAmount() {
		return false, FailureBankruptcy, nil
	}
	if p.Bankroll >= p.TotalBetAmount {
		return true, FailureNone, nil
	}

	for p.ExchangesUsed < l.rules.ExchangesPerSession {
		if l.rules.AllInOneExchanges {
			bankrupt, err := l.RebalanceAll()
			if err != nil {
				return false, FailureNone, err
			}
			if bankrupt {
				return false, FailureBankruptcy, nil
			}
			for _, q := range l.team {
				q.ExchangesUsed++
			}
			if p.Bankroll >= p.TotalBetAmount {
				return true, FailureNone, nil
			}
		} else {
			donor, bankrupt, err := l.RebalanceOne(p)
			if err != nil {
				return false, FailureNone, err
			}
			if bankrupt {
				return false, FailureBankruptcy, nil
			}
			p.ExchangesUsed++
			donor.ExchangesUsed++
			if p.Bankroll >= p.TotalBetAmount {
				return true, FailureNone, nil
			}
		}
	}
	return false, FailureOutOfExchanges, nil
}
