package simulation

import (
	"math"

	"github.com/ravhello/baccarat/config"
	"github.com/ravhello/baccarat/engine"
)

// PlayerStat holds one player's ending-bankroll statistics across all
// trips.
type PlayerStat struct {
	Name        string
	AvgBankroll float64 // euros
	StdBankroll float64 // euros, sample standard deviation
}

// Report is the merged outcome of a full Monte Carlo run.
type Report struct {
	// EarningIndex is the normalized average-bankroll gain weighted by the
	// fraction of profitable trips. It is the scalar objective the tuner
	// maximizes.
	EarningIndex float64

	Trips         int
	AbortedTrips  int
	HandsPlayed   int
	HandsPlayable int

	BankerWins  int
	PlayerWins  int
	TieWins     int
	TieOutcomes [engine.NumSides]int

	TotalBet  engine.Cents
	TotalWon  engine.Cents
	BetByType [engine.NumBetTypes]engine.Cents
	WonByType [engine.NumBetTypes]engine.Cents

	SignalCounts [engine.NumSides]int

	Players           []PlayerStat
	TotalAvgBankroll  float64 // euros
	WinningTripsPct   float64
	AvgRemainingCards float64

	CompletedTripsRatio  float64
	BankruptcyRatio      float64
	PunterFailuresRatio  float64
	CounterFailuresRatio float64

	InitialAssignments int

	Summary SummarySnapshot

	// Errors holds the diagnostics of aborted trips, in trip order.
	Errors []error
}

// WinOverBetPct returns the overall return-to-player ratio of the run.
func (r *Report) WinOverBetPct() float64 {
	if r.TotalBet == 0 {
		return 0
	}
	return float64(r.TotalWon) / float64(r.TotalBet)
}

// HoldByType returns won/bet for one bet type, or 0 when nothing was bet
// on it.
func (r *Report) HoldByType(bt engine.BetType) float64 {
	if r.BetByType[bt] == 0 {
		return 0
	}
	return float64(r.WonByType[bt]) / float64(r.BetByType[bt])
}

// SignalFrequency returns how often one side was signaled per hand played.
func (r *Report) SignalFrequency(s engine.Side) float64 {
	if r.HandsPlayed == 0 {
		return 0
	}
	return float64(r.SignalCounts[s]) / float64(r.HandsPlayed)
}

func buildReport(cfg *config.Config, rules *engine.Rules, results []*TripResult, summary SummarySnapshot) *Report {
	rep := &Report{
		Trips:         len(results),
		HandsPlayable: cfg.Run.Trips * cfg.Run.Sessions * cfg.Run.HoursPerSession * cfg.Run.HandsPerHour,
		Summary:       summary,
	}

	numPlayers := cfg.Team.Players
	endBankrolls := make([][]engine.Cents, 0, len(results))
	var remainingCards, remainingSamples int
	var winningTrips int

	for _, tr := range results {
		if tr == nil {
			continue
		}
		if tr.Err != nil {
			rep.AbortedTrips++
			rep.Errors = append(rep.Errors, tr.Err)
		}

		rep.HandsPlayed += tr.HandsPlayed
		rep.BankerWins += tr.BankerWins
		rep.PlayerWins += tr.PlayerWins
		rep.TotalBet += tr.TotalBet
		rep.TotalWon += tr.TotalWon
		rep.InitialAssignments += tr.InitialAssignments
		for s := engine.Side(0); s < engine.NumSides; s++ {
			rep.TieOutcomes[s] += tr.TieOutcomes[s]
			rep.SignalCounts[s] += tr.SignalCounts[s]
		}
		for bt := engine.BetType(0); bt < engine.NumBetTypes; bt++ {
			rep.BetByType[bt] += tr.BetByType[bt]
			rep.WonByType[bt] += tr.WonByType[bt]
		}
		for _, n := range tr.RemainingCards {
			remainingCards += n
			remainingSamples++
		}
		if len(tr.EndBankrolls) == numPlayers {
			endBankrolls = append(endBankrolls, tr.EndBankrolls)
		}
		if tr.EndTotal() > rules.InitialStake {
			winningTrips++
		}
	}

	for s := engine.Side(0); s < engine.NumSides; s++ {
		rep.TieWins += rep.TieOutcomes[s]
	}
	if remainingSamples > 0 {
		rep.AvgRemainingCards = float64(remainingCards) / float64(remainingSamples)
	}

	rep.Players = playerStats(engine.NewTeam(numPlayers, cfg.Team.Punters), endBankrolls)
	for _, ps := range rep.Players {
		rep.TotalAvgBankroll += ps.AvgBankroll
	}

	if rep.Trips > 0 {
		rep.WinningTripsPct = float64(winningTrips) / float64(rep.Trips)
		rep.BankruptcyRatio = float64(summary.Bankruptcies) / float64(rep.Trips)
		rep.CompletedTripsRatio = 1 - rep.BankruptcyRatio
	}
	if failures := summary.PunterFailures + summary.CounterFailures; failures > 0 {
		rep.PunterFailuresRatio = float64(summary.PunterFailures) / float64(failures)
		rep.CounterFailuresRatio = float64(summary.CounterFailures) / float64(failures)
	}

	stake := rules.InitialStake.Euros()
	if stake > 0 {
		rep.EarningIndex = (rep.TotalAvgBankroll - stake) / stake * rep.WinningTripsPct
	}
	return rep
}

// playerStats computes each player's average and sample stdev of ending
// bankroll across trips. The fresh team provides the names in team order.
func playerStats(team engine.Team, endBankrolls [][]engine.Cents) []PlayerStat {
	stats := make([]PlayerStat, len(team))
	for i, p := range team {
		stats[i].Name = p.Name
		n := len(endBankrolls)
		if n == 0 {
			continue
		}
		var sum float64
		for _, bankrolls := range endBankrolls {
			sum += bankrolls[i].Euros()
		}
		mean := sum / float64(n)
		stats[i].AvgBankroll = mean

		if n > 1 {
			var ss float64
			for _, bankrolls := range endBankrolls {
				d := bankrolls[i].Euros() - mean
				ss += d * d
			}
			stats[i].StdBankroll = math.Sqrt(ss / float64(n-1))
		}
	}
	return stats
}
