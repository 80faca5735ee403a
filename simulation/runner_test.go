package simulation

import (
	"testing"

	"github.com/ravhello/baccarat/config"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Run.Trips = 4
	cfg.Run.Sessions = 2
	cfg.Run.HoursPerSession = 1
	cfg.Run.HandsPerHour = 40
	cfg.Run.Workers = 2
	cfg.Run.Seed = 7
	return cfg
}

func TestRunSmallSeeded(t *testing.T) {
	cfg := smallConfig()
	rep, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Trips != 4 {
		t.Errorf("Trips = %d, want 4", rep.Trips)
	}
	if rep.AbortedTrips != 0 || len(rep.Errors) != 0 {
		t.Fatalf("aborted trips: %d, errors: %v", rep.AbortedTrips, rep.Errors)
	}
	// Every trip seeds its bankrolls from the stake exactly once.
	if rep.InitialAssignments != 4 {
		t.Errorf("InitialAssignments = %d, want 4", rep.InitialAssignments)
	}
	if rep.HandsPlayed <= 0 || rep.HandsPlayed > rep.HandsPlayable {
		t.Errorf("HandsPlayed = %d, playable %d", rep.HandsPlayed, rep.HandsPlayable)
	}
	if got := rep.BankerWins + rep.PlayerWins + rep.TieWins; got != rep.HandsPlayed {
		t.Errorf("outcome tallies sum to %d, want %d", got, rep.HandsPlayed)
	}
	if rep.TotalBet <= 0 {
		t.Errorf("TotalBet = %v, want positive", rep.TotalBet)
	}
	if len(rep.Players) != cfg.Team.Players {
		t.Errorf("player stats for %d players, want %d", len(rep.Players), cfg.Team.Players)
	}
	if rep.Summary.TotalSessions < int64(rep.Trips) {
		t.Errorf("TotalSessions = %d, want at least one per trip", rep.Summary.TotalSessions)
	}
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	a, err := New(smallConfig()).Run()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := New(smallConfig()).Run()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if a.HandsPlayed != b.HandsPlayed || a.TotalBet != b.TotalBet || a.TotalWon != b.TotalWon {
		t.Errorf("seeded runs diverged: (%d, %v, %v) vs (%d, %v, %v)",
			a.HandsPlayed, a.TotalBet, a.TotalWon, b.HandsPlayed, b.TotalBet, b.TotalWon)
	}
	if a.BankerWins != b.BankerWins || a.PlayerWins != b.PlayerWins || a.TieWins != b.TieWins {
		t.Errorf("seeded runs diverged on outcomes")
	}
	if a.EarningIndex != b.EarningIndex {
		t.Errorf("EarningIndex diverged: %v vs %v", a.EarningIndex, b.EarningIndex)
	}
}

func TestRunTripCallback(t *testing.T) {
	cfg := smallConfig()
	r := New(cfg)
	seen := make(map[int]bool)
	r.OnTripDone = func(index int, result *TripResult) {
		if result == nil {
			t.Errorf("nil result for trip %d", index)
		}
		seen[index] = true
	}
	if _, err := r.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != cfg.Run.Trips {
		t.Errorf("callback fired for %d trips, want %d", len(seen), cfg.Run.Trips)
	}
}

// With a shoestring stake and a frozen exchange budget, the first counter
// who cannot cover a bet ends the session immediately.
func TestRunZeroExchangesFailsFast(t *testing.T) {
	cfg := config.Default()
	cfg.Team.Players = 4
	cfg.Team.Punters = 0
	cfg.Team.StakePerPlayer = 15
	cfg.Team.ExchangesPerSession = 0
	cfg.Betting.CounterPlayProb = 1
	cfg.Run.Trips = 1
	cfg.Run.Sessions = 1
	cfg.Run.HoursPerSession = 1
	cfg.Run.HandsPerHour = 100
	cfg.Run.Workers = 1
	cfg.Run.Seed = 3
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	rep, err := New(cfg).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.AbortedTrips != 0 {
		t.Fatalf("aborted trips: %v", rep.Errors)
	}
	if rep.Summary.CompletedSessions != 0 {
		t.Errorf("CompletedSessions = %d, want 0", rep.Summary.CompletedSessions)
	}
	if rep.Summary.CounterFailures == 0 && rep.Summary.Bankruptcies == 0 {
		t.Errorf("expected a counter failure or bankruptcy with no exchanges available")
	}
}
