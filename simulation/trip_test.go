package simulation

import (
	"math/rand"
	"testing"

	"github.com/ravhello/baccarat/engine"
)

func TestSessionReshufflesAtCutoff(t *testing.T) {
	cfg := smallConfig()
	cfg.Team.Punters = 2      // two counters so a tracked count can be planted
	cfg.Table.CutoffStdev = 0 // stop card fixed at 52 cards
	rules := cfg.Rules()

	var summary Summary
	rng := rand.New(rand.NewSource(11))
	sim := newTripSim(rules, cfg.Team.Players, cfg.Team.Punters, 1, 1, &summary, rng)
	if _, err := sim.ledger.RebalanceAll(); err != nil {
		t.Fatalf("RebalanceAll: %v", err)
	}

	shoe := engine.NewShoe(rules.Decks, rng)
	for shoe.Remaining() > 52 {
		shoe.Draw()
	}
	counter := sim.team.Counters()[0]
	tracked := counter.AssignedSides[0]
	counter.RunningCount[tracked] = 1 << 20

	moneyLast := sim.team.TotalBankroll()
	tr := &TripResult{}
	reason, err := sim.runSession(shoe, &moneyLast, tr)
	if err != nil {
		t.Fatalf("runSession: %v", err)
	}
	if reason != engine.FailureNone {
		t.Fatalf("runSession reason = %v, want FailureNone", reason)
	}

	// A single hand deals at most six cards, so hitting the stop card must
	// have swapped in a nearly full shoe.
	if got := shoe.Remaining(); got < rules.Decks*52-6 {
		t.Errorf("Remaining = %d, want a fresh shoe after the reshuffle", got)
	}
	// The planted count can only survive if the reshuffle skipped the reset;
	// one hand of card deltas stays far below the sentinel.
	if got := counter.RunningCount[tracked]; got > 50 || got < -50 {
		t.Errorf("RunningCount[%v] = %d, want counts reset on reshuffle", tracked, got)
	}
}
