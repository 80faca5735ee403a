package engine

import "testing"

// expectedBankerDraw is an independent statement of the banker tableau,
// written out row by row: one entry per (banker two-card total, player
// third-card value).
var expectedBankerDraw = map[int][10]bool{
	0: {true, true, true, true, true, true, true, true, true, true},
	1: {true, true, true, true, true, true, true, true, true, true},
	2: {true, true, true, true, true, true, true, true, true, true},
	3: {true, true, true, true, true, true, true, true, false, true},
	4: {false, false, true, true, true, true, true, true, false, false},
	5: {false, false, false, false, true, true, true, true, false, false},
	6: {false, false, false, false, false, false, true, true, false, false},
	7: {false, false, false, false, false, false, false, false, false, false},
}

func TestBankerTableauAllCombinations(t *testing.T) {
	for score := 0; score <= 7; score++ {
		for third := 0; third <= 9; third++ {
			want := expectedBankerDraw[score][third]
			if got := bankerDraws(score, third); got != want {
				t.Errorf("bankerDraws(%d, %d) = %v, want %v", score, third, got, want)
			}
		}
	}
}

func TestDealHandNaturalStandsPat(t *testing.T) {
	// Player 9-T = 9 natural, banker 4-3 = 7: no third cards.
	shoe := NewStackedShoe(cards(t, "9", "T", "4", "3")...)
	res := DealHand(shoe)

	if len(res.PlayerHand) != 2 || len(res.BankerHand) != 2 {
		t.Fatalf("natural hand drew extra cards: player %v banker %v", res.PlayerHand, res.BankerHand)
	}
	if res.Outcome.Winner != BetPlayer {
		t.Errorf("Winner = %v, want Player", res.Outcome.Winner)
	}
	if res.PlayerScore != 9 || res.BankerScore != 7 {
		t.Errorf("scores %d-%d, want 9-7", res.PlayerScore, res.BankerScore)
	}
}

func TestDealHandPlayerAndBankerDraw(t *testing.T) {
	// Player 2-3 = 5 draws a 5 (total 0); banker 2-2 = 4 draws on a
	// third-card 5 and gets a K, staying on 4.
	shoe := NewStackedShoe(cards(t, "2", "3", "2", "2", "5", "K")...)
	res := DealHand(shoe)

	if len(res.PlayerHand) != 3 {
		t.Fatalf("player hand %v, want three cards", res.PlayerHand)
	}
	if len(res.BankerHand) != 3 {
		t.Fatalf("banker hand %v, want three cards (banker 4 draws on third-card 5)", res.BankerHand)
	}
	if res.PlayerScore != 0 || res.BankerScore != 4 {
		t.Errorf("scores %d-%d, want 0-4", res.PlayerScore, res.BankerScore)
	}
	if res.Outcome.Winner != BetBanker {
		t.Errorf("Winner = %v, want Banker", res.Outcome.Winner)
	}
}

func TestDealHandPlayerStandsBankerDraws(t *testing.T) {
	// Player 3-4 = 7 stands; banker A-2 = 3 draws.
	shoe := NewStackedShoe(cards(t, "3", "4", "A", "2", "6")...)
	res := DealHand(shoe)

	if len(res.PlayerHand) != 2 {
		t.Fatalf("player hand %v, want two cards", res.PlayerHand)
	}
	if len(res.BankerHand) != 3 {
		t.Fatalf("banker hand %v, want three cards", res.BankerHand)
	}
	if res.BankerScore != 9 {
		t.Errorf("banker score %d, want 9", res.BankerScore)
	}
}

func TestDealHandTieCarriesTotal(t *testing.T) {
	// Player 3-4 = 7, banker 5-2 = 7: Tie 7.
	shoe := NewStackedShoe(cards(t, "3", "4", "5", "2")...)
	res := DealHand(shoe)

	if res.Outcome.Winner != BetTie {
		t.Fatalf("Winner = %v, want Tie", res.Outcome.Winner)
	}
	if res.Outcome.TieTotal != 7 {
		t.Errorf("TieTotal = %d, want 7", res.Outcome.TieTotal)
	}
	if got := res.Outcome.String(); got != "Tie 7" {
		t.Errorf("Outcome.String() = %q, want %q", got, "Tie 7")
	}
	if len(res.Revealed()) != 4 {
		t.Errorf("Revealed() returned %d cards, want 4", len(res.Revealed()))
	}
}

func TestSettleBetsMainOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		choice  MainBet
		amount  Cents
		outcome Outcome
		want    Cents // bankroll delta after settlement
	}{
		{"player win pays double", BetPlayer, 1000, Outcome{Winner: BetPlayer}, 2000},
		{"player loss pays nothing", BetPlayer, 1000, Outcome{Winner: BetBanker}, 0},
		{"banker win pays 1.95x", BetBanker, 1000, Outcome{Winner: BetBanker}, 1950},
		{"banker win rounds half up", BetBanker, 1001, Outcome{Winner: BetBanker}, 1952},
		{"banker win rounds down", BetBanker, 1011, Outcome{Winner: BetBanker}, 1971},
		{"tie win pays 10x", BetTie, 1000, Outcome{Winner: BetTie, TieTotal: 4}, 10000},
		{"main pushes on tie", BetBanker, 1000, Outcome{Winner: BetTie, TieTotal: 4}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Counter_0", RoleCounter)
			p.MainBetChoice = tt.choice
			p.MainBetAmount = tt.amount
			team := Team{p}

			st := SettleBets(team, tt.outcome, 9)
			if p.Bankroll != tt.want {
				t.Errorf("bankroll = %v, want %v", p.Bankroll, tt.want)
			}
			if st.TotalWon != tt.want {
				t.Errorf("TotalWon = %v, want %v", st.TotalWon, tt.want)
			}
		})
	}
}

func TestSettleBetsSides(t *testing.T) {
	p := NewPlayer("punter_0", RolePunter)
	p.addSide(6)
	p.SideBets[6] = 500
	p.addSide(3)
	p.SideBets[3] = 500
	team := Team{p}

	// Tie 6 pays 45:1, so (45+1) x 500; the Tie 3 side bet is forfeited.
	st := SettleBets(team, Outcome{Winner: BetTie, TieTotal: 6}, 9)
	want := Cents(46 * 500)
	if p.Bankroll != want {
		t.Errorf("bankroll = %v, want %v", p.Bankroll, want)
	}
	if st.WonByBetType[SideBetType(6)] != want {
		t.Errorf("WonByBetType[Tie 6] = %v, want %v", st.WonByBetType[SideBetType(6)], want)
	}
	if st.WonByBetType[SideBetType(3)] != 0 {
		t.Errorf("WonByBetType[Tie 3] = %v, want 0", st.WonByBetType[SideBetType(3)])
	}

	// Sides pay nothing on a non-tie outcome.
	p2 := NewPlayer("punter_1", RolePunter)
	p2.addSide(6)
	p2.SideBets[6] = 500
	st2 := SettleBets(Team{p2}, Outcome{Winner: BetBanker}, 9)
	if p2.Bankroll != 0 || st2.TotalWon != 0 {
		t.Errorf("side bet paid on Banker outcome: bankroll %v, won %v", p2.Bankroll, st2.TotalWon)
	}
}
