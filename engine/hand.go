package engine

// Outcome is the result of one baccarat hand.
type Outcome struct {
	Winner   MainBet // BetPlayer, BetBanker or BetTie
	TieTotal int     // shared total 0-9 when Winner == BetTie
}

func (o Outcome) String() string {
	switch o.Winner {
	case BetPlayer:
		return "Player"
	case BetBanker:
		return "Banker"
	default:
		return SideBetType(Side(o.TieTotal)).String()
	}
}

// HandResult carries the outcome of a dealt hand plus every card revealed,
// in deal order, for count updates.
type HandResult struct {
	Outcome     Outcome
	PlayerHand  []Card
	BankerHand  []Card
	PlayerScore int
	BankerScore int
}

// Revealed returns all cards shown this hand, player hand first.
func (h *HandResult) Revealed() []Card {
	revealed := make([]Card, 0, len(h.PlayerHand)+len(h.BankerHand))
	revealed = append(revealed, h.PlayerHand...)
	revealed = append(revealed, h.BankerHand...)
	return revealed
}

// DealHand deals one complete hand from the shoe tail: two cards each,
// the player third-card rule, then the standard banker tableau.
func DealHand(shoe *Shoe) HandResult {
	playerHand := []Card{shoe.Draw(), shoe.Draw()}
	bankerHand := []Card{shoe.Draw(), shoe.Draw()}

	playerScore := HandScore(playerHand)
	bankerScore := HandScore(bankerHand)

	switch {
	case playerScore >= 8 || bankerScore >= 8:
		// Natural stand, no further cards.
	case playerScore <= 5:
		third := shoe.Draw()
		playerHand = append(playerHand, third)
		if bankerDraws(bankerScore, third.BaccaratValue()) {
			bankerHand = append(bankerHand, shoe.Draw())
		}
	case bankerScore <= 5:
		bankerHand = append(bankerHand, shoe.Draw())
	}

	playerScore = HandScore(playerHand)
	bankerScore = HandScore(bankerHand)

	outcome := Outcome{}
	switch {
	case playerScore > bankerScore:
		outcome.Winner = BetPlayer
	case bankerScore > playerScore:
		outcome.Winner = BetBanker
	default:
		outcome.Winner = BetTie
		outcome.TieTotal = playerScore
	}

	return HandResult{
		Outcome:     outcome,
		PlayerHand:  playerHand,
		BankerHand:  bankerHand,
		PlayerScore: playerScore,
		BankerScore: bankerScore,
	}
}

// bankerDraws is the standard baccarat tableau, keyed by the banker's
// two-card total and the player's third-card value.
func bankerDraws(bankerScore, playerThird int) bool {
	switch bankerScore {
	case 0, 1, 2:
		return true
	case 3:
		return playerThird != 8
	case 4:
		return playerThird >= 2 && playerThird <= 7
	case 5:
		return playerThird >= 4 && playerThird <= 7
	case 6:
		return playerThird == 6 || playerThird == 7
	default:
		return false
	}
}

// Settlement aggregates what the hand paid back to the team.
type Settlement struct {
	TotalWon     Cents // net amount returned to bankrolls this hand
	WonByBetType [NumBetTypes]Cents
}

// SettleBets pays out every player's main and side bets according to the
// outcome. Stakes were deducted at bet time: a winning Player main bet pays
// back 2x the stake, Banker 1.95x (commission baked in), a winning Tie main
// bet (tiePay+1)x; Player/Banker mains push when the hand ties; a side bet
// pays (payout+1)x only on the exact tie total, otherwise the stake stays
// forfeited.
func SettleBets(team Team, outcome Outcome, tiePay int) Settlement {
	var st Settlement
	before := team.TotalBankroll()

	for _, p := range team {
		switch {
		case p.MainBetChoice == outcome.Winner && p.MainBetChoice != BetNone:
			var pay Cents
			switch outcome.Winner {
			case BetPlayer:
				pay = 2 * p.MainBetAmount
			case BetBanker:
				pay = (p.MainBetAmount*195 + 50) / 100 // nearest cent
			case BetTie:
				pay = Cents(tiePay+1) * p.MainBetAmount
			}
			p.Bankroll += pay
			p.WinPerBetType[MainBetType(p.MainBetChoice)] = pay

		case outcome.Winner == BetTie && p.MainBetChoice != BetNone:
			// Player/Banker mains push on a tie.
			p.Bankroll += p.MainBetAmount
			p.WinPerBetType[MainBetType(p.MainBetChoice)] = p.MainBetAmount
		}

		if outcome.Winner == BetTie {
			for _, side := range p.ChosenSides() {
				if int(side) != outcome.TieTotal {
					continue
				}
				pay := Cents(side.Spec().Payout+1) * p.SideBets[side]
				p.Bankroll += pay
				p.WinPerBetType[SideBetType(side)] = pay
			}
		}

		for bt := BetType(0); bt < NumBetTypes; bt++ {
			st.WonByBetType[bt] += p.WinPerBetType[bt]
		}
	}

	st.TotalWon = team.TotalBankroll() - before
	return st
}

// MainBetType maps a main-bet choice to its bet-type index.
func MainBetType(b MainBet) BetType {
	switch b {
	case BetPlayer:
		return BetTypePlayer
	case BetBanker:
		return BetTypeBanker
	default:
		return BetTypeTie
	}
}
