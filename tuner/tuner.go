// Package tuner searches the team-composition parameter space for the
// configuration with the highest earning index, treating the simulation as
// a black-box objective.
package tuner

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ravhello/baccarat/config"
	"github.com/ravhello/baccarat/engine"
	"github.com/ravhello/baccarat/simulation"
)

// Params is one point in the search space: the options worth optimizing.
// Everything else stays at the base configuration's value.
type Params struct {
	Players             int     `json:"players"`
	Punters             int     `json:"punters"`
	AllInOneExchanges   bool    `json:"all_in_one_exchanges"`
	PunterBankrollRatio float64 `json:"punter_bankroll_ratio"`
	PunterBetMultiplier float64 `json:"punter_bet_multiplier"`
	SideMultiplier      float64 `json:"side_multiplier"`
	KellyMultiplier     float64 `json:"kelly_multiplier"`
}

// Apply overlays the sampled parameters on a copy of the base config.
func (p Params) Apply(base *config.Config) *config.Config {
	cfg := base.Clone()
	cfg.Team.Players = p.Players
	cfg.Team.Punters = p.Punters
	cfg.Team.AllInOneExchanges = p.AllInOneExchanges
	cfg.Team.PunterBankrollRatio = p.PunterBankrollRatio
	cfg.Betting.PunterBetMultiplier = p.PunterBetMultiplier
	cfg.Betting.SideMultiplier = p.SideMultiplier
	cfg.Betting.KellyMultiplier = p.KellyMultiplier
	return cfg
}

// Space bounds the searched dimensions.
type Space struct {
	PlayersMin, PlayersMax             int
	PuntersMin, PuntersMax             int
	RatioMin, RatioMax                 float64
	PunterBetMultMin, PunterBetMultMax float64
	SideMultMin, SideMultMax           float64
	KellyMultMin, KellyMultMax         float64
}

// DefaultSpace covers the ranges the team considers playable.
func DefaultSpace() Space {
	return Space{
		PlayersMin: 1, PlayersMax: 10,
		PuntersMin: 0, PuntersMax: 10,
		RatioMin: 0, RatioMax: 10,
		PunterBetMultMin: 1, PunterBetMultMax: 10,
		SideMultMin: 1, SideMultMax: 10,
		KellyMultMin: 0, KellyMultMax: 10,
	}
}

// Sample draws a uniform point from the space. Punters are clamped to the
// drawn player count, since more punters than players makes no sense.
func (s Space) Sample(rng *rand.Rand) Params {
	p := Params{
		Players:             s.PlayersMin + rng.Intn(s.PlayersMax-s.PlayersMin+1),
		Punters:             s.PuntersMin + rng.Intn(s.PuntersMax-s.PuntersMin+1),
		AllInOneExchanges:   rng.Intn(2) == 1,
		PunterBankrollRatio: uniform(rng, s.RatioMin, s.RatioMax),
		PunterBetMultiplier: uniform(rng, s.PunterBetMultMin, s.PunterBetMultMax),
		SideMultiplier:      uniform(rng, s.SideMultMin, s.SideMultMax),
		KellyMultiplier:     uniform(rng, s.KellyMultMin, s.KellyMultMax),
	}
	if p.Punters > p.Players {
		p.Punters = p.Players
	}
	return p
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Evaluation is one objective call: the sampled point and the earning
// index it produced.
type Evaluation struct {
	Params       Params  `json:"params"`
	EarningIndex float64 `json:"earning_index"`
}

// Tuner runs a random search over Space, checkpointing after every
// evaluation so an interrupted search can resume.
type Tuner struct {
	Base           *config.Config
	Space          Space
	Calls          int
	CheckpointPath string
	Seed           int64

	// OnStep, when set, is called after each evaluation with the number of
	// evaluations done so far and the best one yet.
	OnStep func(done int, last, best Evaluation)

	// Objective defaults to a full simulation run; tests swap it out.
	Objective func(cfg *config.Config) (float64, error)
}

// New builds a tuner over the default space.
func New(base *config.Config, calls int, checkpointPath string) *Tuner {
	return &Tuner{
		Base:           base,
		Space:          DefaultSpace(),
		Calls:          calls,
		CheckpointPath: checkpointPath,
	}
}

// Run evaluates sampled points until the call budget is spent, resuming
// from the checkpoint file when one exists. It returns the final
// checkpoint state, whose Best field holds the winning parameters.
func (t *Tuner) Run() (*Checkpoint, error) {
	objective := t.Objective
	if objective == nil {
		objective = func(cfg *config.Config) (float64, error) {
			rep, err := simulation.New(cfg).Run()
			if err != nil {
				return 0, err
			}
			return rep.EarningIndex, nil
		}
	}

	cp, err := LoadCheckpoint(t.CheckpointPath)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		seed := t.Seed
		if seed == 0 {
			seed = 1
		}
		cp = &Checkpoint{Seed: seed, Version: CheckpointVersion}
	}
	rng := rand.New(rand.NewSource(cp.Seed + int64(len(cp.Evaluations))))

	for len(cp.Evaluations) < t.Calls {
		params := t.Space.Sample(rng)
		cfg := params.Apply(t.Base)
		if err := cfg.Validate(); err != nil {
			if errors.Is(err, engine.ErrConfiguration) {
				continue // sampled an unplayable combination, draw again
			}
			return cp, err
		}

		index, err := objective(cfg)
		if err != nil {
			return cp, fmt.Errorf("objective call %d: %w", len(cp.Evaluations)+1, err)
		}

		ev := Evaluation{Params: params, EarningIndex: index}
		cp.Evaluations = append(cp.Evaluations, ev)
		if cp.Best == nil || ev.EarningIndex > cp.Best.EarningIndex {
			best := ev
			cp.Best = &best
		}

		if t.CheckpointPath != "" {
			if err := cp.Save(t.CheckpointPath); err != nil {
				return cp, err
			}
		}
		if t.OnStep != nil {
			t.OnStep(len(cp.Evaluations), ev, *cp.Best)
		}
	}
	return cp, nil
}
