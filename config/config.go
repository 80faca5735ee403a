package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ravhello/baccarat/engine"
)

// Config holds every tunable of a simulation run. Money amounts are in
// euros; they are converted to integer cents when the table rules are
// built.
type Config struct {
	Table struct {
		Decks       int       `yaml:"decks"`
		CutoffMean  float64   `yaml:"cutoff_mean"`
		CutoffStdev float64   `yaml:"cutoff_stdev"`
		Chips       []float64 `yaml:"chips"`
		BetMinMain  float64   `yaml:"bet_min_main"`
		BetMaxMain  float64   `yaml:"bet_max_main"`
		BetMinSide  float64   `yaml:"bet_min_side"`
		BetMaxSide  float64   `yaml:"bet_max_side"`
		TiePay      int       `yaml:"tie_pay"`
	} `yaml:"table"`

	Team struct {
		Players             int     `yaml:"players"`
		Punters             int     `yaml:"punters"`
		StakePerPlayer      float64 `yaml:"stake_per_player"`
		MaxSideCounts       int     `yaml:"max_side_counts"`
		PunterBankrollRatio float64 `yaml:"punter_bankroll_ratio"`
		ExchangesPerSession int     `yaml:"exchanges_per_session"`
		AllInOneExchanges   bool    `yaml:"all_in_one_exchanges"`
		MaxLimitBet         float64 `yaml:"max_limit_bet"`
	} `yaml:"team"`

	Betting struct {
		AvgMainBet              float64    `yaml:"avg_main_bet"`
		BetStdevFrac            float64    `yaml:"bet_stdev_frac"`
		PunterBetMultiplier     float64    `yaml:"punter_bet_multiplier"`
		SideMultiplier          float64    `yaml:"side_multiplier"`
		CounterWeights          [3]float64 `yaml:"counter_weights"`
		PunterWeights           [3]float64 `yaml:"punter_weights"`
		CounterPlayProb         float64    `yaml:"counter_play_prob"`
		PunterNoAdvantageProb   float64    `yaml:"punter_no_advantage_prob"`
		PuntersPlayingSidesFrac float64    `yaml:"punters_playing_sides_frac"`
		SidesFracPuntersBetOn   float64    `yaml:"sides_frac_punters_bet_on"`
		ProportionalSides       bool       `yaml:"proportional_sides"`
		KellyMultiplier         float64    `yaml:"kelly_multiplier"`
	} `yaml:"betting"`

	Run struct {
		Trips           int   `yaml:"trips"`
		Sessions        int   `yaml:"sessions"`
		HoursPerSession int   `yaml:"hours_per_session"`
		HandsPerHour    int   `yaml:"hands_per_hour"`
		Workers         int   `yaml:"workers"`
		Seed            int64 `yaml:"seed"`
	} `yaml:"run"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Default returns a configuration with every option at its baseline value.
func Default() *Config {
	cfg := &Config{}

	cfg.Table.Decks = 8
	cfg.Table.CutoffMean = 52
	cfg.Table.CutoffStdev = 3
	cfg.Table.Chips = []float64{0.25, 0.5, 1, 2, 5, 10, 20, 50, 60, 70, 80, 90, 100}
	cfg.Table.BetMinMain = 10
	cfg.Table.BetMaxMain = 2000
	cfg.Table.BetMinSide = 1
	cfg.Table.BetMaxSide = 25
	cfg.Table.TiePay = 9

	cfg.Team.Players = 4
	cfg.Team.Punters = 4
	cfg.Team.StakePerPlayer = 10000
	cfg.Team.MaxSideCounts = 2
	cfg.Team.PunterBankrollRatio = 3
	cfg.Team.ExchangesPerSession = 20
	cfg.Team.AllInOneExchanges = false
	cfg.Team.MaxLimitBet = 100

	cfg.Betting.AvgMainBet = 10
	cfg.Betting.BetStdevFrac = 0.2
	cfg.Betting.PunterBetMultiplier = 1
	cfg.Betting.SideMultiplier = 1
	cfg.Betting.CounterWeights = [3]float64{0.50, 0.45, 0.05}
	cfg.Betting.PunterWeights = [3]float64{0.50, 0.45, 0.05}
	cfg.Betting.CounterPlayProb = 0.3
	cfg.Betting.PunterNoAdvantageProb = 0.4
	cfg.Betting.PuntersPlayingSidesFrac = 0
	cfg.Betting.SidesFracPuntersBetOn = 0
	cfg.Betting.ProportionalSides = true
	cfg.Betting.KellyMultiplier = 5

	cfg.Run.Trips = 10000
	cfg.Run.Sessions = 5
	cfg.Run.HoursPerSession = 7
	cfg.Run.HandsPerHour = 100
	cfg.Run.Workers = 0 // 0 means use all CPUs
	cfg.Run.Seed = 0    // 0 means a fresh random seed per run

	return cfg
}

// Clone returns a deep copy, so a caller can vary options without touching
// the original.
func (c *Config) Clone() *Config {
	dup := *c
	dup.Table.Chips = append([]float64(nil), c.Table.Chips...)
	return &dup
}

// Load reads a YAML config file over the defaults, then applies environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BACCARAT_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("BACCARAT_TRIPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Trips = n
		}
	}
	if v := os.Getenv("BACCARAT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Workers = n
		}
	}
	if v := os.Getenv("BACCARAT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Run.Seed = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects invalid parameter combinations.
func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{engine.ErrConfiguration}, args...)...)
	}

	if c.Table.Decks < 1 {
		return fail("decks must be at least 1, got %d", c.Table.Decks)
	}
	if len(c.Table.Chips) == 0 {
		return fail("at least one chip denomination is required")
	}
	for _, chip := range c.Table.Chips {
		if chip <= 0 {
			return fail("chip denominations must be positive, got %v", chip)
		}
	}
	if c.Table.BetMinMain <= 0 || c.Table.BetMinSide <= 0 {
		return fail("minimum bets must be positive")
	}
	if c.Table.BetMaxMain < c.Table.BetMinMain {
		return fail("bet_max_main %v below bet_min_main %v", c.Table.BetMaxMain, c.Table.BetMinMain)
	}
	if c.Table.BetMaxSide < c.Table.BetMinSide {
		return fail("bet_max_side %v below bet_min_side %v", c.Table.BetMaxSide, c.Table.BetMinSide)
	}
	if c.Table.TiePay < 1 {
		return fail("tie_pay must be at least 1, got %d", c.Table.TiePay)
	}

	if c.Team.Players < 1 {
		return fail("players must be at least 1, got %d", c.Team.Players)
	}
	if c.Team.Punters < 0 || c.Team.Punters > c.Team.Players {
		return fail("punters must be between 0 and players (%d), got %d", c.Team.Players, c.Team.Punters)
	}
	if c.Team.StakePerPlayer <= 0 {
		return fail("stake_per_player must be positive, got %v", c.Team.StakePerPlayer)
	}
	if c.Team.MaxSideCounts < 0 {
		return fail("max_side_counts cannot be negative, got %d", c.Team.MaxSideCounts)
	}
	if c.Team.PunterBankrollRatio <= 0 {
		return fail("punter_bankroll_ratio must be positive, got %v", c.Team.PunterBankrollRatio)
	}
	if c.Team.ExchangesPerSession < 0 {
		return fail("exchanges_per_session cannot be negative, got %d", c.Team.ExchangesPerSession)
	}

	for name, w := range map[string][3]float64{
		"counter_weights": c.Betting.CounterWeights,
		"punter_weights":  c.Betting.PunterWeights,
	} {
		sum := w[0] + w[1] + w[2]
		if w[0] < 0 || w[1] < 0 || w[2] < 0 || sum <= 0 {
			return fail("%s must be non-negative with a positive sum, got %v", name, w)
		}
	}
	for name, p := range map[string]float64{
		"counter_play_prob":          c.Betting.CounterPlayProb,
		"punter_no_advantage_prob":   c.Betting.PunterNoAdvantageProb,
		"punters_playing_sides_frac": c.Betting.PuntersPlayingSidesFrac,
		"sides_frac_punters_bet_on":  c.Betting.SidesFracPuntersBetOn,
	} {
		if p < 0 || p > 1 {
			return fail("%s must be in [0,1], got %v", name, p)
		}
	}
	if c.Betting.BetStdevFrac < 0 {
		return fail("bet_stdev_frac cannot be negative, got %v", c.Betting.BetStdevFrac)
	}
	if c.Betting.KellyMultiplier < 0 {
		return fail("kelly_multiplier cannot be negative, got %v", c.Betting.KellyMultiplier)
	}

	if c.Run.Trips < 1 {
		return fail("trips must be at least 1, got %d", c.Run.Trips)
	}
	if c.Run.Sessions < 1 {
		return fail("sessions must be at least 1, got %d", c.Run.Sessions)
	}
	if c.Run.HoursPerSession < 1 || c.Run.HandsPerHour < 1 {
		return fail("hours_per_session and hands_per_hour must be at least 1")
	}
	return nil
}

// MinChip returns the smallest chip denomination in cents.
func (c *Config) MinChip() engine.Cents {
	min := engine.FromEuros(c.Table.Chips[0])
	for _, chip := range c.Table.Chips[1:] {
		if v := engine.FromEuros(chip); v < min {
			min = v
		}
	}
	return min
}

// InitialStake returns the team's pooled starting capital in cents.
func (c *Config) InitialStake() engine.Cents {
	return engine.FromEuros(c.Team.StakePerPlayer) * engine.Cents(c.Team.Players)
}

// Rules builds the immutable table rules the engine runs under. Validate
// must have passed first.
func (c *Config) Rules() *engine.Rules {
	return &engine.Rules{
		Decks:             c.Table.Decks,
		InitialStake:      c.InitialStake(),
		MaxSidesPerPlayer: c.Team.MaxSideCounts,
		CutoffMean:        c.Table.CutoffMean,
		CutoffStdev:       c.Table.CutoffStdev,

		MinChip:    c.MinChip(),
		BetMinMain: engine.FromEuros(c.Table.BetMinMain),
		BetMaxMain: engine.FromEuros(c.Table.BetMaxMain),
		BetMinSide: engine.FromEuros(c.Table.BetMinSide),
		BetMaxSide: engine.FromEuros(c.Table.BetMaxSide),

		ExchangesPerSession: c.Team.ExchangesPerSession,
		AllInOneExchanges:   c.Team.AllInOneExchanges,
		PunterBankrollRatio: c.Team.PunterBankrollRatio,

		CounterBetWeights: c.Betting.CounterWeights,
		PunterBetWeights:  c.Betting.PunterWeights,

		AvgMainBet:          engine.FromEuros(c.Betting.AvgMainBet),
		MaxLimitBet:         engine.FromEuros(c.Team.MaxLimitBet),
		PunterBetMultiplier: c.Betting.PunterBetMultiplier,
		BetStdevFrac:        c.Betting.BetStdevFrac,

		SideMultiplier:          c.Betting.SideMultiplier,
		PuntersPlayingSidesFrac: c.Betting.PuntersPlayingSidesFrac,
		SidesFracPuntersBetOn:   c.Betting.SidesFracPuntersBetOn,
		CounterPlayProb:         c.Betting.CounterPlayProb,
		PunterNoAdvantageProb:   c.Betting.PunterNoAdvantageProb,

		TiePay:            c.Table.TiePay,
		ProportionalSides: c.Betting.ProportionalSides,
		KellyMultiplier:   c.Betting.KellyMultiplier,
	}
}
