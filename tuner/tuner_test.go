package tuner

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/ravhello/baccarat/config"
)

func TestSampleStaysInSpace(t *testing.T) {
	space := DefaultSpace()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := space.Sample(rng)
		if p.Players < space.PlayersMin || p.Players > space.PlayersMax {
			t.Fatalf("players %d out of [%d, %d]", p.Players, space.PlayersMin, space.PlayersMax)
		}
		if p.Punters < space.PuntersMin || p.Punters > p.Players {
			t.Fatalf("punters %d out of [%d, players=%d]", p.Punters, space.PuntersMin, p.Players)
		}
		if p.PunterBankrollRatio < space.RatioMin || p.PunterBankrollRatio > space.RatioMax {
			t.Fatalf("ratio %v out of bounds", p.PunterBankrollRatio)
		}
		if p.KellyMultiplier < space.KellyMultMin || p.KellyMultiplier > space.KellyMultMax {
			t.Fatalf("kelly multiplier %v out of bounds", p.KellyMultiplier)
		}
	}
}

func TestApplyOverlaysOnClone(t *testing.T) {
	base := config.Default()
	p := Params{
		Players:             6,
		Punters:             3,
		AllInOneExchanges:   true,
		PunterBankrollRatio: 2.5,
		PunterBetMultiplier: 4,
		SideMultiplier:      2,
		KellyMultiplier:     7,
	}
	cfg := p.Apply(base)

	if cfg.Team.Players != 6 || cfg.Team.Punters != 3 || !cfg.Team.AllInOneExchanges {
		t.Errorf("team params not applied: %+v", cfg.Team)
	}
	if cfg.Betting.KellyMultiplier != 7 || cfg.Betting.PunterBetMultiplier != 4 {
		t.Errorf("betting params not applied: %+v", cfg.Betting)
	}
	if base.Team.Players != 4 {
		t.Errorf("Apply mutated the base config")
	}
}

func TestRunTracksBestWithStubObjective(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	tn := New(config.Default(), 6, path)
	tn.Seed = 1

	calls := 0
	tn.Objective = func(cfg *config.Config) (float64, error) {
		calls++
		return cfg.Betting.KellyMultiplier, nil
	}

	cp, err := tn.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(cp.Evaluations) != 6 || calls != 6 {
		t.Fatalf("evaluations=%d calls=%d, want 6 each", len(cp.Evaluations), calls)
	}
	if cp.Best == nil {
		t.Fatal("no best evaluation recorded")
	}
	for _, ev := range cp.Evaluations {
		if ev.EarningIndex > cp.Best.EarningIndex {
			t.Errorf("best %v beaten by evaluation %v", cp.Best.EarningIndex, ev.EarningIndex)
		}
		if math.Abs(ev.EarningIndex-ev.Params.KellyMultiplier) > 1e-12 {
			t.Errorf("objective value %v does not match its params %v", ev.EarningIndex, ev.Params.KellyMultiplier)
		}
	}
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	first := New(config.Default(), 4, path)
	first.Seed = 1
	first.Objective = func(cfg *config.Config) (float64, error) { return 1, nil }
	if _, err := first.Run(); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second := New(config.Default(), 7, path)
	second.Seed = 99 // ignored: the checkpoint's seed wins
	calls := 0
	second.Objective = func(cfg *config.Config) (float64, error) {
		calls++
		return 2, nil
	}
	cp, err := second.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(cp.Evaluations) != 7 {
		t.Errorf("evaluations = %d, want 7", len(cp.Evaluations))
	}
	if calls != 3 {
		t.Errorf("resumed run made %d objective calls, want 3", calls)
	}
	if cp.Seed != 1 {
		t.Errorf("checkpoint seed = %d, want the original 1", cp.Seed)
	}
	if cp.Best == nil || cp.Best.EarningIndex != 2 {
		t.Errorf("best not updated across the resume: %+v", cp.Best)
	}
}

func TestRunWithBudgetAlreadySpent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	tn := New(config.Default(), 3, path)
	tn.Objective = func(cfg *config.Config) (float64, error) { return 0, nil }
	if _, err := tn.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	again := New(config.Default(), 3, path)
	again.Objective = func(cfg *config.Config) (float64, error) {
		t.Error("objective called with the budget already spent")
		return 0, nil
	}
	cp, err := again.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(cp.Evaluations) != 3 {
		t.Errorf("evaluations = %d, want 3", len(cp.Evaluations))
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "checkpoint.json")
	cp := &Checkpoint{
		Evaluations: []Evaluation{{Params: Params{Players: 5, KellyMultiplier: 3}, EarningIndex: 0.25}},
		Seed:        17,
	}
	cp.Best = &cp.Evaluations[0]

	if err := cp.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if loaded.Version != CheckpointVersion {
		t.Errorf("version = %q, want %q", loaded.Version, CheckpointVersion)
	}
	if loaded.Seed != 17 || len(loaded.Evaluations) != 1 {
		t.Errorf("state lost in round trip: %+v", loaded)
	}
	if loaded.Best == nil || loaded.Best.EarningIndex != 0.25 {
		t.Errorf("best lost in round trip: %+v", loaded.Best)
	}
	if loaded.Evaluations[0].Params.Players != 5 {
		t.Errorf("params lost in round trip: %+v", loaded.Evaluations[0].Params)
	}
}

func TestLoadCheckpointMissingFile(t *testing.T) {
	cp, err := LoadCheckpoint(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil || cp != nil {
		t.Errorf("missing checkpoint: cp=%v err=%v, want nil/nil", cp, err)
	}
}
