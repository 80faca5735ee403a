// Package main provides the baccarat-tune CLI: a random search over the
// team-composition parameters, maximizing the earning index.
package main

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/pterm/pterm"

	"github.com/ravhello/baccarat/config"
	"github.com/ravhello/baccarat/tuner"
)

var (
	configPath     string
	calls          int
	checkpointPath string
	seed           int64
	tripsPerEval   int
)

func init() {
	flag.StringVar(&configPath, "config", "baccarat.yaml", "Path to the base YAML configuration file")
	flag.IntVar(&calls, "calls", 100, "Total number of objective evaluations")
	flag.StringVar(&checkpointPath, "checkpoint", "tune-checkpoint.json", "Checkpoint file (resumed when present)")
	flag.Int64Var(&seed, "seed", 1, "Random seed for the search")
	flag.IntVar(&tripsPerEval, "trips-per-eval", 1000, "Trips per objective evaluation (0 = config value)")
}

func main() {
	flag.Parse()

	base, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[ERROR] load config: %v", err)
	}
	if tripsPerEval > 0 {
		base.Run.Trips = tripsPerEval
	}

	t := tuner.New(base, calls, checkpointPath)
	t.Seed = seed
	t.OnStep = func(done int, last, best tuner.Evaluation) {
		pterm.Info.Printf("call %d/%d: earning index %.6f (best %.6f)\n",
			done, calls, last.EarningIndex, best.EarningIndex)
	}

	cp, err := t.Run()
	if err != nil {
		log.Fatalf("[ERROR] tuning: %v", err)
	}

	bestJSON, err := json.MarshalIndent(cp.Best, "", "  ")
	if err != nil {
		log.Fatalf("[ERROR] marshal best: %v", err)
	}
	pterm.DefaultBox.WithTitle("Best parameters").Println(string(bestJSON))
}
