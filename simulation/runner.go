package simulation

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"runtime"
	"sync"

	"github.com/ravhello/baccarat/config"
	"github.com/ravhello/baccarat/engine"
)

// Runner drives the full Monte Carlo simulation: many independent trips
// executed by a fixed pool of workers, merged into one Report.
type Runner struct {
	cfg   *config.Config
	rules *engine.Rules

	// OnTripDone, when set, is called from the collector goroutine after
	// each trip finishes, with the trip index and its result. Calls are
	// sequential but not in trip order.
	OnTripDone func(index int, result *TripResult)
}

// New builds a runner from a validated configuration.
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, rules: cfg.Rules()}
}

type tripTask struct {
	index int
	seed  int64
}

type tripOutcome struct {
	index  int
	result *TripResult
}

// Run executes every trip and merges the results. Trips aborted by a
// ledger inconsistency are reported, not fatal; the remaining trips still
// contribute to the report.
func (r *Runner) Run() (*Report, error) {
	numTrips := r.cfg.Run.Trips
	workers := r.cfg.Run.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > numTrips {
		workers = numTrips
	}

	baseSeed := r.cfg.Run.Seed
	if baseSeed == 0 {
		baseSeed = randomSeed()
	}

	summary := &Summary{}
	tasks := make(chan tripTask, numTrips)
	outcomes := make(chan tripOutcome, numTrips)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go r.worker(tasks, outcomes, &wg, summary)
	}

	for i := 0; i < numTrips; i++ {
		// Distinct streams per trip; reproducible when a seed is configured.
		tasks <- tripTask{index: i, seed: baseSeed + int64(i)*0x9E3779B9}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make([]*TripResult, numTrips)
	for out := range outcomes {
		results[out.index] = out.result
		if r.OnTripDone != nil {
			r.OnTripDone(out.index, out.result)
		}
	}

	return buildReport(r.cfg, r.rules, results, summary.Snapshot()), nil
}

func (r *Runner) worker(tasks <-chan tripTask, outcomes chan<- tripOutcome, wg *sync.WaitGroup, summary *Summary) {
	defer wg.Done()
	for task := range tasks {
		rng := rand.New(rand.NewSource(task.seed))
		sim := newTripSim(r.rules,
			r.cfg.Team.Players, r.cfg.Team.Punters,
			r.cfg.Run.Sessions, r.cfg.Run.HoursPerSession*r.cfg.Run.HandsPerHour,
			summary, rng)
		outcomes <- tripOutcome{index: task.index, result: sim.run()}
	}
}

// randomSeed draws a non-deterministic seed for runs without a configured
// one.
func randomSeed() int64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
	if seed == 0 {
		seed = 1
	}
	return seed
}
