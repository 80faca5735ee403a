// Package main provides the baccarat-sim CLI for running a full Monte
// Carlo simulation of the team strategy.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/ravhello/baccarat/config"
	"github.com/ravhello/baccarat/engine"
	"github.com/ravhello/baccarat/recorder"
	"github.com/ravhello/baccarat/simulation"
)

var (
	configPath string
	trips      int
	workers    int
	seed       int64
	dbPath     string
	quiet      bool
)

func init() {
	flag.StringVar(&configPath, "config", "baccarat.yaml", "Path to the YAML configuration file")
	flag.IntVar(&trips, "trips", 0, "Override the number of trips (0 = use config)")
	flag.IntVar(&workers, "workers", 0, "Override the number of workers (0 = use config)")
	flag.Int64Var(&seed, "seed", 0, "Override the random seed (0 = use config)")
	flag.StringVar(&dbPath, "db", "", "SQLite database for run/trip persistence (overrides config)")
	flag.BoolVar(&quiet, "quiet", false, "Suppress the progress bar")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[ERROR] load config: %v", err)
	}
	if trips > 0 {
		cfg.Run.Trips = trips
	}
	if workers > 0 {
		cfg.Run.Workers = workers
	}
	if seed != 0 {
		cfg.Run.Seed = seed
	}
	if dbPath != "" {
		cfg.Database.SQLitePath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sq, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("[ERROR] open recorder: %v", err)
		}
		rec = sq
	}
	defer rec.Close()

	snapshot, err := yaml.Marshal(cfg)
	if err != nil {
		log.Fatalf("[ERROR] marshal config: %v", err)
	}
	runID, err := rec.StartRun(string(snapshot))
	if err != nil {
		log.Fatalf("[ERROR] start run: %v", err)
	}

	pterm.DefaultSection.Printf("Simulating %d trips (%d sessions x %d hands)",
		cfg.Run.Trips, cfg.Run.Sessions, cfg.Run.HoursPerSession*cfg.Run.HandsPerHour)

	var bar *pterm.ProgressbarPrinter
	if !quiet {
		bar, _ = pterm.DefaultProgressbar.WithTotal(cfg.Run.Trips).WithTitle("trips").Start()
	}

	runner := simulation.New(cfg)
	runner.OnTripDone = func(index int, tr *simulation.TripResult) {
		if bar != nil {
			bar.Increment()
		}
		aborted := ""
		if tr.Err != nil {
			aborted = tr.Err.Error()
		}
		if err := rec.RecordTrip(&recorder.TripRecord{
			RunID:       runID,
			Index:       index,
			HandsPlayed: tr.HandsPlayed,
			EndBankroll: tr.EndTotal().Euros(),
			Bankrupted:  tr.Bankrupted,
			Aborted:     aborted,
		}); err != nil {
			log.Printf("[WARN] record trip %d: %v", index, err)
		}
	}

	start := time.Now()
	report, err := runner.Run()
	if bar != nil {
		bar.Stop()
	}
	if err != nil {
		log.Fatalf("[ERROR] simulation: %v", err)
	}

	printReport(report, time.Since(start))

	if err := rec.FinishRun(runID, &recorder.RunRecord{
		EarningIndex:        report.EarningIndex,
		Trips:               report.Trips,
		AbortedTrips:        report.AbortedTrips,
		HandsPlayed:         report.HandsPlayed,
		TotalBet:            report.TotalBet.Euros(),
		TotalWon:            report.TotalWon.Euros(),
		WinningTripsPct:     report.WinningTripsPct,
		BankruptcyRatio:     report.BankruptcyRatio,
		CompletedTripsRatio: report.CompletedTripsRatio,
		PunterFailures:      report.Summary.PunterFailures,
		CounterFailures:     report.Summary.CounterFailures,
	}); err != nil {
		log.Printf("[WARN] finish run: %v", err)
	}

	if report.AbortedTrips > 0 {
		for _, tripErr := range report.Errors {
			log.Printf("[WARN] aborted trip: %v", tripErr)
		}
		os.Exit(1)
	}
}

func printReport(r *simulation.Report, elapsed time.Duration) {
	pterm.DefaultSection.Println("Results")

	total := float64(r.BankerWins + r.PlayerWins + r.TieWins)
	if total > 0 {
		pterm.Info.Printf("Outcome distribution: Banker %.2f%%, Player %.2f%%, Tie %.2f%%\n",
			100*float64(r.BankerWins)/total, 100*float64(r.PlayerWins)/total, 100*float64(r.TieWins)/total)
	}
	pterm.Info.Printf("Hands played: %d of %d playable\n", r.HandsPlayed, r.HandsPlayable)
	pterm.Info.Printf("Money won over money bet: %.2f%%\n", 100*r.WinOverBetPct())
	pterm.Info.Printf("Winning trips: %.2f%%\n", 100*r.WinningTripsPct)
	pterm.Info.Printf("Average cards left per shoe at session end: %.1f\n", r.AvgRemainingCards)

	rows := pterm.TableData{{"Bet type", "Handle", "Hold"}}
	for bt := engine.BetType(0); bt < engine.NumBetTypes; bt++ {
		if r.BetByType[bt] == 0 {
			continue
		}
		rows = append(rows, []string{
			bt.String(),
			fmt.Sprintf("%.2f", r.BetByType[bt].Euros()),
			fmt.Sprintf("%.2f%%", 100*r.HoldByType(bt)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	playerRows := pterm.TableData{{"Player", "Avg bankroll", "Stdev"}}
	for _, ps := range r.Players {
		playerRows = append(playerRows, []string{
			ps.Name,
			fmt.Sprintf("%.2f", ps.AvgBankroll),
			fmt.Sprintf("%.2f", ps.StdBankroll),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(playerRows).Render()

	pterm.Info.Printf("Total average bankroll: %.2f\n", r.TotalAvgBankroll)
	pterm.Info.Printf("Total sessions: %d (completed %d)\n", r.Summary.TotalSessions, r.Summary.CompletedSessions)
	pterm.Info.Printf("Bankruptcy ratio: %.2f%%, completed trips: %.2f%%\n",
		100*r.BankruptcyRatio, 100*r.CompletedTripsRatio)
	pterm.Info.Printf("Punter failures: %d, counter failures: %d\n",
		r.Summary.PunterFailures, r.Summary.CounterFailures)
	pterm.Info.Printf("Elapsed: %s\n", elapsed.Round(time.Millisecond))

	pterm.DefaultBox.WithTitle("Earning index").Printf("%.6f", r.EarningIndex)
	pterm.Println()
}
