package recorder

// TripRecord holds one trip's outcome row.
type TripRecord struct {
	RunID       int64
	Index       int
	HandsPlayed int
	EndBankroll float64 // pooled team bankroll at trip end, euros
	Bankrupted  bool
	Aborted     string // diagnostic text when the trip was aborted, else empty
}

// RunRecord holds the headline figures of one finished run.
type RunRecord struct {
	EarningIndex        float64
	Trips               int
	AbortedTrips        int
	HandsPlayed         int
	TotalBet            float64 // euros
	TotalWon            float64 // euros
	WinningTripsPct     float64
	BankruptcyRatio     float64
	CompletedTripsRatio float64
	PunterFailures      int64
	CounterFailures     int64
}

// Recorder persists simulation runs for later analysis.
type Recorder interface {
	// StartRun opens a run row with the config snapshot and returns its id.
	StartRun(configYAML string) (int64, error)
	RecordTrip(rec *TripRecord) error
	// FinishRun fills in the run row once every trip has been merged.
	FinishRun(runID int64, rec *RunRecord) error
	Close() error
}
