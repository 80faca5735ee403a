package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	runID, err := r.StartRun("run:\n  trips: 2\n")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("run id = %d, want positive", runID)
	}

	trips := []*TripRecord{
		{RunID: runID, Index: 0, HandsPlayed: 350, EndBankroll: 41_250.75, Bankrupted: false},
		{RunID: runID, Index: 1, HandsPlayed: 12, Bankrupted: true, Aborted: ""},
	}
	for _, rec := range trips {
		if err := r.RecordTrip(rec); err != nil {
			t.Fatalf("RecordTrip(%d): %v", rec.Index, err)
		}
	}

	err = r.FinishRun(runID, &RunRecord{
		EarningIndex:        0.12,
		Trips:               2,
		HandsPlayed:         362,
		TotalBet:            52_000,
		TotalWon:            51_300,
		WinningTripsPct:     0.5,
		BankruptcyRatio:     0.5,
		CompletedTripsRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	var tripCount int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM trips WHERE run_id = ?`, runID).Scan(&tripCount); err != nil {
		t.Fatalf("count trips: %v", err)
	}
	if tripCount != 2 {
		t.Errorf("trip rows = %d, want 2", tripCount)
	}

	var earningIndex float64
	var finishedAt int64
	if err := r.db.QueryRow(`SELECT earning_index, finished_at FROM runs WHERE id = ?`, runID).
		Scan(&earningIndex, &finishedAt); err != nil {
		t.Fatalf("read run row: %v", err)
	}
	if earningIndex != 0.12 {
		t.Errorf("earning_index = %v, want 0.12", earningIndex)
	}
	if finishedAt == 0 {
		t.Errorf("finished_at not set")
	}
}

func TestSQLiteRecorderSecondRunGetsNewID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	first, err := r.StartRun("")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	second, err := r.StartRun("")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if second <= first {
		t.Errorf("run ids did not advance: %d then %d", first, second)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	runID, err := r.StartRun("")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := r.RecordTrip(&TripRecord{RunID: runID}); err != nil {
		t.Errorf("RecordTrip: %v", err)
	}
	if err := r.FinishRun(runID, &RunRecord{}); err != nil {
		t.Errorf("FinishRun: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
