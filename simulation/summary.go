package simulation

import "sync/atomic"

// Summary is the process-wide tally mutated by every trip worker. All
// fields are atomic because trips run concurrently.
type Summary struct {
	TotalSessions     atomic.Int64
	CompletedSessions atomic.Int64
	PunterFailures    atomic.Int64
	CounterFailures   atomic.Int64
	Bankruptcies      atomic.Int64
}

// SummarySnapshot is a plain-value copy of a Summary, taken once all trips
// have finished.
type SummarySnapshot struct {
	TotalSessions     int64
	CompletedSessions int64
	PunterFailures    int64
	CounterFailures   int64
	Bankruptcies      int64
}

// Snapshot copies the current counter values.
func (s *Summary) Snapshot() SummarySnapshot {
	return SummarySnapshot{
		TotalSessions:     s.TotalSessions.Load(),
		CompletedSessions: s.CompletedSessions.Load(),
		PunterFailures:    s.PunterFailures.Load(),
		CounterFailures:   s.CounterFailures.Load(),
		Bankruptcies:      s.Bankruptcies.Load(),
	}
}
