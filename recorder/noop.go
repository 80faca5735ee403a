package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) StartRun(_ string) (int64, error)      { return 0, nil }
func (n *NoopRecorder) RecordTrip(_ *TripRecord) error        { return nil }
func (n *NoopRecorder) FinishRun(_ int64, _ *RunRecord) error { return nil }
func (n *NoopRecorder) Close() error                          { return nil }
