package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordFetch(_ *FetchSnapshot) error             { return nil }
func (n *NoopRecorder) RecordError(_ *ErrorEvent) error                { return nil }
func (n *NoopRecorder) RecentSnapshots(_ int) ([]FetchSnapshot, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                   { return nil }
