package scan

// EventSink is the progress/lifecycle notification capability described in
// spec section 4.5: four operations, all defaulting to no-op, modeled as an
// object with callable slots rather than an interface the scanner must
// import a host concept to satisfy. Implementations must be safe to invoke
// from multiple worker goroutines simultaneously.
//
// Ordering: ScanStarted fires exactly once before any ScanProgress call.
// ScanProgress may fire zero or more times with monotonically
// non-decreasing processed values. Exactly one of ScanComplete or ScanError
// fires last.
type EventSink struct {
	ScanStarted  func(root string, fileCount *int)
	ScanProgress func(processed, total int)
	ScanComplete func(diff *ScanDiff)
	ScanError    func(err error)
}

// NoopEventSink is the constant default: every slot is a no-op, so the
// scanner never needs a nil check at a call site.
var NoopEventSink = EventSink{
	ScanStarted:  func(string, *int) {},
	ScanProgress: func(int, int) {},
	ScanComplete: func(*ScanDiff) {},
	ScanError:    func(error) {},
}

// resolvedSink fills any unset slot in sink with NoopEventSink's no-op, so
// partially-populated EventSink values (e.g. only ScanProgress set) are
// always safe to invoke in full.
func resolvedSink(sink EventSink) EventSink {
	if sink.ScanStarted == nil {
		sink.ScanStarted = NoopEventSink.ScanStarted
	}
	if sink.ScanProgress == nil {
		sink.ScanProgress = NoopEventSink.ScanProgress
	}
	if sink.ScanComplete == nil {
		sink.ScanComplete = NoopEventSink.ScanComplete
	}
	if sink.ScanError == nil {
		sink.ScanError = NoopEventSink.ScanError
	}
	return sink
}
