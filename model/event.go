package model

// AccountingKind says which byte-accounting schema a trace file used.
type AccountingKind int

const (
	// AccountingDirected carries separate TX and RX counters (Bytes_TX/Bytes_RX).
	AccountingDirected AccountingKind = iota
	// AccountingUndirected carries a single Size_Bytes counter (legacy traces).
	AccountingUndirected
)

func (k AccountingKind) String() string {
	switch k {
	case AccountingDirected:
		return "directed"
	case AccountingUndirected:
		return "undirected"
	}
	return "unknown"
}

// ByteAccounting holds the byte counters of one event under either schema.
// The kind is resolved once per file from the CSV header, so consumers can
// switch on it without re-inspecting columns.
type ByteAccounting struct {
	Kind     AccountingKind
	Sent     uint64 // directed: Bytes_TX
	Received uint64 // directed: Bytes_RX
	Bytes    uint64 // undirected: Size_Bytes
}

// Total returns the event's byte count regardless of schema.
func (b ByteAccounting) Total() uint64 {
	if b.Kind == AccountingUndirected {
		return b.Bytes
	}
	return b.Sent + b.Received
}

// RawEvent is one parsed record from a per-PE trace file.
type RawEvent struct {
	Time        float64 // seconds, monotonic within a file
	Function    string
	Duration    float64 // seconds, >= 0
	TargetPE    int     // negative = not a communication event
	Bytes       ByteAccounting
	Stacktrace  string
	Extra       string // hostname on the first record of a file, else free-form
	Symboltrace string // pipe-delimited frames, may be empty
}

// IsComm reports whether the event describes communication with another PE.
func (r *RawEvent) IsComm() bool {
	return r.TargetPE >= 0
}

// Event is a RawEvent tagged with the PE whose file it came from.
type Event struct {
	SourcePE uint32
	Raw      RawEvent
}

// End returns the event's end time (start + duration).
func (e *Event) End() float64 {
	return e.Raw.Time + e.Raw.Duration
}
