package model

// ProfileData is the merged, immutable event timeline of one trace directory.
// It is built once at startup and read-only afterwards; every view derives
// from it without copying.
type ProfileData struct {
	// Events sorted ascending by Raw.Time. Ties keep per-file insertion
	// order; cross-PE tie order is not a contract.
	Events []Event

	// PECount is max observed PE id + 1. PE numbering is assumed dense and
	// zero-based even if some ids never emitted events.
	PECount uint32

	// Hostnames maps PE id to the hostname carried by that file's first
	// record.
	Hostnames map[uint32]string

	MinTime float64 // time of the first event
	MaxTime float64 // max over events of time + duration
}

// Hostname returns the hostname recorded for a PE, or "" if unknown.
func (p *ProfileData) Hostname(pe uint32) string {
	return p.Hostnames[pe]
}

// Duration returns the total traced time span.
func (p *ProfileData) Duration() float64 {
	return p.MaxTime - p.MinTime
}
