package board

// Entry is one participant's registration for one Saturday. TS (epoch
// milliseconds, assigned at creation) doubles as the entry's identity for
// amend/remove; the Ledger keeps it unique within a date's list.
type Entry struct {
	Name string `json:"name"`
	Note string `json:"note"`
	TS   int64  `json:"ts"`
}

// Document is the whole persisted board: every date's signup list plus every
// date's plan note. It is always read and written as one unit.
type Document struct {
	Signups map[string][]Entry `json:"signups"`
	Plans   map[string]string  `json:"plans"`
}

// NewDocument returns an empty board. An absent store key yields this.
func NewDocument() *Document {
	return &Document{
		Signups: make(map[string][]Entry),
		Plans:   make(map[string]string),
	}
}

// Normalize makes a decoded document safe to mutate: JSON null maps become
// empty maps. Older persisted documents predate the plans field.
func (d *Document) Normalize() {
	if d.Signups == nil {
		d.Signups = make(map[string][]Entry)
	}
	if d.Plans == nil {
		d.Plans = make(map[string]string)
	}
}

// findEntry returns the index of the entry with the given timestamp in
// list, or -1. Timestamp uniqueness is maintained at creation but never
// assumed here.
func findEntry(list []Entry, ts int64) int {
	for i := range list {
		if list[i].TS == ts {
			return i
		}
	}
	return -1
}

// nextTimestamp picks the identity timestamp for a new entry under one
// date: wall-clock milliseconds, bumped past every existing timestamp so
// two registrations in the same millisecond stay distinguishable.
func nextTimestamp(list []Entry, nowMillis int64) int64 {
	ts := nowMillis
	for i := range list {
		if list[i].TS >= ts {
			ts = list[i].TS + 1
		}
	}
	return ts
}
