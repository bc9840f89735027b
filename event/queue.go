package event

import (
	"github.com/lixenwraith/clatter/audio"
)

// Record is one handled collision kept for display
type Record struct {
	Collision Collision
	Intensity float64
	Audible   bool
	Voice     audio.VoiceKind
	Pitch     audio.Pitch
	Offset    int // Transpose offset after the collision
}

// Log is a fixed-size ring buffer of recent collisions
// Overflow: oldest records overwritten when full
// Not safe for concurrent use; the frame loop owns it
type Log struct {
	records []Record
	head    int // Next write index
	count   int
	total   uint64
	audible uint64
}

// NewLog creates a log holding size records
func NewLog(size int) *Log {
	if size < 1 {
		size = 1
	}
	return &Log{records: make([]Record, size)}
}

// Push appends a record, overwriting the oldest when full
func (l *Log) Push(r Record) {
	l.records[l.head] = r
	l.head = (l.head + 1) % len(l.records)
	if l.count < len(l.records) {
		l.count++
	}
	l.total++
	if r.Audible {
		l.audible++
	}
}

// Recent returns records newest first
func (l *Log) Recent() []Record {
	out := make([]Record, 0, l.count)
	for i := 1; i <= l.count; i++ {
		idx := (l.head - i + len(l.records)) % len(l.records)
		out = append(out, l.records[idx])
	}
	return out
}

// Len returns the number of stored records
func (l *Log) Len() int {
	return l.count
}

// Totals returns all-time handled and audible counts
func (l *Log) Totals() (total, audible uint64) {
	return l.total, l.audible
}

// Clear drops stored records; totals are kept
func (l *Log) Clear() {
	l.head = 0
	l.count = 0
}
