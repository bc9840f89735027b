package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// Bus mixes all sounding voices into one stream
// Not safe for concurrent use; callers hold the output lock
type Bus struct {
	active []beep.Streamer
	max    int
	tmp    [][2]float64

	// Stats
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewBus creates a bus holding at most maxVoices concurrent voices
func NewBus(maxVoices int) *Bus {
	if maxVoices < 1 {
		maxVoices = 1
	}
	return &Bus{
		active: make([]beep.Streamer, 0, 8),
		max:    maxVoices,
	}
}

// Add starts a voice; the oldest voice is dropped when the bus is full
func (b *Bus) Add(s beep.Streamer) {
	if s == nil {
		return
	}
	if len(b.active) >= b.max {
		copy(b.active, b.active[1:])
		b.active = b.active[:len(b.active)-1]
		b.dropped.Add(1)
	}
	b.active = append(b.active, s)
	b.played.Add(1)
}

// Len returns the number of sounding voices
func (b *Bus) Len() int {
	return len(b.active)
}

// Clear silences all voices
func (b *Bus) Clear() {
	for i := range b.active {
		b.active[i] = nil
	}
	b.active = b.active[:0]
}

// Stream mixes active voices into samples; the bus never drains
func (b *Bus) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	if len(b.active) == 0 {
		return len(samples), true
	}

	if cap(b.tmp) < len(samples) {
		b.tmp = make([][2]float64, len(samples))
	}
	tmp := b.tmp[:len(samples)]

	remaining := b.active[:0]
	for _, s := range b.active {
		sn, sok := s.Stream(tmp)
		for j := 0; j < sn; j++ {
			samples[j][0] += tmp[j][0]
			samples[j][1] += tmp[j][1]
		}
		if sok && sn == len(tmp) {
			remaining = append(remaining, s)
		}
	}
	for i := len(remaining); i < len(b.active); i++ {
		b.active[i] = nil
	}
	b.active = remaining

	return len(samples), true
}

// Err always returns nil
func (b *Bus) Err() error { return nil }

// GetStats returns played and dropped counts
func (b *Bus) GetStats() (played, dropped uint64) {
	return b.played.Load(), b.dropped.Load()
}
