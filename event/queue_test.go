package event

import (
	"testing"
)

// TestLogRecentOrder verifies newest-first ordering and overwrite
func TestLogRecentOrder(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Push(Record{Collision: Collision{ObjectID: uint64(i)}, Audible: i%2 == 0})
	}

	if l.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", l.Len())
	}
	recent := l.Recent()
	want := []uint64{5, 4, 3}
	for i, id := range want {
		if recent[i].Collision.ObjectID != id {
			t.Errorf("Index %d: expected object %d, got %d", i, id, recent[i].Collision.ObjectID)
		}
	}

	total, audible := l.Totals()
	if total != 5 || audible != 2 {
		t.Errorf("Expected totals 5/2, got %d/%d", total, audible)
	}
}

// TestLogPartial verifies ordering before the buffer wraps
func TestLogPartial(t *testing.T) {
	l := NewLog(8)
	l.Push(Record{Collision: Collision{ObjectID: 1}})
	l.Push(Record{Collision: Collision{ObjectID: 2}})

	recent := l.Recent()
	if len(recent) != 2 || recent[0].Collision.ObjectID != 2 || recent[1].Collision.ObjectID != 1 {
		t.Errorf("Unexpected order: %+v", recent)
	}
}

// TestLogClear verifies records are dropped but totals kept
func TestLogClear(t *testing.T) {
	l := NewLog(2)
	l.Push(Record{Audible: true})
	l.Clear()
	if l.Len() != 0 || len(l.Recent()) != 0 {
		t.Error("Expected empty log after Clear")
	}
	if total, _ := l.Totals(); total != 1 {
		t.Errorf("Expected total kept, got %d", total)
	}
}

// TestIntentTypes verifies every intent satisfies the interface
func TestIntentTypes(t *testing.T) {
	intents := []Intent{ConfigureEffects{}, EnsureRunning{}, TriggerVoice{}, UpdateTranspose{Offset: 3}}
	if len(intents) != 4 {
		t.Fatal("Expected four intent kinds")
	}
	if u, ok := intents[3].(UpdateTranspose); !ok || u.Offset != 3 {
		t.Error("Expected UpdateTranspose payload preserved")
	}
}
