package challengeview

import (
	"testing"
	"time"
)

func TestNormalizeTimestampShapes(t *testing.T) {
	want := Instant(1700000000000)

	// Epoch milliseconds as the numeric types JSON and Mongo produce
	if got, ok := NormalizeTimestamp(int64(1700000000000)); !ok || got != want {
		t.Errorf("int64: got %v ok=%v", got, ok)
	}
	if got, ok := NormalizeTimestamp(float64(1700000000000)); !ok || got != want {
		t.Errorf("float64: got %v ok=%v", got, ok)
	}

	// time.Time
	tm := time.UnixMilli(1700000000000).UTC()
	if got, ok := NormalizeTimestamp(tm); !ok || got != want {
		t.Errorf("time.Time: got %v ok=%v", got, ok)
	}

	// ISO-8601 string
	if got, ok := NormalizeTimestamp("2023-11-14T22:13:20Z"); !ok || got != want {
		t.Errorf("ISO string: got %v ok=%v", got, ok)
	}

	// Firestore-style seconds documents
	if got, ok := NormalizeTimestamp(map[string]interface{}{"seconds": int64(1700000000)}); !ok || got != want {
		t.Errorf("seconds doc: got %v ok=%v", got, ok)
	}
	if got, ok := NormalizeTimestamp(map[string]interface{}{"_seconds": float64(1700000000)}); !ok || got != want {
		t.Errorf("_seconds doc: got %v ok=%v", got, ok)
	}
	if got, ok := NormalizeTimestamp(SecondsTimestamp{Seconds: 1700000000}); !ok || got != want {
		t.Errorf("SecondsTimestamp: got %v ok=%v", got, ok)
	}
}

type fakeServerTimestamp struct{ t time.Time }

func (f fakeServerTimestamp) ToDate() time.Time { return f.t }

func TestNormalizeTimestampToDate(t *testing.T) {
	tm := time.UnixMilli(1700000000000)
	got, ok := NormalizeTimestamp(fakeServerTimestamp{t: tm})
	if !ok || got != Instant(1700000000000) {
		t.Errorf("ToDate accessor: got %v ok=%v", got, ok)
	}
}

func TestNormalizeTimestampInvalid(t *testing.T) {
	invalid := []interface{}{
		nil,
		"",
		"not a date",
		time.Time{},
		int64(-1),
		float64(1e20),
		map[string]interface{}{"foo": 1},
		struct{}{},
	}
	for _, raw := range invalid {
		if got, ok := NormalizeTimestamp(raw); ok {
			t.Errorf("expected invalid for %#v, got %v", raw, got)
		}
	}
}

func TestNormalizeTimestampIdempotent(t *testing.T) {
	first, ok := NormalizeTimestamp(int64(1700000000000))
	if !ok {
		t.Fatal("first normalization failed")
	}
	second, ok := NormalizeTimestamp(first)
	if !ok {
		t.Fatal("normalizing an Instant failed")
	}
	if first != second {
		t.Errorf("not idempotent: %v != %v", first, second)
	}
}
