// Package challengeview derives everything a challenge listing needs from a
// raw challenge record and the viewing user's identity: the lifecycle stage,
// the actions the viewer may take, whether the viewer won, and human-readable
// time projections. All functions are pure; the caller supplies the clock.
package challengeview

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instant is an epoch-millisecond point in time.
type Instant int64

// Time converts the instant to a time.Time in UTC.
func (i Instant) Time() time.Time {
	return time.UnixMilli(int64(i)).UTC()
}

// maxInstant is 9999-12-31T23:59:59.999Z. Anything outside [0, maxInstant]
// is treated as malformed rather than a real date.
const maxInstant Instant = 253402300799999

// DateLike matches Firestore-style server timestamps that expose their value
// through a ToDate accessor.
type DateLike interface {
	ToDate() time.Time
}

// SecondsTimestamp mirrors the {seconds, nanoseconds} server-timestamp shape.
type SecondsTimestamp struct {
	Seconds     int64
	Nanoseconds int64
}

// NormalizeTimestamp converts any of the timestamp shapes found in challenge
// records into an Instant. Accepted inputs: time.Time, Instant, numeric
// epoch-milliseconds, ISO-8601 strings, Mongo datetimes, and Firestore-style
// server timestamps (ToDate accessor, {Seconds, Nanoseconds} struct, or a
// decoded document with a "seconds"/"_seconds" field). Returns ok=false for
// nil, unparseable or out-of-range values. It never panics, and it is
// idempotent on its own output.
func NormalizeTimestamp(raw interface{}) (Instant, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case Instant:
		return checkRange(v)
	case time.Time:
		if v.IsZero() {
			return 0, false
		}
		return checkRange(Instant(v.UnixMilli()))
	case *time.Time:
		if v == nil {
			return 0, false
		}
		return NormalizeTimestamp(*v)
	case int64:
		return checkRange(Instant(v))
	case int:
		return checkRange(Instant(v))
	case int32:
		return checkRange(Instant(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return checkRange(Instant(v))
	case string:
		return parseISO(v)
	case primitive.DateTime:
		return checkRange(Instant(int64(v)))
	case DateLike:
		return NormalizeTimestamp(v.ToDate())
	case SecondsTimestamp:
		return checkRange(Instant(v.Seconds*1000 + v.Nanoseconds/1e6))
	case map[string]interface{}:
		return fromSecondsDoc(func(key string) (interface{}, bool) {
			val, ok := v[key]
			return val, ok
		})
	case primitive.M:
		return fromSecondsDoc(func(key string) (interface{}, bool) {
			val, ok := v[key]
			return val, ok
		})
	case primitive.D:
		return fromSecondsDoc(func(key string) (interface{}, bool) {
			for _, e := range v {
				if e.Key == key {
					return e.Value, true
				}
			}
			return nil, false
		})
	default:
		return 0, false
	}
}

func checkRange(i Instant) (Instant, bool) {
	if i < 0 || i > maxInstant {
		return 0, false
	}
	return i, true
}

func parseISO(s string) (Instant, bool) {
	if s == "" {
		return 0, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return checkRange(Instant(t.UnixMilli()))
		}
	}
	return 0, false
}

// fromSecondsDoc reads the "seconds"/"_seconds" (+ optional nanoseconds)
// fields of a decoded server-timestamp document.
func fromSecondsDoc(lookup func(string) (interface{}, bool)) (Instant, bool) {
	secRaw, ok := lookup("seconds")
	if !ok {
		secRaw, ok = lookup("_seconds")
	}
	if !ok {
		return 0, false
	}
	sec, ok := toInt64(secRaw)
	if !ok {
		return 0, false
	}
	var nanos int64
	if nRaw, ok := lookup("nanoseconds"); ok {
		nanos, _ = toInt64(nRaw)
	} else if nRaw, ok := lookup("_nanoseconds"); ok {
		nanos, _ = toInt64(nRaw)
	}
	return checkRange(Instant(sec*1000 + nanos/1e6))
}

func toInt64(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
