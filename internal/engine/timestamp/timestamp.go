// Package timestamp normalizes candidate values into canonical textual
// instants. Each candidate yields either a value or an explicit skip reason,
// so heuristic misses stay observable instead of vanishing inside a broad
// error swallow.
package timestamp

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/crimson-sun/sift/internal/model"
)

// Sentinel is a literal value some producers emit for unparseable dates.
// Candidates carrying it are skipped, not rejected.
const Sentinel = "invalid-date"

// Epoch magnitude cutoffs: values above millisThreshold are read as
// milliseconds since the Unix epoch, values above secondsThreshold as
// seconds.
const (
	millisThreshold  = 1_000_000_000_000
	secondsThreshold = 1_000_000_000
)

const dateTimeLayout = "2006-01-02 15:04:05"

// SkipReason says why a candidate value produced no instant.
type SkipReason int

const (
	SkipNone SkipReason = iota // value produced an instant
	SkipFalsy
	SkipSentinel
	SkipUnparseable
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "ok"
	case SkipFalsy:
		return "falsy"
	case SkipSentinel:
		return "sentinel"
	case SkipUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Normalize converts one candidate value to a canonical instant, or reports
// why it was skipped. The ladder, in order: ISO-8601 text (contains 'T')
// passes through unchanged; 13-digit numbers are epoch milliseconds;
// 10-digit numbers are epoch seconds; "YYYY-MM-DD HH:MM:SS" text parses
// strictly. Epoch conversion is done in UTC so the trailing 'Z' is truthful.
func Normalize(v any) (string, SkipReason) {
	if !model.Truthy(v) {
		return "", SkipFalsy
	}

	switch t := v.(type) {
	case string:
		if t == Sentinel {
			return "", SkipSentinel
		}
		if strings.Contains(t, "T") {
			return t, SkipNone
		}
		if strings.Contains(t, " ") && strings.Contains(t, "-") {
			parsed, err := time.Parse(dateTimeLayout, t)
			if err != nil {
				return "", SkipUnparseable
			}
			return formatInstant(parsed), SkipNone
		}
		return "", SkipUnparseable
	case json.Number:
		return normalizeEpoch(t)
	default:
		return "", SkipUnparseable
	}
}

// normalizeEpoch interprets a numeric candidate by magnitude.
func normalizeEpoch(n json.Number) (string, SkipReason) {
	if i, err := n.Int64(); err == nil {
		switch {
		case i > millisThreshold:
			return formatInstant(time.UnixMilli(i).UTC()), SkipNone
		case i > secondsThreshold:
			return formatInstant(time.Unix(i, 0).UTC()), SkipNone
		}
		return "", SkipUnparseable
	}

	f, err := n.Float64()
	if err != nil {
		return "", SkipUnparseable
	}
	switch {
	case f > millisThreshold:
		return formatInstant(time.UnixMilli(int64(f)).UTC()), SkipNone
	case f > secondsThreshold:
		sec := int64(f)
		nsec := int64((f - float64(sec)) * float64(time.Second))
		return formatInstant(time.Unix(sec, nsec).UTC()), SkipNone
	}
	return "", SkipUnparseable
}

// formatInstant renders an ISO-8601 instant with a trailing Z, including
// fractional seconds only when present.
func formatInstant(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}
