package naming

import (
	"time"
)

// TimezoneHints carries the caller-supplied zone candidates for a brew.
// Request is the explicit per-call hint, Stored the barista's saved
// preference. First recognized zone wins; both empty or invalid falls
// through to the service default.
type TimezoneHints struct {
	Request string
	Stored  string
}

// DayPhase is the local-time-of-day bucket that scopes sequence ordinals.
type DayPhase string

const (
	PhaseMorning   DayPhase = "morning"   // [05:00, 12:00)
	PhaseAfternoon DayPhase = "afternoon" // [12:00, 17:00)
	PhaseEvening   DayPhase = "evening"   // [17:00, 22:00)
	PhaseNight     DayPhase = "night"     // [22:00, 05:00), wraps midnight
)

// timeRange is a half-open [Start, End) range of UTC instants.
type timeRange struct {
	Start time.Time
	End   time.Time
}

// resolveLocation walks the hint chain and returns the first zone that
// loads. Resolution never fails: an unrecognized zone falls through, and
// the final fallback is UTC even if the configured default is itself bad.
func resolveLocation(hints TimezoneHints, defaultZone string) *time.Location {
	for _, name := range []string{hints.Request, hints.Stored, defaultZone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// phaseForHour maps a local hour to its day-phase bucket.
func phaseForHour(h int) DayPhase {
	switch {
	case h >= 5 && h < 12:
		return PhaseMorning
	case h >= 12 && h < 17:
		return PhaseAfternoon
	case h >= 17 && h < 22:
		return PhaseEvening
	default:
		return PhaseNight
	}
}

// bucketRanges computes the UTC instant range(s) of the day-phase bucket
// containing at, anchored on at's local calendar date in loc.
//
// The night bucket is not contiguous relative to a single local calendar
// day, so it returns two unioned sub-ranges: [00:00, 05:00) after midnight
// and [22:00, 24:00) before it. Forcing night into one contiguous range
// would silently corrupt its ordinals.
func bucketRanges(at time.Time, loc *time.Location) (DayPhase, []timeRange) {
	local := at.In(loc)
	y, m, d := local.Date()

	// time.Date normalizes hour 24 to midnight of the next day, which also
	// keeps DST transitions on the local calendar date correct.
	boundary := func(hour int) time.Time {
		return time.Date(y, m, d, hour, 0, 0, 0, loc).UTC()
	}

	phase := phaseForHour(local.Hour())
	switch phase {
	case PhaseMorning:
		return phase, []timeRange{{boundary(5), boundary(12)}}
	case PhaseAfternoon:
		return phase, []timeRange{{boundary(12), boundary(17)}}
	case PhaseEvening:
		return phase, []timeRange{{boundary(17), boundary(22)}}
	default:
		return phase, []timeRange{
			{boundary(0), boundary(5)},
			{boundary(22), boundary(24)},
		}
	}
}

// brewDateLayout renders the local calendar date embedded in brew names.
const brewDateLayout = "01/02/06"

// localDateLabel formats at's calendar date in loc for template insertion.
func localDateLabel(at time.Time, loc *time.Location) string {
	return at.In(loc).Format(brewDateLayout)
}
