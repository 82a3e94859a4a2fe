package contracts

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey renders a timestamp as a UTC calendar day "YYYY-MM-DD".
// Every window filter in the pipeline groups on these keys.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// ParseDateKey converts "YYYY-MM-DD" back to midnight UTC.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(dateKeyLayout, key)
}

// AddDays shifts a date key by delta calendar days. Invalid keys are
// returned unchanged; callers only ever pass keys produced by DateKey.
func AddDays(key string, delta int) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.AddDate(0, 0, delta).Format(dateKeyLayout)
}

// EvaluationTime is the deterministic timestamp attached to insights:
// noon UTC of the reference day, never wall-clock.
func EvaluationTime(refKey string) time.Time {
	t, err := ParseDateKey(refKey)
	if err != nil {
		return time.Time{}
	}
	return t.Add(12 * time.Hour)
}

// BriefTime is the deterministic timestamp used for alerts and the
// executive brief: 07:00 UTC of the reference day.
func BriefTime(refKey string) time.Time {
	t, err := ParseDateKey(refKey)
	if err != nil {
		return time.Time{}
	}
	return t.Add(7 * time.Hour)
}
