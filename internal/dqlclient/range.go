package dqlclient

import (
	"strconv"
	"time"

	"github.com/go-faster/errors"

	"github.com/go-faster/dalmatinerql/internal/durationql"
)

// Range is a query time range.
//
// Either Last or both Start and End must be set.
type Range struct {
	Start time.Time
	End   time.Time
	Last  time.Duration
}

// Last returns range ending now.
func Last(d time.Duration) Range {
	return Range{Last: d}
}

// Between returns range between given timestamps.
func Between(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// Validate validates range.
func (r Range) Validate() error {
	switch {
	case r.Last != 0:
		if r.Last < time.Second {
			return errors.Errorf("range must be at least 1s, got %s", r.Last)
		}
		if !r.Start.IsZero() || !r.End.IsZero() {
			return errors.New("last and start/end are mutually exclusive")
		}
		return nil
	case r.Start.IsZero() || r.End.IsZero():
		return errors.New("both start and end are required")
	case !r.End.After(r.Start):
		return errors.Errorf("end (%s) must be after start (%s)", r.End, r.Start)
	default:
		return nil
	}
}

// String returns range clause, e.g. `LAST 1h` or `BETWEEN 1700000000 AND 1700003600`.
func (r Range) String() string {
	if r.Last != 0 {
		return "LAST " + durationql.FormatDuration(r.Last)
	}
	return "BETWEEN " + strconv.FormatInt(r.Start.Unix(), 10) +
		" AND " + strconv.FormatInt(r.End.Unix(), 10)
}
