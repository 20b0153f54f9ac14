// Package durationql provides utilities to parse and format durations in DQL.
package durationql

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/prometheus/common/model"
)

// ParseDuration parses Prometheus-like (`1d`, `1h30m`) or Go duration.
func ParseDuration(s string) (time.Duration, error) {
	d, err := model.ParseDuration(s)
	if err == nil {
		return time.Duration(d), nil
	}
	err1 := err

	d2, err := time.ParseDuration(s)
	if err == nil {
		return d2, nil
	}
	return 0, err1
}

// FormatDuration formats duration using the largest units, e.g. `1h30m`.
//
// Sub-millisecond part is truncated.
func FormatDuration(d time.Duration) string {
	return model.Duration(d.Truncate(time.Millisecond)).String()
}

// ValidateShift checks that s is a positive duration.
func ValidateShift(s string) error {
	d, err := ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parse shift %q", s)
	}
	if d <= 0 {
		return errors.Errorf("shift must be positive, got %q", s)
	}
	return nil
}
