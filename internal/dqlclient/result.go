package dqlclient

import (
	"math"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Result is a query result.
type Result struct {
	Series []Series
	// Took is query execution time reported by frontend.
	Took time.Duration
}

// Series is a single result series.
type Series struct {
	Name string
	// Resolution is a distance between points.
	Resolution time.Duration
	// Values are series points, missing points are NaN.
	Values []float64
}

// Decode decodes result from JSON.
//
// Result is an object like `{"s":[{"n":"name","r":1000,"v":[1,null]}],"t":512}`,
// where `r` is resolution in milliseconds and `t` is execution time in microseconds.
func (r *Result) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "s":
			return d.Arr(func(d *jx.Decoder) error {
				var s Series
				if err := s.Decode(d); err != nil {
					return errors.Wrapf(err, "series %d", len(r.Series))
				}
				r.Series = append(r.Series, s)
				return nil
			})
		case "t":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "took")
			}
			r.Took = time.Duration(v) * time.Microsecond
			return nil
		default:
			return d.Skip()
		}
	})
}

// Encode encodes result to JSON.
func (r Result) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("s")
	e.ArrStart()
	for _, s := range r.Series {
		s.Encode(e)
	}
	e.ArrEnd()
	e.FieldStart("t")
	e.Int64(r.Took.Microseconds())
	e.ObjEnd()
}

// Decode decodes series from JSON.
func (s *Series) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "n":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name")
			}
			s.Name = v
			return nil
		case "r":
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "resolution")
			}
			s.Resolution = time.Duration(v) * time.Millisecond
			return nil
		case "v":
			return d.Arr(func(d *jx.Decoder) error {
				if d.Next() == jx.Null {
					s.Values = append(s.Values, math.NaN())
					return d.Null()
				}
				v, err := d.Float64()
				if err != nil {
					return errors.Wrapf(err, "value %d", len(s.Values))
				}
				s.Values = append(s.Values, v)
				return nil
			})
		default:
			return d.Skip()
		}
	})
}

// Encode encodes series to JSON.
func (s Series) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("n")
	e.Str(s.Name)
	e.FieldStart("r")
	e.Int64(s.Resolution.Milliseconds())
	e.FieldStart("v")
	e.ArrStart()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			e.Null()
			continue
		}
		e.Float64(v)
	}
	e.ArrEnd()
	e.ObjEnd()
}
