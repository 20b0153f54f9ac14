package dqlclient

import (
	"math"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestResultEncodeDecode(t *testing.T) {
	r := Result{
		Series: []Series{
			{Name: "cpu", Resolution: time.Second, Values: []float64{1, math.NaN(), 3}},
			{Name: "mem", Resolution: 10 * time.Second},
		},
		Took: time.Millisecond,
	}

	var e jx.Encoder
	r.Encode(&e)

	var got Result
	require.NoError(t, got.Decode(jx.DecodeBytes(e.Bytes())))
	if diff := cmp.Diff(r, got, cmpopts.EquateNaNs(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestResultDecodeInvalid(t *testing.T) {
	for _, input := range []string{
		`[]`,
		`{"s":{}}`,
		`{"s":[{"n":1}]}`,
		`{"s":[{"r":"1s"}]}`,
		`{"t":"now"}`,
	} {
		var r Result
		require.Error(t, r.Decode(jx.DecodeStr(input)), input)
	}
}
