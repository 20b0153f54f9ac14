package dqlclient

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	var (
		start = time.Unix(1700000000, 0)
		end   = time.Unix(1700003600, 0)
	)
	tests := []struct {
		r       Range
		want    string
		wantErr bool
	}{
		{Last(time.Hour), "LAST 1h", false},
		{Last(90 * time.Second), "LAST 1m30s", false},
		{Between(start, end), "BETWEEN 1700000000 AND 1700003600", false},
		{Last(time.Millisecond), "", true},
		{Range{Last: time.Hour, Start: start}, "", true},
		{Between(end, start), "", true},
		{Between(start, time.Time{}), "", true},
		{Range{}, "", true},
	}
	for i, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, tt.r.String())
		})
	}
}
