package dql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCondition(t *testing.T) {
	tests := []struct {
		cond Condition
		want string
	}{
		{Equals("dl", "source", "agent1"), `dl:'source' = 'agent1'`},
		{Equals("", "custom", "some-value"), `'custom' = 'some-value'`},
		{NotEquals("dl", "source", "agent1"), `dl:'source' != 'agent1'`},
		{NotEquals("", "custom", "some-value"), `'custom' != 'some-value'`},
		{Present("label", "production"), `label:'production'`},
		{Present("", "production"), `'production'`},
		{
			Equals("label", "production", "").And(Equals("label", "web", "")),
			`label:'production' = '' AND label:'web' = ''`,
		},
		{
			Equals("label", "production", "").Or(Equals("label", "web", "")),
			`label:'production' = '' OR label:'web' = ''`,
		},
		{
			NotEquals("label", "production", "").And(NotEquals("label", "web", "")),
			`label:'production' != '' AND label:'web' != ''`,
		},
		{
			NotEquals("label", "production", "").Or(NotEquals("label", "web", "")),
			`label:'production' != '' OR label:'web' != ''`,
		},
		{
			Present("label", "production").And(Equals("dl", "source", "a")).Or(Present("", "web")),
			`label:'production' AND dl:'source' = 'a' OR 'web'`,
		},
		// Quoting.
		{Equals("", "it's", `C:\`), `'it\'s' = 'C:\\'`},
		{Condition{}, ``},
	}
	for i, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("Test%d", i+1), func(t *testing.T) {
			require.Equal(t, tt.want, tt.cond.String())
		})
	}
}

func TestConditionImmutable(t *testing.T) {
	a := Equals("label", "production", "")
	b := Equals("label", "web", "")

	and := a.And(b)
	or := a.Or(b)
	_ = and.And(Present("", "x"))

	require.Equal(t, `label:'production' = ''`, a.String())
	require.Equal(t, `label:'web' = ''`, b.String())
	require.Equal(t, `label:'production' = '' AND label:'web' = ''`, and.String())
	require.Equal(t, `label:'production' = '' OR label:'web' = ''`, or.String())
}

func TestConditionEmptyOperand(t *testing.T) {
	c := Equals("x", "y", "z")
	for _, got := range []Condition{
		c.And(Condition{}),
		c.Or(Condition{}),
		Condition{}.And(c),
		Condition{}.Or(c),
	} {
		require.Equal(t, `x:'y' = 'z'`, got.String())
	}
	require.True(t, Condition{}.And(Condition{}).IsZero())

	got, err := New().
		From("org").
		Select("a").
		Where(c.And(Condition{})).
		UserString()
	require.NoError(t, err)
	require.Equal(t, `SELECT 'a' FROM 'org' WHERE x:'y' = 'z'`, got)
}

func TestConditionBucketSource(t *testing.T) {
	for _, tt := range []struct {
		cond   Condition
		source string
		ok     bool
	}{
		{Equals("dl", "source", "finger"), "finger", true},
		{Equals("", "source", "finger"), "", false},
		{NotEquals("dl", "source", "finger"), "", false},
		{Equals("dl", "host", "finger"), "", false},
		{Equals("dl", "source", "finger").And(Present("", "a")), "", false},
	} {
		source, ok := tt.cond.bucketSource()
		require.Equal(t, tt.ok, ok, tt.cond.String())
		require.Equal(t, tt.source, source)
	}
}
