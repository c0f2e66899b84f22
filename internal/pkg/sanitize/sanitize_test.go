package sanitize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateNullSafety(t *testing.T) {
	// null-like sentinels and garbage must yield nil, never an error
	for _, raw := range []string{"", "   ", "NaT", "nat", "NaN", "null", "None", "-", "not a date"} {
		assert.Nil(t, Date(raw), "value %q", raw)
	}
	assert.Nil(t, Date(nil))
}

func TestDateLayouts(t *testing.T) {
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-01-05", "2024/01/05", "05.01.2024", "5.1.2024", "2024-01-05 14:30:00"} {
		got := Date(raw)
		require.NotNil(t, got, "value %q", raw)
		assert.True(t, got.Equal(want), "value %q parsed as %v", raw, got)
	}
}

func TestDatePassThrough(t *testing.T) {
	// an already-typed date passes through truncated to midnight UTC
	in := time.Date(2024, 3, 9, 17, 45, 12, 0, time.FixedZone("CET", 3600))
	got := Date(in)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), *got)

	ptr := Date(&in)
	require.NotNil(t, ptr)
	assert.Equal(t, *got, *ptr)

	var nilTime *time.Time
	assert.Nil(t, Date(nilTime))
}

func TestNumber(t *testing.T) {
	cases := map[string]float64{
		"1500":     1500,
		"1500.50":  1500.50,
		"1 500,50": 1500.50,
		"2 300 €":  2300,
		"1,250.75": 1250.75,
	}
	for raw, want := range cases {
		got := Number(raw)
		require.NotNil(t, got, "value %q", raw)
		assert.InDelta(t, want, *got, 0.001, "value %q", raw)
	}

	for _, raw := range []string{"", "NaN", "n/a", "abc", "-"} {
		assert.Nil(t, Number(raw), "value %q", raw)
	}

	got := Number(42)
	require.NotNil(t, got)
	assert.Equal(t, 42.0, *got)
}

func TestText(t *testing.T) {
	assert.Equal(t, "Ján Novák", Text("  Ján Novák "))
	assert.Equal(t, "", Text("NaT"))
	assert.Equal(t, "", Text("  "))
}
