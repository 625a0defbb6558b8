package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$120k", 120000},
		{"$120K", 120000},
		{"$60/hr", 124800},
		{"$45 per hour", 93600},
		{"120,000", 120000},
		{"$95,000 - $120,000", 95000},
		{"95", 197600},  // bare small number reads as hourly
		{"150", 312000}, // same
		{"950", 950000}, // bare mid number reads as thousands
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSalaryNumber(tt.in)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.01)
		})
	}
}

func TestParseSalaryNumberUnparseable(t *testing.T) {
	for _, in := range []string{"", "Not listed", "Competitive", "DOE"} {
		assert.Nil(t, ParseSalaryNumber(in), "input %q", in)
	}
}
