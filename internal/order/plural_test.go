package order

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want PluralForm
	}{
		{0, PluralMany},
		{1, PluralOne},
		{2, PluralFew},
		{4, PluralFew},
		{5, PluralMany},
		{11, PluralMany},
		{12, PluralMany},
		{14, PluralMany},
		{21, PluralOne},
		{22, PluralFew},
		{25, PluralMany},
		{101, PluralOne},
		{111, PluralMany},
		{112, PluralMany},
		{1004, PluralFew},
		{-1, PluralOne},
		{-13, PluralMany},
		{-22, PluralFew},
		{math.MinInt, PluralMany},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Plural(tt.n), "n=%d", tt.n)
	}
}

func TestPluralMatchesRuleForRange(t *testing.T) {
	for n := -300; n <= 300; n++ {
		m := n % 100
		if m < 0 {
			m = -m
		}
		teen := m >= 11 && m <= 14
		d := m % 10

		want := PluralMany
		switch {
		case !teen && d == 1:
			want = PluralOne
		case !teen && d >= 2 && d <= 4:
			want = PluralFew
		}
		assert.Equal(t, want, Plural(n), "n=%d", n)
	}
}

func TestCoilLabel(t *testing.T) {
	assert.Equal(t, "бухта", CoilLabel(1))
	assert.Equal(t, "бухти", CoilLabel(3))
	assert.Equal(t, "бухт", CoilLabel(5))
	assert.Equal(t, "бухт", CoilLabel(11))
	assert.Equal(t, "бухта", CoilLabel(21))
}
