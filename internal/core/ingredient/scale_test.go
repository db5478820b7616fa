package ingredient

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		q      ParsedQuantity
		base   int
		target int
		want   string
	}{
		{
			name:   "doubling servings",
			q:      ParsedQuantity{Amount: ptr(2), Unit: "cups", Item: "flour"},
			base:   4,
			target: 8,
			want:   "4 cups flour",
		},
		{
			name:   "fractional result keeps one decimal",
			q:      ParsedQuantity{Amount: ptr(1), Unit: "tsp", Item: "salt"},
			base:   4,
			target: 6,
			want:   "1.5 tsp salt",
		},
		{
			name:   "unit omitted when absent",
			q:      ParsedQuantity{Amount: ptr(3), Item: "eggs"},
			base:   3,
			target: 2,
			want:   "2 eggs",
		},
		{
			name:   "repeating decimal rounds to one digit",
			q:      ParsedQuantity{Amount: ptr(1), Unit: "cup", Item: "milk"},
			base:   3,
			target: 1,
			want:   "0.3 cup milk",
		},
		{
			name:   "near-whole result keeps its decimal",
			q:      ParsedQuantity{Amount: ptr(0.98), Unit: "cup", Item: "rice"},
			base:   1,
			target: 2,
			want:   "2.0 cup rice",
		},
		{
			name:   "no amount returns the item unchanged",
			q:      ParsedQuantity{Item: "Salt to taste"},
			base:   2,
			target: 10,
			want:   "Salt to taste",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ScaleQuantity(tc.q, tc.base, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScaleQuantity_InvalidServings(t *testing.T) {
	t.Parallel()

	q := ParsedQuantity{Amount: ptr(2), Unit: "cups", Item: "flour"}
	for _, servings := range [][2]int{{0, 4}, {4, 0}, {-1, 2}, {2, -3}} {
		_, err := ScaleQuantity(q, servings[0], servings[1])
		assert.ErrorIs(t, err, ErrInvalidScaleFactor, "base=%d target=%d", servings[0], servings[1])
	}
}

func TestScale_InvalidFactor(t *testing.T) {
	t.Parallel()

	q := ParsedQuantity{Amount: ptr(2), Item: "eggs"}
	for _, factor := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Scale(q, factor)
		assert.ErrorIs(t, err, ErrInvalidScaleFactor, "factor=%v", factor)
	}
}

func TestScaleQuantity_Identity(t *testing.T) {
	t.Parallel()

	lines := []string{"2 cups flour", "0.5 lemon", "1/2 cup sugar", "Salt", "200g butter"}
	for _, line := range lines {
		q := ParseQuantity(line)
		for _, n := range []int{1, 2, 7} {
			got, err := ScaleQuantity(q, n, n)
			require.NoError(t, err)

			want := q.Item
			if q.Amount != nil {
				want = joinParts(FormatAmount(*q.Amount), q.Unit, q.Item)
			}
			assert.Equal(t, want, got, "line=%q n=%d", line, n)
		}
	}
}

func TestScaleQuantity_Monotonic(t *testing.T) {
	t.Parallel()

	q := ParsedQuantity{Amount: ptr(1.5), Unit: "cups", Item: "rice"}
	prev := -1.0
	for target := 1; target <= 12; target++ {
		got, err := ScaleQuantity(q, 4, target)
		require.NoError(t, err)

		scaled := ParseQuantity(got)
		require.NotNil(t, scaled.Amount, got)
		assert.GreaterOrEqual(t, *scaled.Amount, prev, "target=%d", target)
		prev = *scaled.Amount
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		4:         "4",
		2.5:       "2.5",
		1.0 / 3.0: "0.3",
		1.96:      "2.0",
		2.04:      "2.0",
		0.25:      "0.3",
		0.06:      "0.1",
		0.04:      "0.0",
		12.34:     "12.3",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(in), strconv.FormatFloat(in, 'g', -1, 64))
	}
}
