package experience

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  Code
		ok    bool
	}{
		{name: "snake case alias", input: "no_experience", want: NoExperience, ok: true},
		{name: "uzbek range", input: "3-5 yil", want: ThreeToFive, ok: true},
		{name: "russian label", input: "  Без опыта ", want: NoExperience, ok: true},
		{name: "hh identifier", input: "between1And3", want: OneToThree, ok: true},
		{name: "hh senior identifier", input: "moreThan6", want: MoreThanFive, ok: true},
		{name: "canonical passes through", input: "4", want: ThreeToFive, ok: true},
		{name: "integer input", input: 2, want: UpToOneYear, ok: true},
		{name: "integral float input", input: 5.0, want: MoreThanFive, ok: true},
		{name: "en dash and spaces", input: "3 – 5 лет", want: ThreeToFive, ok: true},
		{name: "typographic apostrophe", input: "Tajriba yoʻq", want: NoExperience, ok: true},
		{name: "legacy zero", input: "0", want: NoExperience, ok: true},
		{name: "unknown", input: "ten years", ok: false},
		{name: "empty", input: "   ", ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "huge float", input: 1e300, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := NormalizeCode(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCodeEveryAliasMapsToItsBucket(t *testing.T) {
	t.Parallel()

	for _, b := range buckets {
		for _, alias := range b.aliases {
			got, ok := NormalizeCode(alias)
			require.True(t, ok, "alias %q", alias)
			assert.Equal(t, b.code, got, "alias %q", alias)
		}
	}
}

func TestNormalizeCodeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []any{"no_experience", "1 yilgacha", "от 1 до 3 лет", "3-5 yil", "5+", 3, "1", "5"}
	for _, input := range inputs {
		first, ok := NormalizeCode(input)
		require.True(t, ok, "input %v", input)

		second, ok := NormalizeCode(first)
		require.True(t, ok, "input %v", input)
		assert.Equal(t, first, second, "input %v", input)
	}
}

func TestExpandFilterValues(t *testing.T) {
	t.Parallel()

	t.Run("alias expands to its bucket", func(t *testing.T) {
		t.Parallel()

		values := ExpandFilterValues("3-5 yil")
		assert.Equal(t, "3-5 yil", values[0])
		assert.Contains(t, values, "4")
		assert.Contains(t, values, "3-5 лет")
		assert.NotContains(t, values, "1-3 yil")
	})

	t.Run("every alias contains itself and its code", func(t *testing.T) {
		t.Parallel()

		for _, b := range buckets {
			for _, alias := range b.aliases {
				values := ExpandFilterValues(alias)
				assert.Contains(t, values, alias)
				assert.Contains(t, values, string(b.code))
			}
		}
	})

	t.Run("original spelling is kept", func(t *testing.T) {
		t.Parallel()

		values := ExpandFilterValues("NoExperience")
		assert.Equal(t, "NoExperience", values[0])
		assert.Contains(t, values, "no_experience")
		assert.Contains(t, values, "1")
	})

	t.Run("no duplicates", func(t *testing.T) {
		t.Parallel()

		values := ExpandFilterValues("1")
		seen := map[string]bool{}
		for _, v := range values {
			assert.False(t, seen[v], "duplicate %q", v)
			seen[v] = true
		}
	})

	t.Run("unknown value comes back unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"senior"}, ExpandFilterValues("senior"))
	})

	t.Run("empty value", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ExpandFilterValues(""))
		assert.Empty(t, ExpandFilterValues(nil))
	})
}

func TestRank(t *testing.T) {
	t.Parallel()

	codes := Codes()
	require.Len(t, codes, 5)
	for i, code := range codes {
		assert.Equal(t, i+1, Rank(code))
	}
	assert.Equal(t, 0, Rank("9"))
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3", formatFloat(3))
	assert.Equal(t, "2.5", formatFloat(2.5))
	assert.Equal(t, "100000000000000000000", formatFloat(1e20))
	assert.Empty(t, formatFloat(math.NaN()))
}
