package differ

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ether/etherdelta/lib/delta"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharDiffer_ReplaceLastCharacter(t *testing.T) {
	ops := delta.Minimize(NewCharDiffer().Diff("abc", "abd"))

	expected := delta.Delta{delta.Equal(2), delta.Delete(1), delta.Insert("d")}
	if diff := cmp.Diff(expected, ops); diff != "" {
		t.Errorf("unexpected delta (-want +got):\n%s", diff)
	}

	result, err := delta.Apply(ops, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abd", result)
}

func TestCharDiffer_InsertWord(t *testing.T) {
	ops := delta.Minimize(NewCharDiffer().Diff("hello world", "hello there world"))

	expected := delta.Delta{delta.Equal(6), delta.Insert("there "), delta.Equal(5)}
	if diff := cmp.Diff(expected, ops); diff != "" {
		t.Errorf("unexpected delta (-want +got):\n%s", diff)
	}

	result, err := delta.Apply(ops, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello there world", result)
}

func TestCharDiffer_RawOutputCarriesValues(t *testing.T) {
	ops := NewCharDiffer().Diff("abc", "abd")

	require.NotEmpty(t, ops)
	for _, op := range ops {
		assert.NotNil(t, op.Value, "operation %s", op)
	}
	assert.False(t, ops.IsMinimized())
}

func TestCharDiffer_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
	}{
		{name: "identical", base: "same", target: "same"},
		{name: "both empty", base: "", target: ""},
		{name: "from empty", base: "", target: "fresh"},
		{name: "to empty", base: "stale", target: ""},
		{name: "completely different", base: "aaaa", target: "bbbbbb"},
		{name: "multi-byte runes", base: "naïve café", target: "naive caffè"},
		{name: "overlapping prefix and suffix", base: "aaa", target: "aaaa"},
		{name: "newlines", base: "line1\nline2\n", target: "line1\nline 2\nline3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := NewCharDiffer().Diff(tt.base, tt.target)

			result, err := delta.Apply(delta.Minimize(raw), tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.target, result)
			assert.Equal(t, len([]rune(tt.base)), raw.BaseLength())
		})
	}
}

func TestCharDiffer_RoundTripRandomPairs(t *testing.T) {
	faker := gofakeit.New(7)
	d := NewCharDiffer()

	for i := 0; i < 200; i++ {
		base := faker.Sentence(faker.IntRange(1, 30))
		target := mutate(faker, base)

		raw := d.Diff(base, target)
		minimized := delta.Minimize(raw)

		fromMinimized, err := delta.Apply(minimized, base)
		require.NoError(t, err, "base=%q target=%q", base, target)
		require.Equal(t, target, fromMinimized)

		fromRaw, err := delta.Apply(raw, base)
		require.NoError(t, err)
		require.Equal(t, fromRaw, fromMinimized)

		if diff := cmp.Diff(minimized, delta.Minimize(minimized)); diff != "" {
			t.Fatalf("minimize not idempotent:\n%s", diff)
		}
	}
}

func TestFunc_AdaptsPlainFunction(t *testing.T) {
	var d Differ = Func(func(base, target string) delta.Delta {
		return delta.Delta{delta.DeleteText(base), delta.Insert(target)}
	})

	result, err := delta.Apply(delta.Minimize(d.Diff("old", "new")), "old")
	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

// mutate applies a handful of random edits so that base and target share
// content, which is the case the delta path exists for.
func mutate(faker *gofakeit.Faker, base string) string {
	runes := []rune(base)
	edits := faker.IntRange(0, 4)
	for e := 0; e < edits; e++ {
		pos := 0
		if len(runes) > 0 {
			pos = faker.IntRange(0, len(runes))
		}
		switch faker.IntRange(0, 2) {
		case 0:
			insert := []rune(faker.Word() + strings.Repeat("ö", faker.IntRange(0, 2)))
			runes = append(runes[:pos], append(insert, runes[pos:]...)...)
		case 1:
			end := pos + faker.IntRange(0, 5)
			if end > len(runes) {
				end = len(runes)
			}
			runes = append(runes[:pos], runes[end:]...)
		default:
			if pos < len(runes) {
				runes[pos] = []rune(faker.Letter())[0]
			}
		}
	}
	return string(runes)
}
