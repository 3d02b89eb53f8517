package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{name: "flat spans", input: `["1. Q", "a) x"]`, want: [][]string{{"1. Q", "a) x"}}},
		{name: "pages", input: `[["1. Q"], [], ["a) x"]]`, want: [][]string{{"1. Q"}, {}, {"a) x"}}},
		{name: "empty", input: `[]`, want: [][]string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodePages([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodePages_Malformed(t *testing.T) {
	inputs := []string{
		`"1. just a string"`,
		`{"pages": []}`,
		`["1. Q", 42]`,
		`[["1. Q"], "loose"]`,
		`[["1. Q", null]]`,
		`not json`,
		`null`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			pages, err := DecodePages([]byte(in))
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Nil(t, pages)
		})
	}
}
