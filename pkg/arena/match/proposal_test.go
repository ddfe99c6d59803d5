package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	cases := []struct {
		raw, token string
	}{
		{"e2e4", "e2e4"},
		{"  e2e4  ", "e2e4"},
		{"e2e4\nand now I will win", "e2e4"},
		{"I think e2e4 is good", "I"},
		{"", ""},
		{"   \n\t", ""},
		{"aaaaaaaaaaaaaaaaaaaaaa", "aaaaaaaaaa"},
	}

	for _, c := range cases {
		require.Equal(t, c.token, Token(c.raw), "raw %q", c.raw)
	}
}

func TestParseMove(t *testing.T) {
	t.Run("accepts plain moves", func(t *testing.T) {
		mov, ok := ParseMove("e2e4")
		require.True(t, ok)
		require.Equal(t, "e2e4", mov.String())
		require.Equal(t, "e2", mov.From)
		require.Equal(t, "e4", mov.To)
		require.Zero(t, mov.Promotion)
	})

	t.Run("accepts promotions", func(t *testing.T) {
		mov, ok := ParseMove("e7e8q")
		require.True(t, ok)
		require.Equal(t, byte('q'), mov.Promotion)
		require.Equal(t, "e7e8q", mov.String())
	})

	t.Run("is case insensitive", func(t *testing.T) {
		mov, ok := ParseMove("E2E4")
		require.True(t, ok)
		require.Equal(t, "e2e4", mov.String())

		mov, ok = ParseMove("e7e8Q")
		require.True(t, ok)
		require.Equal(t, "e7e8q", mov.String())
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, bad := range []string{
			"", "e2", "e2e", "e2e4e5", "z9z9", "e9e4", "i2e4",
			"e7e8k", "e7e8=", "0000", "O-O", "Nf3", "e2-e4",
		} {
			_, ok := ParseMove(bad)
			require.False(t, ok, "token %q should not parse", bad)
		}
	})
}
