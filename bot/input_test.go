package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"hi!how are you?", []string{"hi", "how", "are", "you"}},
		{"  wait...  what ,  ", []string{"wait", "what"}},
		{"howareyou", []string{"howareyou"}},
		{"", nil},
		{"tab\tand\nnewline", []string{"tab", "and", "newline"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewInputLowercases(t *testing.T) {
	in := NewInput("HeLLo, There!")
	require.Equal(t, "HeLLo, There!", in.Raw)
	require.Equal(t, "hello, there!", in.Lower)
	require.Equal(t, []string{"hello", "there"}, in.Tokens)
	require.True(t, in.Has("there"))
	require.False(t, in.Has("There"))
}
