package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"part with reason", "PART #x :bye now\r\n", []string{"PART", "#x", ":bye", "now"}},
		{"lowercase command", "join #go\n", []string{"JOIN", "#go"}},
		{"prefix dropped", ":nick!u@h PART #x", []string{"PART", "#x"}},
		{"extra spaces", "  KICK   #x  bob  ", []string{"KICK", "#x", "bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, raw := range []string{"", "\r\n", "   ", ":prefixonly"} {
		_, err := Tokenize(raw)
		assert.ErrorIs(t, err, ErrEmptyLine, "raw=%q", raw)
	}
}

func TestTrailingAndParam(t *testing.T) {
	tokens := []string{"USER", "guest", "0", "*", ":Real", "Name"}
	assert.Equal(t, "Real Name", Trailing(tokens[4:]))
	assert.Equal(t, "guest", Param(tokens, 1))
	assert.Equal(t, "", Param(tokens, 10))
	assert.Equal(t, "pw", Param([]string{"PASS", ":pw"}, 1))
}

func TestServerLine(t *testing.T) {
	assert.Equal(t, ":irc.local PONG irc.local :tok\r\n", Server("irc.local", "PONG", "irc.local", ":tok"))
	assert.Equal(t, "ERROR :bye\r\n", Server("", "ERROR", ":bye"))
}
