package assistant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-addressbook/internal/assistant"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		line string
		cmd  string
		args []string
	}{
		{"hello", "hello", []string{}},
		{"  ADD  John   1234567890 ", "add", []string{"John", "1234567890"}},
		{"change\tJohn 1 2", "change", []string{"John", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, args, err := assistant.ParseInput(tt.line)
			assert.NoError(t, err)
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParseInput_Empty(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		_, _, err := assistant.ParseInput(line)
		assert.ErrorIs(t, err, assistant.ErrEmptyInput)
	}
}
