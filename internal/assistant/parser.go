package assistant

import (
	"errors"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// ErrEmptyInput is returned by ParseInput for blank lines.
var ErrEmptyInput = errors.New(config.ErrEmptyInput)

// ParseInput splits a line on whitespace into a lower-cased command name and
// its arguments. Arguments keep their case.
func ParseInput(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, ErrEmptyInput
	}
	return strings.ToLower(fields[0]), fields[1:], nil
}
