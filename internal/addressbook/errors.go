package addressbook

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Sentinel errors used by callers to translate missing data into replies.
var (
	ErrContactNotFound = errors.New(config.ErrContactNotFound)
	ErrNoBirthday      = errors.New(config.ErrNoBirthday)
)

// ValidationError reports a field value that does not satisfy its format rule.
type ValidationError struct {
	Kind   FieldKind
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Reason)
}

// IsValidationError reports whether err (or any error it wraps) is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
