package addressbook

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// FieldKind tags the type of a Field.
type FieldKind int

const (
	KindName FieldKind = iota + 1
	KindPhone
	KindBirthday
)

func (k FieldKind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPhone:
		return "phone"
	case KindBirthday:
		return "birthday"
	default:
		return config.ErrUnknownFieldKind
	}
}

// Field is a validated scalar value held by a Record.
type Field interface {
	Kind() FieldKind
	Value() string
	String() string
}

// Name is a contact name. Any text is accepted.
type Name struct {
	value string
}

// NewName wraps text as a Name without validation.
func NewName(text string) Name {
	return Name{value: text}
}

func (Name) Kind() FieldKind { return KindName }
func (n Name) Value() string { return n.value }
func (n Name) String() string { return n.value }

// Phone is a ten-digit phone number. The original input, including any
// surrounding whitespace, is kept as the value.
type Phone struct {
	value string
}

// NewPhone validates text and returns it as a Phone.
func NewPhone(text string) (Phone, error) {
	if err := checkField(KindPhone, text, tagPhone, config.ErrPhoneFormat); err != nil {
		return Phone{}, err
	}
	return Phone{value: text}, nil
}

func (Phone) Kind() FieldKind { return KindPhone }
func (p Phone) Value() string { return p.value }
func (p Phone) String() string { return p.value }

// Birthday is a date of birth kept in its raw DD.MM.YYYY form.
type Birthday struct {
	value string
}

// NewBirthday validates text as a DD.MM.YYYY calendar date.
func NewBirthday(text string) (Birthday, error) {
	if err := checkField(KindBirthday, text, tagBirthday, config.ErrBirthdayFormat); err != nil {
		return Birthday{}, err
	}
	return Birthday{value: text}, nil
}

func (Birthday) Kind() FieldKind { return KindBirthday }
func (b Birthday) Value() string { return b.value }

// String renders the birthday the way it is shown next to a contact.
func (b Birthday) String() string {
	return fmt.Sprintf(config.FormatBirthdayField, b.value)
}

// Date re-parses the raw text. Only the zero Birthday fails here.
func (b Birthday) Date() (time.Time, error) {
	t, err := parseBirthday(b.value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return t, nil
}
