package addressbook

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record groups everything known about one contact.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record for name.
func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

// Name returns the contact name. It never changes after NewRecord.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday, if one was set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates text and appends it. Duplicates are allowed.
func (r *Record) AddPhone(text string) error {
	p, err := NewPhone(text)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// AddBirthday validates text and replaces any previous birthday.
func (r *Record) AddBirthday(text string) error {
	b, err := NewBirthday(text)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// FindPhone looks for a phone whose stored value equals text exactly.
func (r *Record) FindPhone(text string) (Phone, bool) {
	if i := r.indexOf(text); i >= 0 {
		return r.phones[i], true
	}
	return Phone{}, false
}

// EditResult describes the outcome of EditPhone.
type EditResult struct {
	Old     string
	Updated bool
}

func (e EditResult) String() string {
	if !e.Updated {
		return fmt.Sprintf(config.MsgPhoneNotDefined, e.Old)
	}
	return config.MsgPhoneUpdated
}

// EditPhone replaces the first phone equal to oldText with newText, keeping
// its position. A missing oldText is reported through the result, not as an
// error; an invalid newText returns a *ValidationError and changes nothing.
func (r *Record) EditPhone(oldText, newText string) (EditResult, error) {
	i := r.indexOf(oldText)
	if i < 0 {
		return EditResult{Old: oldText}, nil
	}
	p, err := NewPhone(newText)
	if err != nil {
		return EditResult{Old: oldText}, err
	}
	r.phones[i] = p
	return EditResult{Old: oldText, Updated: true}, nil
}

// RemovePhone drops the first phone equal to text, if any.
func (r *Record) RemovePhone(text string) {
	if i := r.indexOf(text); i >= 0 {
		r.phones = append(r.phones[:i], r.phones[i+1:]...)
	}
}

// PhoneList renders the phones joined by "; ".
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.Value()
	}
	return strings.Join(values, config.PhoneSeparator)
}

func (r *Record) String() string {
	s := fmt.Sprintf(config.FormatRecord, r.name.Value(), r.PhoneList())
	if r.birthday != nil {
		s += " " + r.birthday.String()
	}
	return s
}

func (r *Record) indexOf(text string) int {
	for i, p := range r.phones {
		if p.value == text {
			return i
		}
	}
	return -1
}
