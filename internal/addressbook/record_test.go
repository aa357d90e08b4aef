package addressbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
)

func phoneValues(r *addressbook.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.Value())
	}
	return out
}

func TestRecord_AddPhone(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1234567890"))
	require.NoError(t, r.AddPhone("5555555555"))
	// Duplicates are not filtered.
	require.NoError(t, r.AddPhone("1234567890"))

	err := r.AddPhone("123")
	assert.True(t, addressbook.IsValidationError(err))

	assert.Equal(t, []string{"1234567890", "5555555555", "1234567890"}, phoneValues(r))
}

func TestRecord_AddBirthday_LastWriteWins(t *testing.T) {
	r := addressbook.NewRecord("John")
	_, ok := r.Birthday()
	assert.False(t, ok)

	require.NoError(t, r.AddBirthday("01.02.1990"))
	require.NoError(t, r.AddBirthday("03.04.1985"))

	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, "03.04.1985", b.Value())

	// A rejected birthday leaves the previous one in place.
	assert.Error(t, r.AddBirthday("31.02.1990"))
	b, _ = r.Birthday()
	assert.Equal(t, "03.04.1985", b.Value())
}

func TestRecord_FindPhone_ExactMatch(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone(" 1234567890 "))

	_, ok := r.FindPhone("1234567890")
	assert.False(t, ok, "lookup must not trim")

	p, ok := r.FindPhone(" 1234567890 ")
	require.True(t, ok)
	assert.Equal(t, " 1234567890 ", p.Value())
}

func TestRecord_EditPhone(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))
	require.NoError(t, r.AddPhone("2222222222"))
	require.NoError(t, r.AddPhone("3333333333"))

	res, err := r.EditPhone("2222222222", "4444444444")
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, "Contact updated!", res.String())
	assert.Equal(t, []string{"1111111111", "4444444444", "3333333333"}, phoneValues(r))
}

func TestRecord_EditPhone_NotDefined(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))

	// The new value is not even checked when the old one is missing.
	res, err := r.EditPhone("9999999999", "bad")
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, "9999999999 not defined!", res.String())
	assert.Equal(t, []string{"1111111111"}, phoneValues(r))
}

func TestRecord_EditPhone_InvalidNew(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))

	_, err := r.EditPhone("1111111111", "12ab")
	assert.True(t, addressbook.IsValidationError(err))
	assert.Equal(t, []string{"1111111111"}, phoneValues(r))
}

func TestRecord_EditPhone_SameValueIsIdempotent(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))
	require.NoError(t, r.AddPhone("2222222222"))
	before := r.String()

	res, err := r.EditPhone("1111111111", "1111111111")
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, before, r.String())
	assert.Equal(t, []string{"1111111111", "2222222222"}, phoneValues(r))
}

func TestRecord_RemovePhone(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))
	require.NoError(t, r.AddPhone("2222222222"))
	require.NoError(t, r.AddPhone("1111111111"))

	r.RemovePhone("1111111111")
	assert.Equal(t, []string{"2222222222", "1111111111"}, phoneValues(r))

	r.RemovePhone("0000000000")
	assert.Equal(t, []string{"2222222222", "1111111111"}, phoneValues(r))
}

func TestRecord_PhonesIsACopy(t *testing.T) {
	r := addressbook.NewRecord("John")
	require.NoError(t, r.AddPhone("1111111111"))

	phones := r.Phones()
	phones[0] = addressbook.Phone{}
	assert.Equal(t, []string{"1111111111"}, phoneValues(r))
}

func TestRecord_String(t *testing.T) {
	r := addressbook.NewRecord("John")
	assert.Equal(t, "Contact name: John, phones: ", r.String())

	require.NoError(t, r.AddPhone("1234567890"))
	require.NoError(t, r.AddPhone("5555555555"))
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555", r.String())

	require.NoError(t, r.AddBirthday("25.12.1990"))
	assert.Equal(t, "Contact name: John, phones: 1234567890; 5555555555 | Birthday: 25.12.1990", r.String())
}
