package addressbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
)

func TestNewPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"ten digits", "0123456789", true},
		{"surrounding whitespace", "  0123456789\t", true},
		{"nine digits", "012345678", false},
		{"eleven digits", "01234567890", false},
		{"letters", "01234abcde", false},
		{"dashes", "012-345-6789", false},
		{"inner space", "01234 56789", false},
		{"signed", "+123456789", false},
		{"empty", "", false},
		{"unicode digits", "٠١٢٣٤٥٦٧٨٩", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := addressbook.NewPhone(tt.input)
			if !tt.valid {
				require.Error(t, err)
				assert.True(t, addressbook.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			// The untrimmed input is what gets stored.
			assert.Equal(t, tt.input, p.Value())
			assert.Equal(t, tt.input, p.String())
			assert.Equal(t, addressbook.KindPhone, p.Kind())
		})
	}
}

func TestNewBirthday(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain date", "25.12.1990", true},
		{"leap day", "29.02.2000", true},
		{"non-leap feb 29", "29.02.2001", false},
		{"day 31 in april", "31.04.1990", false},
		{"month 13", "01.13.1990", false},
		{"single digit day", "1.01.1990", false},
		{"single digit month", "01.1.1990", false},
		{"two digit year", "01.01.90", false},
		{"iso layout", "1990-12-25", false},
		{"slashes", "25/12/1990", false},
		{"trailing space", "25.12.1990 ", false},
		{"empty", "", false},
		{"year zero", "01.01.0000", false},
		{"year one", "01.01.0001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := addressbook.NewBirthday(tt.input)
			if !tt.valid {
				require.Error(t, err)
				var ve *addressbook.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, addressbook.KindBirthday, ve.Kind)
				assert.Equal(t, tt.input, ve.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, b.Value())
			assert.Equal(t, "| Birthday: "+tt.input, b.String())
		})
	}
}

func TestNewName(t *testing.T) {
	n := addressbook.NewName("Ann Smith")
	assert.Equal(t, "Ann Smith", n.Value())
	assert.Equal(t, "Ann Smith", n.String())
	assert.Equal(t, addressbook.KindName, n.Kind())
}

func TestBirthday_ZeroValueDoesNotParse(t *testing.T) {
	var b addressbook.Birthday
	_, err := b.Date()
	assert.Error(t, err)
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "name", addressbook.KindName.String())
	assert.Equal(t, "phone", addressbook.KindPhone.String())
	assert.Equal(t, "birthday", addressbook.KindBirthday.String())
}
