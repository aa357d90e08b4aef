package addressbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
)

func TestBook_AddFindDelete(t *testing.T) {
	book := addressbook.NewBook()

	john := addressbook.NewRecord("John")
	require.NoError(t, john.AddPhone("1234567890"))
	book.Add(john)

	found, ok := book.Find("John")
	require.True(t, ok)
	assert.Same(t, john, found)

	_, ok = book.Find("Jane")
	assert.False(t, ok)

	book.Delete("Jane") // no-op
	assert.Equal(t, 1, book.Len())

	book.Delete("John")
	_, ok = book.Find("John")
	assert.False(t, ok)
	assert.Equal(t, 0, book.Len())
}

func TestBook_AddReplacesWithoutMerge(t *testing.T) {
	book := addressbook.NewBook()

	first := addressbook.NewRecord("John")
	require.NoError(t, first.AddPhone("1111111111"))
	book.Add(first)
	book.Add(addressbook.NewRecord("Jane"))

	second := addressbook.NewRecord("John")
	require.NoError(t, second.AddPhone("2222222222"))
	book.Add(second)

	found, _ := book.Find("John")
	assert.Same(t, second, found)
	assert.Equal(t, 2, book.Len())

	// Replacing keeps the original position.
	records := book.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "John", records[0].Name().Value())
	assert.Equal(t, "Jane", records[1].Name().Value())
}

func TestBook_KeysMatchRecordNames(t *testing.T) {
	book := addressbook.NewBook()
	for _, name := range []string{"Ann", "Bob", "Cid"} {
		book.Add(addressbook.NewRecord(name))
	}
	book.Delete("Bob")

	for _, r := range book.Records() {
		found, ok := book.Find(r.Name().Value())
		require.True(t, ok)
		assert.Same(t, r, found)
	}
}

func TestBook_String(t *testing.T) {
	book := addressbook.NewBook()
	assert.Equal(t, "", book.String())

	john := addressbook.NewRecord("John")
	require.NoError(t, john.AddPhone("1234567890"))
	jane := addressbook.NewRecord("Jane")
	require.NoError(t, jane.AddPhone("9876543210"))
	require.NoError(t, jane.AddBirthday("01.02.1995"))
	book.Add(john)
	book.Add(jane)

	expected := "Contact name: John, phones: 1234567890\n" +
		"Contact name: Jane, phones: 9876543210 | Birthday: 01.02.1995"
	assert.Equal(t, expected, book.String())
}

func TestBook_ZeroValueIsUsable(t *testing.T) {
	var book addressbook.Book
	book.Add(addressbook.NewRecord("Ann"))
	_, ok := book.Find("Ann")
	assert.True(t, ok)
}
