package engine_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

func TestImportVCard_NewContacts(t *testing.T) {
	data := `BEGIN:VCARD
VERSION:4.0
FN:John Doe
TEL:1234567890
TEL:5555555555
BDAY:1990-12-25
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Jane Roe
TEL:+33 6 12 34 56 78
BDAY:19850412
END:VCARD
`
	book := addressbook.NewBook()

	report, err := engine.ImportVCard(context.Background(), strings.NewReader(data), book)
	require.NoError(t, err)

	assert.Equal(t, engine.ImportReport{Cards: 2, Added: 2, Skipped: 1}, report)

	john, ok := book.Find("John Doe")
	require.True(t, ok)
	assert.Equal(t, "Contact name: John Doe, phones: 1234567890; 5555555555 | Birthday: 25.12.1990", john.String())

	jane, ok := book.Find("Jane Roe")
	require.True(t, ok)
	assert.Empty(t, jane.Phones(), "international format is not a 10 digit number")
	bday, ok := jane.Birthday()
	require.True(t, ok)
	assert.Equal(t, "12.04.1985", bday.Value())
}

func TestImportVCard_MergesIntoExisting(t *testing.T) {
	book := addressbook.NewBook()
	john := addressbook.NewRecord("John")
	require.NoError(t, john.AddPhone("1111111111"))
	require.NoError(t, john.AddBirthday("01.01.1980"))
	book.Add(john)

	data := `BEGIN:VCARD
VERSION:4.0
FN:John
TEL:1111111111
TEL:2222222222
BDAY:1999-09-09
END:VCARD
`
	report, err := engine.ImportVCard(context.Background(), strings.NewReader(data), book)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Merged)
	assert.Equal(t, 0, report.Added)
	// Known phones are not duplicated and an existing birthday is kept.
	assert.Equal(t, "Contact name: John, phones: 1111111111; 2222222222 | Birthday: 01.01.1980", john.String())
}

func TestImportVCard_SkipsYearlessBirthday(t *testing.T) {
	data := `BEGIN:VCARD
VERSION:4.0
FN:Mystery
BDAY:--0412
END:VCARD
`
	book := addressbook.NewBook()
	report, err := engine.ImportVCard(context.Background(), strings.NewReader(data), book)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	r, ok := book.Find("Mystery")
	require.True(t, ok)
	_, hasBday := r.Birthday()
	assert.False(t, hasBday)
}

func TestImportVCard_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.ImportVCard(ctx, strings.NewReader("BEGIN:VCARD\nVERSION:4.0\nFN:X\nEND:VCARD\n"), addressbook.NewBook())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportVCard_RoundTrip(t *testing.T) {
	book := addressbook.NewBook()
	john := addressbook.NewRecord("John")
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.AddPhone("0987654321"))
	require.NoError(t, john.AddBirthday("29.02.2000"))
	book.Add(john)
	book.Add(addressbook.NewRecord("Bare"))

	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCard(&buf, book))

	out := buf.String()
	assert.Contains(t, out, "FN:John")
	assert.Contains(t, out, "BDAY:20000229")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VCARD"))

	restored := addressbook.NewBook()
	report, err := engine.ImportVCard(context.Background(), &buf, restored)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, book.String(), restored.String())
}

func TestExportVCard_EmptyBook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCard(&buf, addressbook.NewBook()))
	assert.Empty(t, buf.String())
}
