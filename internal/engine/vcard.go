package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ImportReport summarises a vCard import.
type ImportReport struct {
	Cards   int // cards decoded
	Added   int // new records created
	Merged  int // existing records that received data
	Skipped int // phones, birthdays or cards that could not be used
}

// ExportVCard writes every record of book as a vCard 4.0 entry.
func ExportVCard(w io.Writer, book *addressbook.Book) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.Records() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldFormattedName, r.Name().Value())
		for _, p := range r.Phones() {
			card.AddValue(vcard.FieldTelephone, p.Value())
		}
		if b, ok := r.Birthday(); ok {
			if d, err := b.Date(); err == nil {
				card.SetValue(vcard.FieldBirthday, d.Format(config.DateFormatFullBasic))
			}
		}
		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyRecords, book.Len())
	return nil
}

// ImportVCard merges the cards read from r into book. Unknown names become new
// records; known names get the card's phones appended (skipping numbers they
// already have) and its birthday when they have none. Values that fail
// validation are skipped and counted, never fatal.
func ImportVCard(ctx context.Context, r io.Reader, book *addressbook.Book) (ImportReport, error) {
	var report ImportReport
	dec := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed card syntax leaves the decoder in an unknown position.
			return report, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		report.Cards++

		name := cardName(card)
		if name == "" {
			report.Skipped++
			slog.Warn(config.MsgSkippedCard, config.LogKeyComponent, config.CompEngine)
			continue
		}

		record, exists := book.Find(name)
		if !exists {
			record = addressbook.NewRecord(name)
		}
		changed := mergeCard(record, card, &report)

		switch {
		case !exists:
			book.Add(record)
			report.Added++
		case changed:
			report.Merged++
		}
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyCount, report.Cards),
			slog.Int(config.LogKeyImported, report.Added),
			slog.Int(config.LogKeyMerged, report.Merged),
			slog.Int(config.LogKeySkipped, report.Skipped),
		),
	)
	return report, nil
}

// cardName picks FN, falling back to the raw N value.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil {
		return n.Value
	}
	return ""
}

func mergeCard(record *addressbook.Record, card vcard.Card, report *ImportReport) bool {
	changed := false

	for _, tel := range card.Values(config.VCardTEL) {
		if _, dup := record.FindPhone(tel); dup {
			continue
		}
		if err := record.AddPhone(tel); err != nil {
			report.Skipped++
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, record.Name().Value(),
				config.LogKeyValue, tel)
			continue
		}
		changed = true
	}

	if _, has := record.Birthday(); has {
		return changed
	}
	bday := card.Get(config.VCardBDAY)
	if bday == nil || bday.Value == "" {
		return changed
	}
	d, err := parseVCardDate(bday.Value)
	if err == nil {
		err = record.AddBirthday(addressbook.FormatDate(d))
	}
	if err != nil {
		report.Skipped++
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, record.Name().Value(),
			config.LogKeyValue, bday.Value)
		return changed
	}
	return true
}

// parseVCardDate accepts the full-date BDAY layouts seen in the wild.
// Truncated dates without a year (--MM-DD) cannot become a DD.MM.YYYY
// birthday and are rejected.
func parseVCardDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
