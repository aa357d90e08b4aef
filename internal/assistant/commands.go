package assistant

import (
	"errors"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Command names understood by the assistant.
const (
	CmdHello        = "hello"
	CmdHelp         = "help"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdRemovePhone  = "remove-phone"
	CmdDelete       = "delete"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdClose        = "close"
	CmdExit         = "exit"
)

var errMissingArgs = errors.New(config.ErrMissingArgs)

type handlerFunc func(a *Assistant, args []string) (string, error)

// command couples a handler with the reply used when its input is unusable
// (too few arguments or a value that fails validation).
type command struct {
	run   handlerFunc
	usage string
}

var commands = map[string]command{
	CmdHello:        {run: (*Assistant).hello},
	CmdHelp:         {run: (*Assistant).help},
	CmdAdd:          {run: (*Assistant).addContact, usage: config.TKeyUsagePhone},
	CmdChange:       {run: (*Assistant).changeContact, usage: config.TKeyUsagePhone},
	CmdPhone:        {run: (*Assistant).showPhone, usage: config.TKeyUsageArgument},
	CmdRemovePhone:  {run: (*Assistant).removePhone, usage: config.TKeyUsagePhone},
	CmdDelete:       {run: (*Assistant).deleteContact, usage: config.TKeyUsageArgument},
	CmdAll:          {run: (*Assistant).showAll},
	CmdAddBirthday:  {run: (*Assistant).addBirthday, usage: config.TKeyUsageBirthday},
	CmdShowBirthday: {run: (*Assistant).showBirthday, usage: config.TKeyUsageArgument},
	CmdBirthdays:    {run: (*Assistant).birthdays},
}

func (a *Assistant) hello(_ []string) (string, error) {
	return a.t(config.TKeyHello, nil), nil
}

func (a *Assistant) help(_ []string) (string, error) {
	return a.t(config.TKeyHelp, nil), nil
}

// addContact creates the contact if needed and appends the phone. The phone is
// validated first so a bad number never leaves an empty contact behind.
func (a *Assistant) addContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", errMissingArgs
	}
	name, phone := args[0], args[1]
	if _, err := addressbook.NewPhone(phone); err != nil {
		return "", err
	}

	record, ok := a.Book.Find(name)
	reply := a.t(config.TKeyContactUpdated, nil)
	if !ok {
		record = addressbook.NewRecord(name)
		a.Book.Add(record)
		reply = a.t(config.TKeyContactAdded, nil)
	}
	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	return reply, nil
}

func (a *Assistant) changeContact(args []string) (string, error) {
	if len(args) != 3 {
		return "", errMissingArgs
	}
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	res, err := record.EditPhone(args[1], args[2])
	if err != nil {
		return "", err
	}
	if !res.Updated {
		return a.t(config.TKeyPhoneNotDefined, map[string]any{"Phone": res.Old}), nil
	}
	return a.t(config.TKeyPhoneUpdated, nil), nil
}

func (a *Assistant) showPhone(args []string) (string, error) {
	if len(args) < 1 {
		return "", errMissingArgs
	}
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	return a.t(config.TKeyShowPhones, map[string]any{
		"Name":   args[0],
		"Phones": record.PhoneList(),
	}), nil
}

func (a *Assistant) removePhone(args []string) (string, error) {
	if len(args) < 2 {
		return "", errMissingArgs
	}
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if _, ok := record.FindPhone(args[1]); !ok {
		return a.t(config.TKeyPhoneNotDefined, map[string]any{"Phone": args[1]}), nil
	}
	record.RemovePhone(args[1])
	return a.t(config.TKeyPhoneRemoved, nil), nil
}

func (a *Assistant) deleteContact(args []string) (string, error) {
	if len(args) < 1 {
		return "", errMissingArgs
	}
	if _, err := a.find(args[0]); err != nil {
		return "", err
	}
	a.Book.Delete(args[0])
	return a.t(config.TKeyContactDeleted, nil), nil
}

func (a *Assistant) showAll(_ []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.t(config.TKeyNoContacts, nil), nil
	}
	return a.Book.String(), nil
}

func (a *Assistant) addBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", errMissingArgs
	}
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := record.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return a.t(config.TKeyBirthdayUpdated, nil), nil
}

func (a *Assistant) showBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", errMissingArgs
	}
	record, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	bday, ok := record.Birthday()
	if !ok {
		return "", addressbook.ErrNoBirthday
	}
	return a.t(config.TKeyShowBirthday, map[string]any{
		"Name":     args[0],
		"Birthday": bday.Value(),
	}), nil
}

func (a *Assistant) birthdays(_ []string) (string, error) {
	upcoming := a.Book.UpcomingBirthdays(a.Clock.Now(), a.HorizonDays)
	if len(upcoming) == 0 {
		return a.t(config.TKeyNoUpcoming, map[string]any{"Days": a.HorizonDays}), nil
	}
	lines := make([]string, len(upcoming))
	for i, g := range upcoming {
		lines[i] = a.t(config.TKeyUpcomingLine, map[string]any{
			"Name": g.Name,
			"Date": g.CongratulationDate,
		})
	}
	return strings.Join(lines, config.RecordSeparator), nil
}

func (a *Assistant) find(name string) (*addressbook.Record, error) {
	record, ok := a.Book.Find(name)
	if !ok {
		return nil, addressbook.ErrContactNotFound
	}
	return record, nil
}

// errorReply turns a handler error into the message shown to the user.
func (a *Assistant) errorReply(cmd command, err error) string {
	switch {
	case errors.Is(err, errMissingArgs), addressbook.IsValidationError(err):
		if cmd.usage != "" {
			return a.t(cmd.usage, nil)
		}
		return a.t(config.TKeyUsageArgument, nil)
	case errors.Is(err, addressbook.ErrContactNotFound):
		return a.t(config.TKeyContactUndefined, nil)
	case errors.Is(err, addressbook.ErrNoBirthday):
		return a.t(config.TKeyNoBirthday, nil)
	default:
		return err.Error()
	}
}
