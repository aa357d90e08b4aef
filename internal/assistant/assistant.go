package assistant

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Assistant maps text commands onto an address book. It owns the book for
// the duration of a session and is not safe for concurrent use.
type Assistant struct {
	Book        *addressbook.Book
	Clock       addressbook.Clock
	Translator  *Translator
	HorizonDays int

	// Persist is called once when the session ends. It may be nil.
	Persist func(book *addressbook.Book) error
}

// New returns an Assistant with a real clock and the default horizon.
func New(book *addressbook.Book, tr *Translator) *Assistant {
	return &Assistant{
		Book:        book,
		Clock:       addressbook.RealClock{},
		Translator:  tr,
		HorizonDays: addressbook.DefaultHorizonDays,
	}
}

// Reply is the outcome of one command line.
type Reply struct {
	Text  string
	Error bool // the command was rejected
	Exit  bool // the session should end
}

// Handle runs a single input line. Failures are reported through the reply
// text; nothing a user types can stop the session except close/exit.
func (a *Assistant) Handle(line string) Reply {
	name, args, err := ParseInput(line)
	if err != nil {
		return Reply{}
	}

	log := slog.With(
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, name,
	)

	if name == CmdClose || name == CmdExit {
		return Reply{Text: a.t(config.TKeyGoodbye, nil), Exit: true}
	}

	cmd, ok := commands[name]
	if !ok {
		log.Debug(config.MsgCommandFailed)
		return Reply{Text: a.t(config.TKeyInvalidCommand, nil), Error: true}
	}

	text, err := cmd.run(a, args)
	if err != nil {
		log.Debug(config.MsgCommandFailed, config.LogKeyError, err)
		return Reply{Text: a.errorReply(cmd, err), Error: true}
	}

	log.Debug(config.MsgCommand, config.LogKeyArgs, len(args))
	return Reply{Text: text}
}

// Run drives the interactive loop: prompt, read a line, reply. It stops on
// close/exit, end of input or context cancellation, then persists the book.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	// Cancelled on return so the reader goroutine never outlives the session.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
		}
	}()

	_, _ = fmt.Fprintln(out, a.t(config.TKeyWelcome, nil))

	var loopErr error
loop:
	for {
		_, _ = fmt.Fprint(out, cyan(a.t(config.TKeyPrompt, nil)))

		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompAssistant)
			_, _ = fmt.Fprintln(out)
			break loop

		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(out)
				select {
				case err := <-readErr:
					loopErr = fmt.Errorf("%s: %w", config.ErrReadInput, err)
				default:
				}
				break loop
			}

			reply := a.Handle(line)
			switch {
			case reply.Text == "":
			case reply.Error:
				_, _ = fmt.Fprintln(out, red(reply.Text))
			case reply.Exit:
				_, _ = fmt.Fprintln(out, yellow(reply.Text))
			default:
				_, _ = fmt.Fprintln(out, reply.Text)
			}
			if reply.Exit {
				break loop
			}
		}
	}

	return errors.Join(loopErr, a.persist())
}

func (a *Assistant) persist() error {
	if a.Persist == nil {
		return nil
	}
	if err := a.Persist(a.Book); err != nil {
		return fmt.Errorf("%s: %w", config.ErrPersistOnExit, err)
	}
	return nil
}

func (a *Assistant) t(key string, data map[string]any) string {
	return a.Translator.T(key, data)
}
