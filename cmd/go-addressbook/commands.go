package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/assistant"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/server"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// maxHorizonDays mirrors the horizon_days validation bound.
const maxHorizonDays = 366

// app carries the state shared by every command: parsed flags, loaded
// settings and the translator built from them.
type app struct {
	configPath string
	debug      bool

	settings  *config.Settings
	tr        *assistant.Translator
	fetcher   engine.VCardFetcher
	logCloser io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               config.CmdName,
		Short:             config.CmdShortRoot,
		Version:           config.Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runAssistant,
	}
	cmd.SetVersionTemplate(versionString())

	cmd.PersistentFlags().StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescConfig)
	cmd.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)

	cmd.AddCommand(
		newBirthdaysCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newServeCmd(a),
	)
	return cmd
}

// setup runs before every command: logging first so configuration problems
// are recorded, then settings and translations.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	a.logCloser = setupLogging(a.debug)
	logStartupInfo()

	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings
	a.tr = assistant.NewTranslator(settings.Language)
	if a.fetcher == nil {
		a.fetcher = engine.NewHTTPFetcher()
	}
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close() // Best effort close
		a.logCloser = nil
	}
}

// newAssistant loads the saved book and applies the configured horizon.
func (a *app) newAssistant() *assistant.Assistant {
	bot := assistant.New(storage.Load(a.settings.DataFile), a.tr)
	bot.HorizonDays = a.settings.HorizonDays
	return bot
}

// runAssistant is the interactive session. The book is saved when the
// session ends, whatever the reason.
func (a *app) runAssistant(cmd *cobra.Command, _ []string) error {
	bot := a.newAssistant()
	dataFile := a.settings.DataFile
	bot.Persist = func(book *addressbook.Book) error {
		return storage.Save(dataFile, book)
	}
	return bot.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}

func newBirthdaysCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   config.CmdUseBirthdays,
		Short: config.CmdShortBirthdays,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bot := a.newAssistant()
			if cmd.Flags().Changed(config.FlagDays) {
				if days < 0 || days > maxHorizonDays {
					return errors.New(config.ErrHorizonRange)
				}
				bot.HorizonDays = days
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), bot.Handle(assistant.CmdBirthdays).Text)
			return err
		},
	}
	cmd.Flags().IntVar(&days, config.FlagDays, config.DefaultHorizonDays, config.FlagDescDays)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseExport,
		Short: config.CmdShortExport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := vcardPath(args[0])
			book := storage.Load(a.settings.DataFile)

			if err := writeVCardFile(path, book); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.tr.T(config.TKeyExportReport, map[string]any{
				"Count": book.Len(),
				"File":  path,
			}))
			return err
		},
	}
}

func writeVCardFile(path string, book *addressbook.Book) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrOpenDestination, err)
	}
	if err := engine.ExportVCard(f, book); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	return nil
}

// vcardPath appends the .vcf extension unless path already has a vCard one.
func vcardPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case config.ExtVCF, config.ExtVCard:
		return path
	default:
		return path + config.ExtVCF
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseImport,
		Short: config.CmdShortImport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src := engine.Source{
				Location: args[0],
				User:     a.settings.Import.User,
				Pass:     a.settings.Import.Password,
			}

			rc, err := engine.OpenSource(ctx, a.fetcher, src)
			if err != nil {
				return err
			}
			defer func() { _ = rc.Close() }()

			book := storage.Load(a.settings.DataFile)
			report, err := engine.ImportVCard(ctx, rc, book)
			if err != nil {
				return err
			}
			if err := storage.Save(a.settings.DataFile, book); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.tr.T(config.TKeyImportReport, map[string]any{
				"Cards":   report.Cards,
				"Added":   report.Added,
				"Merged":  report.Merged,
				"Skipped": report.Skipped,
			}))
			return err
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseServe,
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings
			srv := server.NewFeedServer(s.Server.Port, a.feedSource(), s.Server.RefreshInterval)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgFeedURL, config.LocalhostBindAddr, s.Server.Port)
			return srv.Start(cmd.Context())
		},
	}
}

// feedSource re-reads the data file on every refresh so edits made in a
// separate assistant session show up in the served calendar.
func (a *app) feedSource() server.FeedSource {
	s := a.settings
	builder := &engine.CalendarBuilder{
		Clock: addressbook.RealClock{},
		FormatSummary: func(name string) string {
			return a.tr.T(config.TKeyEvtSummary, map[string]any{"Name": name})
		},
	}
	return func(ctx context.Context) ([]byte, error) {
		data, _, err := builder.Build(ctx, storage.Load(s.DataFile), s.HorizonDays, s.ReminderTrigger)
		return data, err
	}
}
