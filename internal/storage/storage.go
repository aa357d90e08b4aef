package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// snapshot is the on-disk representation of a Book.
type snapshot struct {
	Version int           `cbor:"1,keyasint"`
	Records []recordEntry `cbor:"2,keyasint"`
}

type recordEntry struct {
	Name     string   `cbor:"1,keyasint"`
	Phones   []string `cbor:"2,keyasint,omitempty"`
	Birthday string   `cbor:"3,keyasint,omitempty"`
}

// PersistenceError wraps any failure to read or write the saved address book.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Serialize writes every record of book to w.
func Serialize(w io.Writer, book *addressbook.Book) error {
	snap := snapshot{Version: config.SnapshotVersion}
	for _, r := range book.Records() {
		entry := recordEntry{Name: r.Name().Value()}
		for _, p := range r.Phones() {
			entry.Phones = append(entry.Phones, p.Value())
		}
		if b, ok := r.Birthday(); ok {
			entry.Birthday = b.Value()
		}
		snap.Records = append(snap.Records, entry)
	}

	if err := cbor.NewEncoder(w).Encode(snap); err != nil {
		return &PersistenceError{Op: config.ErrSnapshotEncode, Err: err}
	}
	return nil
}

// Deserialize rebuilds a Book from r. Every value goes through the field
// constructors again, so a tampered snapshot is rejected as a whole.
func Deserialize(r io.Reader) (*addressbook.Book, error) {
	var snap snapshot
	if err := cbor.NewDecoder(r).Decode(&snap); err != nil {
		return nil, &PersistenceError{Op: config.ErrSnapshotDecode, Err: err}
	}
	if snap.Version != config.SnapshotVersion {
		return nil, &PersistenceError{
			Op:  config.ErrSnapshotVersion,
			Err: fmt.Errorf("got %d, want %d", snap.Version, config.SnapshotVersion),
		}
	}

	book := addressbook.NewBook()
	for _, entry := range snap.Records {
		record, err := restoreRecord(entry)
		if err != nil {
			return nil, &PersistenceError{Op: config.ErrSnapshotRecord, Err: err}
		}
		book.Add(record)
	}
	return book, nil
}

func restoreRecord(entry recordEntry) (*addressbook.Record, error) {
	record := addressbook.NewRecord(entry.Name)
	for _, p := range entry.Phones {
		if err := record.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if entry.Birthday != "" {
		if err := record.AddBirthday(entry.Birthday); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// Save writes book to path. The data goes to a temporary file in the same
// directory which is renamed over path once fully written.
func Save(path string, book *addressbook.Book) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return &PersistenceError{Op: config.ErrCreateDir, Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*"+config.ExtTmp)
	if err != nil {
		return &PersistenceError{Op: config.ErrSnapshotWrite, Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = Serialize(w, book); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return &PersistenceError{Op: config.ErrSnapshotWrite, Path: path, Err: err}
	}
	if err = tmp.Chmod(config.FilePermUserRW); err != nil {
		return &PersistenceError{Op: config.ErrSnapshotWrite, Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &PersistenceError{Op: config.ErrSnapshotWrite, Path: path, Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &PersistenceError{Op: config.ErrSnapshotWrite, Path: path, Err: err}
	}

	slog.Debug(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, path,
		config.LogKeyRecords, book.Len())
	return nil
}

// Load reads the book saved at path. Any failure, including a missing file,
// yields an empty book; the cause is logged and never returned.
func Load(path string) *addressbook.Book {
	book, err := load(path)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, os.ErrNotExist) {
			level = slog.LevelInfo
		}
		slog.Log(context.Background(), level, config.MsgBookEmpty,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyFile, path,
			config.LogKeyError, err)
		return addressbook.NewBook()
	}

	slog.Debug(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, path,
		config.LogKeyRecords, book.Len())
	return book
}

func load(path string) (*addressbook.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PersistenceError{Op: config.ErrSnapshotRead, Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	book, err := Deserialize(bufio.NewReader(f))
	if err != nil {
		var pe *PersistenceError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return book, nil
}
