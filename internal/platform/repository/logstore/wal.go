package logstore

import (
	"FragFS/internal/platform/utils"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sync"
)

const walFileName = "snapshot.wal"

// WAL is an append-only file of key/value records.
type WAL struct {
	mu   sync.Mutex
	fd   *os.File
	dir  string
	path string
}

// NewWal opens (or creates) the log file inside dir.
func NewWal(dir string) (*WAL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create wal directory: %w", err)
	}
	return FromFile(path.Join(dir, walFileName))
}

func FromFile(fileName string) (*WAL, error) {
	fd, err := os.OpenFile(fileName, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &WAL{
		fd:   fd,
		dir:  path.Dir(fileName),
		path: fileName,
	}, nil
}

func (w *WAL) Write(records ...utils.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fd == nil {
		return os.ErrClosed
	}
	for _, record := range records {
		if err := utils.AppendRecord(w.fd, record); err != nil {
			return err
		}
	}
	return w.fd.Sync()
}

// Read returns every record in the log, oldest first. A torn record at the
// end is cut off the file so later appends follow the last complete record.
func (w *WAL) Read() ([]utils.Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fd == nil {
		return nil, os.ErrClosed
	}
	if _, err := w.fd.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	records, complete, err := utils.ReadAllRecords(w.fd)
	if err != nil {
		return nil, err
	}
	info, err := w.fd.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > complete {
		log.Printf("Truncating %s from %d to %d bytes", w.path, info.Size(), complete)
		if err := w.fd.Truncate(complete); err != nil {
			return nil, fmt.Errorf("truncate torn wal tail: %w", err)
		}
	}
	return records, nil
}

// Size is the current length of the log file in bytes.
func (w *WAL) Size() (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fd == nil {
		return 0, os.ErrClosed
	}
	info, err := w.fd.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Rewrite replaces the log with exactly the given records. The new log is
// written to a temporary file in the same directory and renamed over the old
// one, so a crash leaves either the old or the new log in place.
func (w *WAL) Rewrite(records []utils.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fd == nil {
		return os.ErrClosed
	}

	tmp, err := os.CreateTemp(w.dir, walFileName+".*")
	if err != nil {
		return fmt.Errorf("create wal rewrite file: %w", err)
	}
	defer os.Remove(tmp.Name())
	for _, record := range records {
		if err := utils.AppendRecord(tmp, record); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("replace wal: %w", err)
	}

	fd, err := os.OpenFile(w.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	w.fd.Close()
	w.fd = fd
	return nil
}

func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.close()
}

func (w *WAL) close() error {
	// w.fd will be nil if close is already called
	if w.fd != nil {
		if err := w.fd.Close(); err != nil {
			return err
		}
		w.fd = nil
	}
	return nil
}

func (w *WAL) Path() string {
	return w.path
}
