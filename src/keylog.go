package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Save decoded keypresses to a log file.
 *
 * Description: Diagnostics only; nothing in the decode path depends on
 *		this.  Events are written as CSV for easy reading and
 *		later processing, with one file per day so a deployment
 *		can run unattended.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

// KeyLog appends decoded key events to daily CSV files under one
// directory.  A zero-value KeyLog (or one built with an empty dir)
// discards everything.
type KeyLog struct {
	dir string

	f        *os.File
	w        *csv.Writer
	openName string // Name of the currently open file; files roll daily.
}

// NewKeyLog prepares a key log in the given directory, creating it if
// needed.  An empty dir disables logging.
func NewKeyLog(dir string) (*KeyLog, error) {
	if dir == "" {
		return &KeyLog{}, nil
	}
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return nil, fmt.Errorf("creating key log directory: %w", mkErr)
	}
	return &KeyLog{dir: dir}, nil
}

/*------------------------------------------------------------------
 *
 * Name:	Record
 *
 * Purpose:	Append one decoded keypress.
 *
 * Inputs:	now	- Event time.
 *		profile	- Active profile name.
 *		key	- The decoded button.
 *
 * Description: The file is kept open between events; it rolls when the
 *		daily name changes.  Each row is flushed immediately so
 *		a crash loses at most the event being written.
 *
 *----------------------------------------------------------------*/

func (k *KeyLog) Record(now time.Time, profile string, key byte) error {
	if k.dir == "" {
		return nil
	}

	var name, nameErr = strftime.Format("%Y-%m-%d-keys.csv", now)
	if nameErr != nil {
		return fmt.Errorf("formatting key log name: %w", nameErr)
	}

	if k.f == nil || name != k.openName {
		if rollErr := k.roll(name); rollErr != nil {
			return rollErr
		}
	}

	if writeErr := k.w.Write([]string{
		now.Format(time.RFC3339Nano),
		profile,
		string(key),
	}); writeErr != nil {
		return fmt.Errorf("writing key log: %w", writeErr)
	}
	k.w.Flush()
	return k.w.Error()
}

// roll closes the current file, if any, and opens (or creates) the one
// for the new daily name, writing the header on creation.
func (k *KeyLog) roll(name string) error {
	if k.f != nil {
		k.w.Flush()
		k.f.Close() //nolint:errcheck
		k.f = nil
		k.w = nil
	}

	var path = filepath.Join(k.dir, name)
	var _, statErr = os.Stat(path)
	var isNew = os.IsNotExist(statErr)

	var f, openErr = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if openErr != nil {
		return fmt.Errorf("opening key log %s: %w", path, openErr)
	}

	k.f = f
	k.w = csv.NewWriter(f)
	k.openName = name

	if isNew {
		if headErr := k.w.Write([]string{"time", "profile", "key"}); headErr != nil {
			return fmt.Errorf("writing key log header: %w", headErr)
		}
		k.w.Flush()
	}
	return k.w.Error()
}

// Close flushes and closes the open file, if any.
func (k *KeyLog) Close() error {
	if k.f == nil {
		return nil
	}
	k.w.Flush()
	var err = k.f.Close()
	k.f = nil
	k.w = nil
	return err
}
