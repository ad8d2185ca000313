// Package output persists captured screenshots to the local filesystem.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the date/time layout used in generated file names
const TimestampLayout = "2006-01-02_15:04:05"

// ErrWriteScreenshot is returned when the screenshot file cannot be written
var ErrWriteScreenshot = errors.New("could not write screenshot file")

// FileWriter writes screenshots to disk
type FileWriter struct {
	// Dir is where generated file names are placed. User supplied
	// file names are used as given.
	Dir string

	// Now returns the current time; defaults to time.Now
	Now func() time.Time
}

// NewFileWriter creates a writer that places generated names in dir
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{Dir: dir, Now: time.Now}
}

// Resolve returns the file name for a screenshot. A non-empty override wins;
// otherwise the name is screenshot_<address>_<timestamp>.<format>.
func (w *FileWriter) Resolve(address, format, override string) string {
	if override != "" {
		return override
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	name := fmt.Sprintf("screenshot_%s_%s.%s", address, now().Local().Format(TimestampLayout), format)

	if w.Dir == "" || w.Dir == "." {
		return name
	}
	return filepath.Join(w.Dir, name)
}

// Dump writes data to the resolved file, truncating any existing file,
// and returns the file name used
func (w *FileWriter) Dump(data []byte, format, address, override string) (string, error) {
	filename := w.Resolve(address, format, override)

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("%w (%w)", ErrWriteScreenshot, err)
	}
	return filename, nil
}
