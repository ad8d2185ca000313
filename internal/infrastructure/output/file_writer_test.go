package output

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 7, 9, 5, 3, 0, time.Local)
}

// TestFileWriter_Resolve tests file name generation
func TestFileWriter_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		address  string
		format   string
		override string
		want     string
	}{
		{
			name:    "GeneratedName",
			address: "192.168.1.20",
			format:  "bmp",
			want:    "screenshot_192.168.1.20_2024-03-07_09:05:03.bmp",
		},
		{
			name:    "GeneratedNameInDirectory",
			dir:     "shots",
			address: "scope",
			format:  "png",
			want:    filepath.Join("shots", "screenshot_scope_2024-03-07_09:05:03.png"),
		},
		{
			name:     "OverrideWins",
			dir:      "shots",
			address:  "scope",
			format:   "png",
			override: "capture.png",
			want:     "capture.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &FileWriter{Dir: tt.dir, Now: fixedClock}
			assert.Equal(t, tt.want, w.Resolve(tt.address, tt.format, tt.override))
		})
	}
}

// TestFileWriter_Dump_WritesAndTruncates tests writing and overwriting a screenshot
func TestFileWriter_Dump_WritesAndTruncates(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "shot.bmp")
	require.NoError(t, os.WriteFile(target, []byte("an older and much longer file"), 0o644))

	w := NewFileWriter(dir)
	name, err := w.Dump([]byte("BMdata"), "bmp", "dmm", target)
	require.NoError(t, err)
	assert.Equal(t, target, name)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "BMdata", string(content), "Existing file should be truncated")
}

// TestFileWriter_Dump_GeneratedName tests dumping without an override
func TestFileWriter_Dump_GeneratedName(t *testing.T) {
	dir := t.TempDir()
	w := &FileWriter{Dir: dir, Now: fixedClock}

	name, err := w.Dump([]byte("png"), "png", "10.0.0.1", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "screenshot_10.0.0.1_2024-03-07_09:05:03.png"), name)
	assert.FileExists(t, name)
}

// TestFileWriter_Dump_Unwritable tests the IO error path
func TestFileWriter_Dump_Unwritable(t *testing.T) {
	w := NewFileWriter(".")
	_, err := w.Dump([]byte("x"), "png", "scope", filepath.Join(t.TempDir(), "missing", "dir", "shot.png"))

	assert.ErrorIs(t, err, ErrWriteScreenshot)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestFileWriter_PropertyBased_GeneratedNamePattern tests the generated name shape for arbitrary inputs
func TestFileWriter_PropertyBased_GeneratedNamePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^screenshot_(.+)_(\d{4}-\d{2}-\d{2}_\d{2}:\d{2}:\d{2})\.([a-z]+)$`)

	rapid.Check(t, func(t *rapid.T) {
		address := rapid.StringMatching(`[a-z0-9.-]{1,20}`).Draw(t, "address")
		format := rapid.SampledFrom([]string{"png", "bmp", "jpg"}).Draw(t, "format")
		at := time.Unix(rapid.Int64Range(0, 4102444800).Draw(t, "unix"), 0)

		w := &FileWriter{Now: func() time.Time { return at }}
		name := w.Resolve(address, format, "")

		m := pattern.FindStringSubmatch(name)
		require.NotNil(t, m, "unexpected name %q", name)
		assert.Equal(t, address, m[1])
		assert.Equal(t, at.Local().Format(TimestampLayout), m[2])
		assert.Equal(t, format, m[3])
	})
}
