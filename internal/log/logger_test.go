package log

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputFormatsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	Info("event resolved", "event", "evt-1", "choice", 2)

	line := buf.String()
	assert.Regexp(t, regexp.MustCompile(`^time="\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\.\d{6}" level=INFO msg="event resolved" event=evt-1 choice=2`), line)
}

func TestSetFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redline_debug.log")
	require.NoError(t, SetFileOutput(path))

	Warn("busted", "username", "neo")
	Debug("heat", "value", 99.5)
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `level=WARN msg=busted username=neo`)
	assert.Contains(t, string(data), `level=DEBUG msg=heat value=99.5`)
}

func TestSetFileOutputBadPath(t *testing.T) {
	err := SetFileOutput(filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
