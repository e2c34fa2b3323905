package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSkipsBlankLinesButCountsThem(t *testing.T) {
	in := "{\"a\": 1}\n\n   \n{\"b\": 2}\n"
	lines, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, `{"a": 1}`, string(lines[0].Text))
	assert.Equal(t, 4, lines[1].Number, "blank lines advance the physical line count")
	assert.Equal(t, `{"b": 2}`, string(lines[1].Text))
}

func TestReadTrimsSurroundingWhitespace(t *testing.T) {
	lines, err := Read(strings.NewReader("  {\"a\": 1}\t\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, `{"a": 1}`, string(lines[0].Text))
}

func TestReadEmptyInput(t *testing.T) {
	lines, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadKeepsEarlierLinesIntact(t *testing.T) {
	lines, err := Read(strings.NewReader("{\"a\": 1}\n{\"b\": 2}\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	// Later lines must not clobber earlier ones.
	assert.Equal(t, `{"a": 1}`, string(lines[0].Text))
}

func TestReadOversizedLine(t *testing.T) {
	// A single line well past any internal buffer size must neither error
	// nor take the rest of the batch with it.
	big := fmt.Sprintf(`{"id": "1", "type": "click", "blob": "%s"}`, strings.Repeat("x", 2<<20))
	in := big + "\n" + `{"id": "2", "type": "view"}` + "\n"

	lines, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, big, string(lines[0].Text))
	assert.Equal(t, 2, lines[1].Number)
	assert.Equal(t, `{"id": "2", "type": "view"}`, string(lines[1].Text))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\": 1}\n"), 0644))

	lines, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Number)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.jsonl")
}
