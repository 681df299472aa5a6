package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSave(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "save.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"plain", "3\n", 3},
		{"no newline", "5", 5},
		{"surrounding space", "  4 \t\n", 4},
		{"max", "13\n", 13},
		{"only first line", "2\n9\n", 2},
		{"empty", "", 1},
		{"blank line", "\n7\n", 1},
		{"zero", "0\n", 1},
		{"too large", "14\n", 1},
		{"negative", "-3\n", 1},
		{"plus sign", "+3\n", 1},
		{"text", "abc\n", 1},
		{"mixed", "3a\n", 1},
		{"float", "2.0\n", 1},
		{"huge", "99999999999999999999999\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeSave(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Value())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Value())
}

func TestLoadUnreadable(t *testing.T) {
	// A directory cannot be read as a save file.
	c, err := Load(t.TempDir())
	assert.Equal(t, 1, c.Value())
	if err != nil {
		assert.Contains(t, err.Error(), "progress:")
	}
}

func TestRaiseMonotonic(t *testing.T) {
	c := New("")
	assert.True(t, c.Raise(3))
	assert.Equal(t, 3, c.Value())

	assert.False(t, c.Raise(3), "raising to the same value is a no-op")
	assert.False(t, c.Raise(2), "never lowers")
	assert.Equal(t, 3, c.Value())

	assert.True(t, c.Raise(40))
	assert.Equal(t, Max, c.Value(), "clamped")
	assert.False(t, c.Raise(Max))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "save.txt")
	c, err := Load(path)
	require.NoError(t, err)

	c.Raise(4)
	require.NoError(t, c.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "4\n", string(data))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Value())
}

func TestSaveOverwrites(t *testing.T) {
	path := writeSave(t, "2\nleftover junk that is longer\n")
	c, err := Load(path)
	require.NoError(t, err)
	c.Raise(13)
	require.NoError(t, c.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "13\n", string(data))
}

func TestResetDoesNotSave(t *testing.T) {
	path := writeSave(t, "5\n")
	c, err := Load(path)
	require.NoError(t, err)

	c.Reset()
	assert.Equal(t, 1, c.Value())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5\n", string(data))
}

func TestSaveWithoutPath(t *testing.T) {
	c := New("")
	c.Raise(2)
	assert.NoError(t, c.Save())
}
