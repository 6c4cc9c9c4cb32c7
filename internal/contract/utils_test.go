package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseBoolString covers the accepted spellings and rejections.
func TestParseBoolString(t *testing.T) {
	truthy := []string{"", "yes", "true", "1", "on", "YES", " True "}
	for _, s := range truthy {
		got, err := ParseBoolString(s)
		require.NoError(t, err, "input %q", s)
		assert.True(t, got, "input %q", s)
	}

	falsy := []string{"no", "false", "0", "off", "NO", " False "}
	for _, s := range falsy {
		got, err := ParseBoolString(s)
		require.NoError(t, err, "input %q", s)
		assert.False(t, got, "input %q", s)
	}

	for _, s := range []string{"maybe", "2", "yep"} {
		_, err := ParseBoolString(s)
		assert.Error(t, err, "input %q", s)
	}
}

// TestResolveProjectRoot checks directory resolution and rejections.
func TestResolveProjectRoot(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	// Empty means current directory.
	got, err = ResolveProjectRoot("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	// Missing path.
	_, err = ResolveProjectRoot(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	// Regular file, not a directory.
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = ResolveProjectRoot(file)
	assert.Error(t, err)
}

// TestTruncateMiddle pins length handling and the head/tail split.
func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxLen   int
		expected string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exactly10!", 10, "exactly10!"},
		{"truncated", "abcdefghijklmnop", 9, "abc...nop"},
		{"tiny budget", "abcdefgh", 3, "abc"},
		{"zero budget", "abcdefgh", 0, "abcdefgh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMiddle(tt.in, tt.maxLen)
			assert.Equal(t, tt.expected, got)
			if tt.maxLen > 0 {
				assert.LessOrEqual(t, len(got), max(tt.maxLen, len(tt.in)))
			}
		})
	}
}

// TestSelectOutputFile: empty path means stdout, a path means a fresh file.
func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.json")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, path, f.Name())
}
