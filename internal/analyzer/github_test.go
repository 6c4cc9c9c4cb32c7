package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRepo(t *testing.T) {
	owner, name, err := splitRepo("golang/go")
	require.NoError(t, err)
	assert.Equal(t, "golang", owner)
	assert.Equal(t, "go", name)

	for _, bad := range []string{"", "golang", "golang/", "/go", "a/b/c"} {
		_, _, err := splitRepo(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestCountDeadSymbols(t *testing.T) {
	out := "cmd/main.go:40:6: unreachable func: helper\n" +
		"internal/x.go:12:6: unreachable func: oldPath\n" +
		"some unrelated line\n"
	assert.Equal(t, int64(2), countDeadSymbols(out))
	assert.Equal(t, int64(0), countDeadSymbols(""))
}
