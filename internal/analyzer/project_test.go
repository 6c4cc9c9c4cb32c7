package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectProjectTypes(t *testing.T) {
	t.Run("empty tree", func(t *testing.T) {
		assert.Nil(t, DetectProjectTypes(t.TempDir()))
	})

	t.Run("go project", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "go.mod", "module x\n")
		assert.Equal(t, []string{"go"}, DetectProjectTypes(root))
	})

	t.Run("mixed project", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "go.mod", "module x\n")
		writeFile(t, root, "package.json", "{}\n")
		assert.Equal(t, []string{"go", "node"}, DetectProjectTypes(root))
	})

	t.Run("python markers deduplicated", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "pyproject.toml", "[project]\n")
		writeFile(t, root, "setup.py", "\n")
		writeFile(t, root, "requirements.txt", "\n")
		assert.Equal(t, []string{"python"}, DetectProjectTypes(root))
	})
}
