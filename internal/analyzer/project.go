package analyzer

import (
	"os"
	"path/filepath"
)

// projectMarker ties an ecosystem label to the file that identifies it.
type projectMarker struct {
	label string
	file  string
}

// projectMarkers is checked in order; a project can carry several labels.
var projectMarkers = []projectMarker{
	{"go", "go.mod"},
	{"node", "package.json"},
	{"rust", "Cargo.toml"},
	{"python", "pyproject.toml"},
	{"python", "setup.py"},
	{"python", "requirements.txt"},
	{"java-maven", "pom.xml"},
	{"java-gradle", "build.gradle"},
	{"java-gradle", "build.gradle.kts"},
	{"ruby", "Gemfile"},
	{"php", "composer.json"},
	{"elixir", "mix.exs"},
}

// DetectProjectTypes returns the ecosystem labels of the project root, in
// marker order without duplicates. An unrecognized project yields nil.
func DetectProjectTypes(root string) []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, m := range projectMarkers {
		if _, ok := seen[m.label]; ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, m.file)); err == nil {
			labels = append(labels, m.label)
			seen[m.label] = struct{}{}
		}
	}
	return labels
}
