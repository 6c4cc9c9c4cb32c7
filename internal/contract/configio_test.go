package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadHealthConfigMissingFile: no file anywhere means defaults, not an
// error.
func TestLoadHealthConfigMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadHealthConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultHealthConfig(), cfg)
}

// TestLoadHealthConfigExplicitMissingPath: an explicit path that does not
// exist is fatal, unlike the search fallback.
func TestLoadHealthConfigExplicitMissingPath(t *testing.T) {
	_, err := LoadHealthConfig(filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.Error(t, err)
	assert.True(t, IsConfigErrorKind(err, FileReadKind))
}

// TestLoadHealthConfigPartialOverride: a file naming only some keys overrides
// exactly those and keeps defaults for the rest.
func TestLoadHealthConfigPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	doc := `
version: 1
weights:
  lintErrors: 0.1
thresholds:
  gitRecencyWarnDays: 14
ci:
  failUnder: 75
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadHealthConfig("", dir)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Weights.LintErrors)
	assert.Equal(t, 14.0, cfg.Thresholds.GitRecencyWarnDays)
	assert.Equal(t, 75, cfg.CI.FailUnder)

	// Untouched keys keep their defaults.
	def := DefaultHealthConfig()
	assert.Equal(t, def.Weights.GitRecency, cfg.Weights.GitRecency)
	assert.Equal(t, def.Thresholds.GitRecencyFailDays, cfg.Thresholds.GitRecencyFailDays)
}

// TestLoadHealthConfigOverrideBreaksWeightSum: the merged document is what
// gets validated, so an override that pushes the total past 1.0 on top of
// defaults that already sum to 1.0 is rejected on load.
func TestLoadHealthConfigOverrideBreaksWeightSum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oversum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  lintErrors: 0.5\n"), 0o644))

	_, err := LoadHealthConfig(path, "")
	require.Error(t, err)
	assert.True(t, IsConfigErrorKind(err, InvalidWeightsKind))
}

// TestLoadHealthConfigZeroOverride: explicitly setting a weight to zero is an
// override, not an absence.
func TestLoadHealthConfigZeroOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  gitRecency: 0\n"), 0o644))

	cfg, err := LoadHealthConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Weights.GitRecency)
}

// TestLoadHealthConfigMalformedDocument: broken YAML is fatal.
func TestLoadHealthConfigMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights: [not, a, mapping"), 0o644))

	_, err := LoadHealthConfig(path, "")
	require.Error(t, err)
	assert.True(t, IsConfigErrorKind(err, InvalidDocumentKind))
}

// TestLoadHealthConfigInvalidValues: a parseable file with invalid semantics
// fails validation on load.
func TestLoadHealthConfigInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  lintErrors: -0.5\n"), 0o644))

	_, err := LoadHealthConfig(path, "")
	require.Error(t, err)
	assert.True(t, IsConfigErrorKind(err, InvalidWeightsKind))
}

// TestSaveLoadRoundTrip: save then load yields a field-for-field equal config
// that still validates.
func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultHealthConfig()
	cfg.Weights.LintWarnings = 0.25
	cfg.Weights.DepsOutdated = 0.05
	cfg.Thresholds.LintWarningsFail = 250
	cfg.CI.FailUnder = 42
	cfg.Plugins = []string{"coverage-report"}
	require.Nil(t, Validate(cfg))

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	require.NoError(t, SaveHealthConfig(cfg, path))

	loaded, err := LoadHealthConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Nil(t, Validate(loaded))
}

// TestLoadHealthConfigHomeFallback: $HOME is searched after the project root.
func TestLoadHealthConfigHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(
		filepath.Join(home, DefaultConfigFileName),
		[]byte("ci:\n  failUnder: 90\n"), 0o644))

	cfg, err := LoadHealthConfig("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.CI.FailUnder)
}
