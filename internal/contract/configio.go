package contract

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is looked up in the project root and $HOME when no
// explicit --config path is given.
const DefaultConfigFileName = ".repopulse.yaml"

// LoadHealthConfig reads, merges and validates the health configuration.
//
// Resolution order: explicit path if non-empty, otherwise DefaultConfigFileName
// in searchDir then in $HOME. A missing file is not an error; the built-in
// defaults are returned. Any present-but-broken file is fatal.
func LoadHealthConfig(path string, searchDir string) (*HealthConfig, error) {
	resolved := path
	if resolved == "" {
		for _, dir := range []string{searchDir, os.Getenv("HOME")} {
			if dir == "" {
				continue
			}
			candidate := filepath.Join(dir, DefaultConfigFileName)
			if _, err := os.Stat(candidate); err == nil {
				resolved = candidate
				break
			}
		}
	}

	if resolved == "" {
		cfg := DefaultHealthConfig()
		if cerr := Validate(cfg); cerr != nil {
			return nil, cerr
		}
		return cfg, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if path == "" && errors.Is(err, fs.ErrNotExist) {
			// Discovered candidate raced with deletion; fall back to defaults.
			return DefaultHealthConfig(), nil
		}
		return nil, wrapConfigError(FileReadKind, resolved, "cannot read config file", err)
	}

	var raw HealthConfigRawInput
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, wrapConfigError(InvalidDocumentKind, resolved, "cannot parse config file", err)
	}

	cfg := MergeRawInput(&raw)
	if cerr := Validate(cfg); cerr != nil {
		return nil, cerr
	}
	return cfg, nil
}

// SaveHealthConfig serializes a configuration to the given path. Saving a
// validated configuration and loading it back yields a field-for-field equal,
// re-validating value.
func SaveHealthConfig(cfg *HealthConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return wrapConfigError(EncodingKind, path, "cannot encode config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return wrapConfigError(FileWriteKind, path, "cannot write config file", err)
	}
	return nil
}
