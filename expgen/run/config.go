package run

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the directory expgen runs in.
const DefaultConfigFile = ".expgen.yaml"

// Config holds the project-wide generator settings.
type Config struct {
	// Suffix is appended to the interface name to name the mock when --name is not given.
	Suffix string `yaml:"suffix"`
	// Reorder sorts the declarations of generated files.
	Reorder bool `yaml:"reorder"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{Suffix: "Mock", Reorder: true}
}

// LoadConfig reads name through fileSys. A missing file yields DefaultConfig, and keys the
// file leaves out keep their defaults.
func LoadConfig(fileSys FileSystem, name string) (Config, error) {
	cfg := DefaultConfig()

	data, err := fileSys.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", name, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err = decoder.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", name, err)
	}

	if cfg.Suffix == "" {
		return Config{}, fmt.Errorf("%w: suffix in %s", errEmptySetting, name)
	}

	return cfg, nil
}

var errEmptySetting = errors.New("setting must not be empty")
