// Package config loads the tracker's YAML configuration file.
//
// Everything has a working default: a missing config file is the
// normal case, not an error. The file exists for pointing the tracker
// at a different data directory or at a self-hosted provider (and, in
// tests, at httptest servers).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/polymath/internal/remotelog"
	"github.com/roach88/polymath/internal/session"
)

// DefaultFileName is the config file looked up inside the data
// directory when no explicit path is given.
const DefaultFileName = "config.yaml"

// databaseFileName is the local snapshot database inside DataDir.
const databaseFileName = "polymath.db"

// Config holds the tracker's runtime settings.
type Config struct {
	// DataDir holds the local snapshot database and the default
	// config file location.
	DataDir string `yaml:"data_dir"`

	// LogTitle is the unique name of the remote log resource.
	LogTitle string `yaml:"log_title"`

	// Provider endpoints.
	DriveBaseURL  string `yaml:"drive_base_url"`
	SheetsBaseURL string `yaml:"sheets_base_url"`
	UserinfoURL   string `yaml:"userinfo_url"`
}

// Default returns the configuration used when no file overrides it.
// DataDir follows the platform user config dir convention.
func Default() Config {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return Config{
		DataDir:       filepath.Join(base, "polymath"),
		LogTitle:      remotelog.DefaultLogTitle,
		DriveBaseURL:  remotelog.DefaultDriveBaseURL,
		SheetsBaseURL: remotelog.DefaultSheetsBaseURL,
		UserinfoURL:   session.DefaultUserinfoURL,
	}
}

// Load reads the config file at path, applying defaults for any field
// the file leaves unset. An empty path means "use the default
// location"; a missing file at either location yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// DatabasePath returns the snapshot database location inside DataDir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, databaseFileName)
}

// EnsureDataDir creates DataDir if it does not exist.
func (c Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return nil
}
