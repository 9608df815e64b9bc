package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// DirName is the directory under the user's config directory that holds
// config.yaml.
const DirName = "start"

// DefaultDir returns the per-user configuration directory, e.g.
// $XDG_CONFIG_HOME/start on Linux. Scripts never pick up a config.yaml from
// the directory they are run in.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(base, DirName)
}

// Load loads the configuration from the directory on the host filesystem.
func Load(path string) (*Configuration, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs loads and validates the configuration from the directory path.
func LoadFs(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}

	out.configFs = fsys
	out.configDir = path
	return out, nil
}

// LoadOrDefault loads the configuration from path, falling back to the
// built-in defaults if there is no config file.
func LoadOrDefault(fsys afero.Fs, path string, log logrus.FieldLogger) (*Configuration, error) {
	cfg, err := LoadFs(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("No %s in %q, using defaults", ConfigurationName, path)
		cfg = Default()
		cfg.configFs = fsys
		cfg.configDir = path
		return cfg, nil
	case err != nil:
		return nil, err
	}

	log.Debugf("Loaded configuration from %q", filepath.Join(path, ConfigurationName))
	return cfg, nil
}

// Initialize writes the default configuration into dir unless one already
// exists, then loads it.
func Initialize(fsys afero.Fs, dir string, log logrus.FieldLogger) (*Configuration, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fsys, configPath)
	switch {
	case err != nil:
		return nil, err
	case exists:
		log.Infof("%s already exists, leaving it alone", configPath)
	default:
		log.Infof("Writing %s", configPath)
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0644); err != nil {
			return nil, err
		}
	}

	return LoadFs(fsys, dir)
}
