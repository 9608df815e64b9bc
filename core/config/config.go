package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"

	SleepUnitMillis  = "ms"
	SleepUnitSeconds = "s"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// Configuration holds settings for script runs.
type Configuration struct {
	configFs  afero.Fs
	configDir string

	RequireRoot    bool     `json:"require_root"`
	SleepUnit      string   `json:"sleep_unit" validate:"oneof=ms s"`
	Color          string   `json:"color" validate:"oneof=always auto never"`
	Echo           bool     `json:"echo"`
	FailOnExitCode bool     `json:"fail_on_exit_code"`
	EventLog       string   `json:"event_log"`
	InheritEnv     bool     `json:"inherit_env"`
	Env            []string `json:"env" validate:"dive,required,envvar"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})
	if err := validate.RegisterValidation("envvar", isEnvEntry); err != nil {
		return err
	}

	return validate.Struct(c)
}

// isEnvEntry accepts KEY=VALUE with a non-empty key.
func isEnvEntry(fl validator.FieldLevel) bool {
	key, _, ok := strings.Cut(fl.Field().String(), "=")
	return ok && key != ""
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from, or "" for the
// built-in defaults.
func (c *Configuration) Dir() string {
	return c.configDir
}

// SleepDuration returns the length of one sleep step.
func (c *Configuration) SleepDuration() time.Duration {
	if c.SleepUnit == SleepUnitSeconds {
		return time.Second
	}
	return time.Millisecond
}

// Environ builds the environment for launched programs from base (usually
// os.Environ()) and the configured extra entries.
func (c *Configuration) Environ(base []string) []string {
	var out []string
	if c.InheritEnv {
		out = append(out, base...)
	}
	return append(out, c.Env...)
}

// EventLogPath returns the resolved event log path, or "" if disabled.
func (c *Configuration) EventLogPath() string {
	if c.EventLog == "" || filepath.IsAbs(c.EventLog) {
		return c.EventLog
	}
	return filepath.Join(c.configDir, c.EventLog)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	path := c.EventLogPath()
	if path == "" {
		return nil, fmt.Errorf("no event_log configured")
	}
	return c.fs().OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	path := c.EventLogPath()
	if path == "" {
		return nil, fmt.Errorf("no event_log configured")
	}
	return c.fs().OpenFile(path, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
