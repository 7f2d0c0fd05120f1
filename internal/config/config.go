// Package config loads the Encrypty client configuration from a YAML file.
//
// A missing file is not an error: Default() is used instead. Every loaded
// configuration is validated before it is returned.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"Encrypty/internal/errors"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Config holds client settings shared by the GUI, web and CLI hosts.
type Config struct {
	// BackendURL is the base URL of the encryption service.
	BackendURL string `yaml:"backend_url" validate:"required,url"`

	// Listen is the address the web host binds to.
	Listen string `yaml:"listen" validate:"required,hostname_port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"required,oneof=debug info warn error"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" validate:"required,oneof=text json"`

	// LogFile, when set, receives logs instead of stderr.
	LogFile string `yaml:"log_file" validate:"omitempty,logpath"`
}

// Default returns the built-in configuration.
// The backend default matches the port the reference backend listens on.
func Default() Config {
	return Config{
		BackendURL: "http://127.0.0.1:5000",
		Listen:     "127.0.0.1:8080",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/encrypty/config.yaml, falling back to
// the user config directory of the platform.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "encrypty", "config.yaml")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("logpath", validateLogPath)
	return v
}

// validateLogPath accepts a file path whose parent directory exists.
// Paths pointing at an existing directory are rejected.
func validateLogPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}
	if info, err := os.Stat(path); err == nil {
		return !info.IsDir()
	}
	parent, err := os.Stat(filepath.Dir(path))
	return err == nil && parent.IsDir()
}

// Load reads the file at path on top of Default().
// An empty path means DefaultPath(); a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.NewFileError("read", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %v", errors.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field and reports the first failures by YAML key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Marshal renders the configuration as YAML, e.g. for `encrypty config`.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
