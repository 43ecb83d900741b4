package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/eckit/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator, nil disables validation
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithWatch enables or disables automatic configuration watching
func WithWatch(enable bool) Option {
	return func(c *Config) {
		c.watch = enable
	}
}

// WithOnChange registers a function called after every successful reload
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		c.onChange = append(c.onChange, fn)
	}
}

// FileOption configures a FileLoader
type FileOption func(*FileLoader)

// WithEnvPrefix sets the prefix of environment overrides,
// e.g. "ECCD" maps server.addr to ECCD_SERVER_ADDR
func WithEnvPrefix(prefix string) FileOption {
	return func(l *FileLoader) {
		l.envPrefix = prefix
	}
}

// WithDefaults registers default values keyed by dotted config path
func WithDefaults(defaults map[string]any) FileOption {
	return func(l *FileLoader) {
		l.defaults = defaults
	}
}

// WithOptional makes a missing config file fall back to defaults and env
func WithOptional() FileOption {
	return func(l *FileLoader) {
		l.optional = true
	}
}
