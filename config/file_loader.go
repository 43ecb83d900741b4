package config

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/eckit/core/validator"
	kerrors "github.com/kochabx/eckit/errors"
)

// FileLoader layers a YAML/JSON/TOML file over defaults, with environment
// variables on top. Keys map to env as PREFIX_SECTION_KEY.
type FileLoader struct {
	viper     *viper.Viper
	validate  validator.Validator
	name      string
	paths     []string
	envPrefix string
	defaults  map[string]any
	optional  bool
	found     bool
}

// NewFileLoader creates a new file loader searching paths for name
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator, opts ...FileOption) *FileLoader {
	l := &FileLoader{
		viper:    v,
		paths:    paths,
		name:     name,
		validate: validate,
	}
	for _, opt := range opts {
		opt(l)
	}

	// 扩展名决定解析格式
	configType := strings.TrimPrefix(path.Ext(name), ".")

	for _, configPath := range paths {
		v.AddConfigPath(configPath)
	}
	v.SetConfigName(name)
	v.SetConfigType(configType)

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	if l.envPrefix != "" {
		v.SetEnvPrefix(l.envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return l
}

// NewPathLoader creates a file loader for an explicit file path
func NewPathLoader(file string, v *viper.Viper, validate validator.Validator, opts ...FileOption) *FileLoader {
	dir, name := filepath.Split(file)
	if dir == "" {
		dir = "."
	}
	return NewFileLoader(name, []string{dir}, v, validate, opts...)
}

// Load reads the file, overlays defaults and environment, then decodes and
// validates into target. A missing file is 404 unless WithOptional was set;
// a file that does not parse or validate is 400.
func (l *FileLoader) Load(target any) error {
	l.found = true
	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && l.optional:
			l.found = false
		case errors.As(err, &notFound):
			return kerrors.NotFound("config file not found: %v", err).WithCause(err)
		default:
			return kerrors.BadRequest("config file unreadable: %v", err).WithCause(err)
		}
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return kerrors.BadRequest("config decode failed: %v", err).WithCause(err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return kerrors.BadRequest("config validation failed: %v", err).WithCause(err)
		}
	}
	return nil
}

// Watch registers callback for writes to the file that was read.
// Nothing is watched when the optional file was absent.
func (l *FileLoader) Watch(callback func()) error {
	if !l.found {
		return nil
	}

	l.viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Has(fsnotify.Write) || e.Has(fsnotify.Create) {
			if callback != nil {
				callback()
			}
		}
	})

	l.viper.WatchConfig()
	return nil
}

// Source returns the path of the file that was read, if any.
func (l *FileLoader) Source() string {
	if !l.found {
		return ""
	}
	return l.viper.ConfigFileUsed()
}
