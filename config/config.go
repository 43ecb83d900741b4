package config

import (
	"reflect"
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/eckit/core/validator"
	"github.com/kochabx/eckit/log"
)

// Config binds a loader to a target struct and keeps it current.
//
// Reloads decode into a fresh value first; the target is replaced only
// when the new value decodes and validates, so a bad edit on disk leaves
// the running configuration as it was.
type Config struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	watch    bool
	onChange []func()
}

// New creates a Config for target, which must be a non-nil pointer.
// Without WithLoader it reads config.yaml from the working directory.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		watch:    true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = NewFileLoader("config.yaml", []string{"."}, c.viper, c.validate)
	}
	return c
}

// Load decodes the configuration straight into the target.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loader.Load(c.target)
}

// Reload decodes into a scratch value and swaps it in on success.
func (c *Config) Reload() error {
	rv := reflect.ValueOf(c.target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return c.Load()
	}

	next := reflect.New(rv.Elem().Type())
	if err := c.loader.Load(next.Interface()); err != nil {
		return err
	}

	c.mu.Lock()
	rv.Elem().Set(next.Elem())
	c.mu.Unlock()
	return nil
}

// Read runs fn under the read lock so fn never observes a swap in progress.
func (c *Config) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Watch reloads on every change of the source and then runs the
// WithOnChange hooks. A rejected reload is logged and the hooks are skipped.
func (c *Config) Watch() error {
	if !c.watch {
		return nil
	}

	return c.loader.Watch(func() {
		if err := c.Reload(); err != nil {
			log.Error().Err(err).Str("source", c.loader.Source()).Msg("config reload rejected, keeping previous")
			return
		}
		for _, fn := range c.onChange {
			fn()
		}
		log.Info().Str("source", c.loader.Source()).Msg("config reloaded")
	})
}

// Source returns the file the loader read, or "" when only defaults and
// environment were used.
func (c *Config) Source() string {
	return c.loader.Source()
}

// GetViper returns the underlying viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
