// Package config loads eeaconf settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/eeaconf/config.toml (or
// ~/.config/eeaconf/config.toml):
//
//	workspace = "/home/me/workspace"
//	local_repository = "/home/me/.m2/repository"
//	offline = false
//	cache_ttl = "24h"
//	closed_projects = ["old-project"]
//
//	[variables]
//	M2_REPO = "/home/me/.m2/repository"
//
//	[[repositories]]
//	id = "company"
//	url = "https://nexus.example.com/repository/maven-public"
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lastnpe/eeaconf/pkg/cache"
	"github.com/lastnpe/eeaconf/pkg/errors"
	"github.com/lastnpe/eeaconf/pkg/maven"
)

// AppName names the configuration and cache directories.
const AppName = "eeaconf"

// FileName is the configuration file name.
const FileName = "config.toml"

// M2Repo is the classpath variable pointing at the local repository.
const M2Repo = "M2_REPO"

// Repository is an additional remote repository.
type Repository struct {
	ID  string `toml:"id"`
	URL string `toml:"url"`
}

// Config holds all settings.
type Config struct {
	Workspace       string            `toml:"workspace"`
	LocalRepository string            `toml:"local_repository"`
	Offline         bool              `toml:"offline"`
	CacheTTL        Duration          `toml:"cache_ttl"`
	ClosedProjects  []string          `toml:"closed_projects"`
	Variables       map[string]string `toml:"variables"`
	Repositories    []Repository      `toml:"repositories"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LocalRepository: maven.DefaultLocalRepo(),
		CacheTTL:        Duration{cache.TTLMiss},
		Variables:       map[string]string{},
	}
}

// DefaultPath returns the configuration file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/eeaconf/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the file at path on top of [Default]. A missing file is not an
// error unless required is set.
//
// Returns [errors.ErrCodeInvalidConfig] for unparseable files and unknown
// keys.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot read %s", path)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks repository URLs.
func (c *Config) Validate() error {
	for _, r := range c.Repositories {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "repository %q has no id", r.URL)
		}
		if err := errors.ValidateURL(r.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "repository %s", r.ID)
		}
	}
	return nil
}

// ClasspathVariables returns the configured variables with M2_REPO
// defaulting to the local repository.
func (c *Config) ClasspathVariables() map[string]string {
	out := make(map[string]string, len(c.Variables)+1)
	for k, v := range c.Variables {
		out[k] = v
	}
	if _, ok := out[M2Repo]; !ok && c.LocalRepository != "" {
		out[M2Repo] = c.LocalRepository
	}
	return out
}

// MavenRepositories converts the configured repositories.
func (c *Config) MavenRepositories() []maven.Repository {
	out := make([]maven.Repository, 0, len(c.Repositories))
	for _, r := range c.Repositories {
		out = append(out, maven.Repository{ID: r.ID, URL: r.URL})
	}
	return out
}

// Encode renders c as TOML.
func (c *Config) Encode() (string, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
