package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shelllite/shelllite/lite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{".shelllite.toml", ".shelllite.yaml", ".shelllite.yml"}

// fileConfig mirrors the project configuration file. Zero values mean unset.
type fileConfig struct {
	Parser     string   `toml:"parser" yaml:"parser"`
	MaxDepth   int      `toml:"max_depth" yaml:"max_depth"`
	LogLevel   string   `toml:"log_level" yaml:"log_level"`
	LogFormat  string   `toml:"log_format" yaml:"log_format"`
	Format     string   `toml:"format" yaml:"format"`
	Jobs       int      `toml:"jobs" yaml:"jobs"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// loadConfig reads path, or the first default file that exists when path is
// empty. A missing default file is not an error.
func loadConfig(fs afero.Fs, path string) (fileConfig, string, error) {
	var cfg fileConfig
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			ok, err := afero.Exists(fs, candidate)
			if err != nil {
				return cfg, "", fmt.Errorf("stat %s: %w", candidate, err)
			}
			if ok {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, "", nil
		}
	}

	path = os.ExpandEnv(path)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, path, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, path, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, path, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, path, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return cfg, path, fmt.Errorf("config %s: unsupported format %q (want .toml or .yaml)", path, ext)
	}
	return cfg, path, nil
}

// applyDefaults fills unset keys.
func (c *fileConfig) applyDefaults() {
	if c.Parser == "" {
		c.Parser = string(lite.ParserRD)
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = lite.DefaultMaxDepth
	}
	if c.LogLevel == "" {
		c.LogLevel = "warning"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Format == "" {
		c.Format = "yaml"
	}
	if c.Jobs == 0 {
		c.Jobs = runtime.NumCPU()
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".shl"}
	}
}

// validate checks every key and names the first bad one.
func (c *fileConfig) validate() error {
	if _, err := lite.ParseParserKind(c.Parser); err != nil {
		return fmt.Errorf("config: parser: %w", err)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth must be positive, got %d", c.MaxDepth)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format: unknown format %q (want text or json)", c.LogFormat)
	}
	switch c.Format {
	case "yaml", "yml", "json":
	default:
		return fmt.Errorf("config: format: unknown output format %q (want yaml or json)", c.Format)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("config: jobs must be positive, got %d", c.Jobs)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("config: extensions: %q must look like \".shl\"", ext)
		}
	}
	return nil
}

func (c *fileConfig) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
