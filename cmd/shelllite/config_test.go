package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, path, err := loadConfig(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfigTOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".shelllite.toml", []byte(`
parser = "geometric"
max_depth = 100
log_level = "info"
log_format = "json"
format = "json"
jobs = 3
extensions = [".shl", ".lite"]
`), 0o644))

	cfg, path, err := loadConfig(fs, "")
	require.NoError(t, err)
	assert.Equal(t, ".shelllite.toml", path)
	assert.Equal(t, fileConfig{
		Parser:     "geometric",
		MaxDepth:   100,
		LogLevel:   "info",
		LogFormat:  "json",
		Format:     "json",
		Jobs:       3,
		Extensions: []string{".shl", ".lite"},
	}, cfg)
	require.NoError(t, cfg.validate())
	assert.True(t, cfg.hasExtension("x/y.lite"))
	assert.False(t, cfg.hasExtension("x/y.txt"))
}

func TestLoadConfigYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".shelllite.yaml", []byte("parser: gbp\njobs: 2\n"), 0o644))

	cfg, _, err := loadConfig(fs, "")
	require.NoError(t, err)
	assert.Equal(t, "gbp", cfg.Parser)
	assert.Equal(t, 2, cfg.Jobs)

	require.NoError(t, afero.WriteFile(fs, "empty.yml", nil, 0o644))
	_, _, err = loadConfig(fs, "empty.yml")
	require.NoError(t, err)
}

func TestLoadConfigPrefersTOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".shelllite.toml", []byte("parser = \"rd\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, ".shelllite.yaml", []byte("parser: gbp\n"), 0o644))

	cfg, path, err := loadConfig(fs, "")
	require.NoError(t, err)
	assert.Equal(t, ".shelllite.toml", path)
	assert.Equal(t, "rd", cfg.Parser)
}

func TestLoadConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "typo.toml", []byte("parsr = \"rd\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "typo.yaml", []byte("parsr: rd\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "broken.toml", []byte("parser = \n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "config.json", []byte("{}"), 0o644))

	tests := map[string]string{
		"typo.toml":   "parsr",
		"typo.yaml":   "parsr",
		"broken.toml": "failed to parse config",
		"config.json": "unsupported format",
		"absent.toml": "read config",
	}
	for path, want := range tests {
		_, _, err := loadConfig(fs, path)
		require.Error(t, err, path)
		assert.Contains(t, err.Error(), want, path)
	}
}

func TestConfigValidateNamesKey(t *testing.T) {
	tests := []struct {
		mutate func(*fileConfig)
		want   string
	}{
		{func(c *fileConfig) { c.Parser = "lalr" }, "config: parser"},
		{func(c *fileConfig) { c.MaxDepth = -1 }, "config: max_depth"},
		{func(c *fileConfig) { c.LogLevel = "loud" }, "config: log_level"},
		{func(c *fileConfig) { c.LogFormat = "xml" }, "config: log_format"},
		{func(c *fileConfig) { c.Format = "toml" }, "config: format"},
		{func(c *fileConfig) { c.Jobs = -2 }, "config: jobs"},
		{func(c *fileConfig) { c.Extensions = []string{"shl"} }, "config: extensions"},
	}
	for _, tt := range tests {
		cfg := fileConfig{}
		cfg.applyDefaults()
		require.NoError(t, cfg.validate())
		tt.mutate(&cfg)
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.want)
	}
}
