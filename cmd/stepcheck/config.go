package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "stepcheck.toml"

type projectConfig struct {
	Validate validateConfig `toml:"validate"`
	Cache    cacheConfig    `toml:"cache"`
}

type validateConfig struct {
	CheckReferences bool     `toml:"check_references"`
	CheckHeader     bool     `toml:"check_header"`
	MaxDiagnostics  int      `toml:"max_diagnostics"`
	Jobs            int      `toml:"jobs"`
	Format          string   `toml:"format"`
	Extensions      []string `toml:"extensions"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// findConfig ищет stepcheck.toml от startDir вверх до корня.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// configBinding maps a TOML key to the flag it provides a default for.
// Keys under [validate] and [cache] only reach the validate command;
// max_diagnostics applies everywhere.
type configBinding struct {
	key   []string
	flag  string
	value func(cfg *projectConfig) string
}

var configBindings = []configBinding{
	{[]string{"validate", "check_references"}, "check-refs", func(c *projectConfig) string { return strconv.FormatBool(c.Validate.CheckReferences) }},
	{[]string{"validate", "check_header"}, "check-header", func(c *projectConfig) string { return strconv.FormatBool(c.Validate.CheckHeader) }},
	{[]string{"validate", "max_diagnostics"}, "max-diagnostics", func(c *projectConfig) string { return strconv.Itoa(c.Validate.MaxDiagnostics) }},
	{[]string{"validate", "jobs"}, "jobs", func(c *projectConfig) string { return strconv.Itoa(c.Validate.Jobs) }},
	{[]string{"validate", "format"}, "format", func(c *projectConfig) string { return c.Validate.Format }},
	{[]string{"validate", "extensions"}, "ext", func(c *projectConfig) string { return strings.Join(c.Validate.Extensions, ",") }},
	{[]string{"cache", "enabled"}, "cache", func(c *projectConfig) string { return strconv.FormatBool(c.Cache.Enabled) }},
	{[]string{"cache", "dir"}, "cache-dir", func(c *projectConfig) string { return c.Cache.Dir }},
}

// loadProjectConfig decodes path and rejects keys it does not know.
func loadProjectConfig(path string) (projectConfig, toml.MetaData, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, meta, nil
}

// loadConfig applies stepcheck.toml to the flags of cmd that the user did
// not set explicitly. The file is optional unless --config names it.
func loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return err
		}
		path = found
	}

	cfg, meta, err := loadProjectConfig(path)
	if err != nil {
		return err
	}
	return applyConfig(cmd, &cfg, meta)
}

func applyConfig(cmd *cobra.Command, cfg *projectConfig, meta toml.MetaData) error {
	for _, b := range configBindings {
		if !meta.IsDefined(b.key...) {
			continue
		}
		if b.flag != "max-diagnostics" && cmd.Name() != "validate" {
			continue
		}
		flag := cmd.Flags().Lookup(b.flag)
		if flag == nil || flag.Changed {
			continue
		}
		if err := flag.Value.Set(b.value(cfg)); err != nil {
			return fmt.Errorf("config %s: %w", strings.Join(b.key, "."), err)
		}
	}
	return nil
}
