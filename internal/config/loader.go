// Package config loads settings for the querygen command.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read as config keys.
// QUERYGEN_SOURCE sets "source", QUERYGEN_STATEMENTS sets "statements".
const EnvPrefix = "QUERYGEN_"

// Config file names looked up in the working directory, in order.
var configFiles = []string{"querygen.yaml", "querygen.yml"}

// Defaults.
const (
	DefaultSource = "."
	DefaultID     = "1"
)

// DefaultStatements are generated when none are configured. They need only
// the type's schema, not an instance.
var DefaultStatements = []string{"select-all", "select-by-id", "delete"}

// Config holds the generator settings.
type Config struct {
	// Go file or package directory to read structs from.
	Source string `koanf:"source"`
	// Import path used for default table names. Empty means the package name.
	Package string `koanf:"package"`
	// Struct to generate statements for. Empty means every struct with table
	// metadata.
	Type string `koanf:"type"`
	// Key value rendered in statements that select or delete by key.
	ID string `koanf:"id"`
	// Statement names, like "select-all" or "delete".
	Statements []string `koanf:"statements"`
	Verbose    bool     `koanf:"verbose"`

	// Config file that was read, if any. Not a config key.
	File string `koanf:"-"`
}

// Load reads the configuration. Precedence, highest first: flags that were
// set explicitly, environment variables, the config file, defaults.
//
// An empty cfgFile means querygen.yaml or querygen.yml in the working
// directory, when present. An explicit cfgFile must exist.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"source":     DefaultSource,
		"package":    "",
		"type":       "",
		"id":         DefaultID,
		"statements": DefaultStatements,
		"verbose":    false,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, errors.Wrap(err, "loading env vars")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "loading flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	cfg.File = path
	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// QUERYGEN_STATEMENTS is a comma-separated list.
func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "statements" {
		var out []string
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
		return key, out
	}
	return key, value
}
