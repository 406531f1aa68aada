// Package config resolves the one piece of external configuration this
// repository has: which file the database lives in. Process argument
// handling is explicitly a thin, out-of-scope collaborator (see spec.md
// §1), so this stays a single resolved string, not a general settings
// layer.
package config

import "github.com/spf13/viper"

const (
	// DefaultDBPath is used when no path is given on the command line or
	// through the environment.
	DefaultDBPath = "test.db"
	// EnvPrefix is the environment variable prefix viper binds against;
	// the path variable is BPTREEDB_PATH.
	EnvPrefix = "BPTREEDB"
)

// Config holds the resolved runtime configuration.
type Config struct {
	DBPath string
}

// Load resolves the database path with the following priority: the first
// positional argument (if present and non-empty), then the BPTREEDB_PATH
// environment variable, then DefaultDBPath.
func Load(args []string) Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("path", DefaultDBPath)

	if len(args) > 0 && args[0] != "" {
		v.Set("path", args[0])
	}

	return Config{DBPath: v.GetString("path")}
}
