package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvPrefix  = "USERMANAGER_"
	DotEnvFile = ".env"
)

// parseEnv overlays USERMANAGER_* variables onto config. Variables from
// dotenvPath apply first and real environment variables win over them. A
// missing dotenv file is not an error. The process environment is never
// modified.
func parseEnv(config *Config, dotenvPath string) error {
	environ := map[string]string{}

	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", dotenvPath, err)
		}
		maps.Copy(environ, vars)
	}
	maps.Copy(environ, env.ToMap(os.Environ()))

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
