package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
	"github.com/dmitrijs2005/usermanager/internal/timex"
)

// JsonConfig is the JSON file layout. ShutdownTimeout accepts "10s" as
// well as integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	PasswordPepper   string         `json:"password_pepper"`
	Argon2Time       uint32         `json:"argon2_time"`
	Argon2MemoryKiB  uint32         `json:"argon2_memory_kib"`
	Argon2Threads    uint8          `json:"argon2_threads"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c or -config onto config. Keys
// absent from the file keep their current values.
func parseJson(config *Config, args []string) error {

	jsonConfigFile := flagx.ConfigFile(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{
		EndpointAddrGRPC: config.EndpointAddrGRPC,
		EndpointAddrHTTP: config.EndpointAddrHTTP,
		DatabaseDSN:      config.DatabaseDSN,
		PasswordPepper:   config.PasswordPepper,
		Argon2Time:       config.Argon2Time,
		Argon2MemoryKiB:  config.Argon2MemoryKiB,
		Argon2Threads:    config.Argon2Threads,
		LogLevel:         config.LogLevel,
		LogFormat:        config.LogFormat,
		ShutdownTimeout:  timex.Duration{Duration: config.ShutdownTimeout},
	}

	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.PasswordPepper = c.PasswordPepper
	config.Argon2Time = c.Argon2Time
	config.Argon2MemoryKiB = c.Argon2MemoryKiB
	config.Argon2Threads = c.Argon2Threads
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	return nil
}
