package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-h string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN
//	-k string   password pepper
//	-l string   log level
//
// Arguments for other flags are filtered out first, so -c/-config and
// anything meant for other components pass through.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"a", "h", "d", "k", "l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "h", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.PasswordPepper, "k", config.PasswordPepper, "password pepper")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
