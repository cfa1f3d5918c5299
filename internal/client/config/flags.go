package config

import (
	"flag"
	"os"
	"time"

	"github.com/rentafind/rentafind/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   origin of the API reverse proxy (default from Config)
//	-b string   direct backend address override (strips the /api prefix)
//	-d string   path of the local session database
//	-l string   path or URL of the district/city JSON
//	-t int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerOrigin, "a", cfg.ServerOrigin, "origin of the API reverse proxy")
	fs.StringVar(&cfg.APIBaseOverride, "b", cfg.APIBaseOverride, "direct backend address override")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local session database")
	fs.StringVar(&cfg.LocationsPath, "l", cfg.LocationsPath, "path or URL of the district/city JSON")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
