package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string   credential file path
//	-v string   VPN client executable
//	-b string   browser executable
//	-l string   log level (debug, info, warn, error)
//	-t int      VPN connect timeout (seconds)
//
// Only flags present on the command line change cfg.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-v", "-b", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "credential file path")
	fs.StringVar(&cfg.VPNClientPath, "v", cfg.VPNClientPath, "VPN client executable")
	fs.StringVar(&cfg.BrowserPath, "b", cfg.BrowserPath, "browser executable")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	connectTimeout := fs.Int("t", int(cfg.ConnectTimeout.Seconds()), "VPN connect timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.ConnectTimeout = time.Duration(*connectTimeout) * time.Second
		}
	})
}
