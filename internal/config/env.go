package config

import (
	"os"

	"github.com/dmitrijs2005/vpnkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvStore    = "VPNKEEPER_STORE"
	EnvClient   = "VPNKEEPER_CLIENT"
	EnvBrowser  = "VPNKEEPER_BROWSER"
	EnvLogLevel = "VPNKEEPER_LOG_LEVEL"
)

// parseEnv loads the dotenv file named by -e/-env (or .env), ignoring a
// missing file, then overlays the VPNKEEPER_* variables that are set.
// Variables already present in the process environment are not replaced
// by the dotenv file.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		envFile = defaultEnvFile
	}
	_ = godotenv.Load(envFile)

	setFromEnv(&cfg.StorePath, EnvStore)
	setFromEnv(&cfg.VPNClientPath, EnvClient)
	setFromEnv(&cfg.BrowserPath, EnvBrowser)
	setFromEnv(&cfg.LogLevel, EnvLogLevel)
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
