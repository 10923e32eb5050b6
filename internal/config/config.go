package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/models"
)

const storeFileName = "credentials.json"

// ProfileConfig holds the fixed, non-secret settings of one VPN profile.
//
// Fields:
//   - Server: default VPN server offered when no credentials are saved.
//   - UsernamePrefix: domain prefix pre-filled into the username.
//   - DriveDomain: domain used for `net use /user:<DriveDomain>\<user>`.
//   - PortalURL: remote desktop web portal of the region.
//   - Folders: drives mapped when the profile has no saved folders.
type ProfileConfig struct {
	Server         string
	UsernamePrefix string
	DriveDomain    string
	PortalURL      string
	Folders        []models.FolderMapping
}

// Config holds runtime settings for vpnkeeper.
//
// Units: every delay and timeout is a time.Duration.
type Config struct {
	StorePath     string
	VPNClientPath string
	VPNImageName  string
	BrowserPath   string
	LogLevel      string

	CommandTimeout time.Duration
	KillTimeout    time.Duration
	ConnectTimeout time.Duration

	ShutdownDelay time.Duration
	MapDelay      time.Duration
	SettleDelay   time.Duration
	WaitDelay     time.Duration

	Profiles map[models.ProfileID]ProfileConfig
}

// LoadDefaults populates c with the values the tool shipped with.
func (c *Config) LoadDefaults() {
	c.StorePath = defaultStorePath()
	c.VPNClientPath = `C:\Program Files (x86)\WatchGuard\WatchGuard Mobile VPN with SSL\wgsslvpnc.exe`
	c.VPNImageName = "wgsslvpnc.exe"
	c.BrowserPath = `C:\Program Files\Google\Chrome\Application\chrome.exe`
	c.LogLevel = "info"

	c.CommandTimeout = 15 * time.Second
	c.KillTimeout = 10 * time.Second
	c.ConnectTimeout = 120 * time.Second

	c.ShutdownDelay = 3 * time.Second
	c.MapDelay = 5 * time.Second
	c.SettleDelay = 1 * time.Second
	c.WaitDelay = 2 * time.Second

	c.Profiles = map[models.ProfileID]ProfileConfig{
		models.German: {
			Server:         "vpn.broetje-automation.de",
			UsernamePrefix: `banet.loc\`,
			DriveDomain:    "BANET",
			PortalURL:      "https://rdweb.broetje-automation.de/RDWeb/webclient/",
			Folders:        []models.FolderMapping{{Drive: "N:", Path: `\\banet.loc\baw`}},
		},
		models.American: {
			Server:         "vpn.ba-us.com",
			UsernamePrefix: `ba-us.com\`,
			DriveDomain:    "BA-US",
			PortalURL:      "https://rdweb.ba-us.com/RDWeb/webclient/",
		},
	}
}

// Profile returns the settings of id; the zero value for an unknown id.
func (c *Config) Profile(id models.ProfileID) ProfileConfig {
	return c.Profiles[id]
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment (after loading an optional dotenv file), an optional JSON
// file and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// defaultStorePath puts the credential file beside the executable.
func defaultStorePath() string {
	exe, err := os.Executable()
	if err != nil {
		return storeFileName
	}
	return filepath.Join(filepath.Dir(exe), storeFileName)
}
