package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/flagx"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is the on-disk shape of the optional config file. Absent
// fields leave the current value alone.
type JsonConfig struct {
	StorePath     string `json:"store_path"`
	VPNClientPath string `json:"vpn_client_path"`
	VPNImageName  string `json:"vpn_image_name"`
	BrowserPath   string `json:"browser_path"`
	LogLevel      string `json:"log_level"`

	CommandTimeout *timex.Duration `json:"command_timeout"`
	KillTimeout    *timex.Duration `json:"kill_timeout"`
	ConnectTimeout *timex.Duration `json:"connect_timeout"`
	ShutdownDelay  *timex.Duration `json:"shutdown_delay"`
	MapDelay       *timex.Duration `json:"map_delay"`
	SettleDelay    *timex.Duration `json:"settle_delay"`
	WaitDelay      *timex.Duration `json:"wait_delay"`

	Profiles map[string]JsonProfile `json:"profiles"`
}

type JsonProfile struct {
	Server         string                  `json:"server"`
	UsernamePrefix string                  `json:"username_prefix"`
	DriveDomain    string                  `json:"drive_domain"`
	PortalURL      string                  `json:"portal_url"`
	Folders        *[]models.FolderMapping `json:"folders"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Comments
// and trailing commas are allowed.
// Panics on read or unmarshal errors, or on an unknown profile name.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.VPNClientPath, jc.VPNClientPath)
	setString(&cfg.VPNImageName, jc.VPNImageName)
	setString(&cfg.BrowserPath, jc.BrowserPath)
	setString(&cfg.LogLevel, jc.LogLevel)

	setDuration(&cfg.CommandTimeout, jc.CommandTimeout)
	setDuration(&cfg.KillTimeout, jc.KillTimeout)
	setDuration(&cfg.ConnectTimeout, jc.ConnectTimeout)
	setDuration(&cfg.ShutdownDelay, jc.ShutdownDelay)
	setDuration(&cfg.MapDelay, jc.MapDelay)
	setDuration(&cfg.SettleDelay, jc.SettleDelay)
	setDuration(&cfg.WaitDelay, jc.WaitDelay)

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[models.ProfileID]ProfileConfig)
	}
	for name, jp := range jc.Profiles {
		id, err := models.ParseProfileID(name)
		if err != nil {
			panic(err)
		}
		pc := cfg.Profiles[id]
		setString(&pc.Server, jp.Server)
		setString(&pc.UsernamePrefix, jp.UsernamePrefix)
		setString(&pc.DriveDomain, jp.DriveDomain)
		setString(&pc.PortalURL, jp.PortalURL)
		if jp.Folders != nil {
			pc.Folders = *jp.Folders
		}
		cfg.Profiles[id] = pc
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
