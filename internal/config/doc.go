// Package config loads runtime configuration for vpnkeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after an optional dotenv file selected with
//     -e or -env (default ".env"; a missing file is ignored).
//  3. Optional JSON file (see parseJson) selected with -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   credential file path
//	-v string   VPN client executable
//	-b string   browser executable
//	-l string   log level
//	-t int      VPN connect timeout (seconds)
//
// Environment
//
//	VPNKEEPER_STORE, VPNKEEPER_CLIENT, VPNKEEPER_BROWSER, VPNKEEPER_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work.
// Comments and trailing commas are accepted.
// Every field is optional:
//
//	{
//	  "store_path": "D:\\vpn\\credentials.json",
//	  "vpn_client_path": "C:\\...\\wgsslvpnc.exe",
//	  "connect_timeout": "2m",
//	  "map_delay": "5s",
//	  "profiles": {
//	    "american": {
//	      "drive_domain": "BA-US",
//	      "folders": [{"drive": "Z:", "path": "\\\\fs02\\uschi"}]
//	    }
//	  }
//	}
package config
