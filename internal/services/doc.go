// Package services contains the application services behind the vpnkeeper
// CLI: VPN connect/disconnect, drive mapping, the remote desktop portal,
// and the file browser. Services never block the prompt themselves; the
// CLI calls the slow ones from background goroutines.
package services
