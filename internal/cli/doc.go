// Package cli implements the interactive vpnkeeper client.
//
// The App type wires configuration, the credential store and the services
// together and runs a read–eval–print loop on stdin. Slow commands
// (connect, disconnect, map) run as background jobs so the prompt stays
// responsive; their outcome is reported through the log stream.
package cli
