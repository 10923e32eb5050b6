// Package store persists vpnkeeper credentials in a single JSON document.
//
// # Layout
//
//	{
//	  "german":   {"server": "...", "username": "...", "password": "..."},
//	  "american": {"server": "...", "username": "...", "password": "..."},
//	  "german_network_folders":   [{"drive": "N:", "path": "\\\\banet.loc\\baw"}],
//	  "american_network_folders": [],
//	  "custom_servers": [{"description": "...", "address": "\\\\host\\share"}]
//	}
//
// # Semantics
//
// Load re-parses the file on every call. A missing, unreadable or
// malformed file loads as an empty Document; it is never an error for the
// caller. Save is read-merge-write: the file is read again, only the keys
// being updated are replaced, and the whole document is written back.
// Keys the store does not know about are carried over untouched.
//
// Passwords are stored in clear text and there is no schema version. The
// write is a plain file overwrite: no temp file, no backup. Within one
// process saves are serialised; across processes the last write wins.
package store
