// Package models defines the persisted entities of vpnkeeper: VPN
// profiles, their folder mappings, and custom server shortcuts.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
)

// ProfileID names a VPN identity. It doubles as the top-level key of the
// profile in the credential document.
type ProfileID string

const (
	German   ProfileID = "german"
	American ProfileID = "american"
)

// Profiles lists every known profile in display order.
var Profiles = []ProfileID{German, American}

// ParseProfileID accepts the canonical ids and their short aliases.
func ParseProfileID(s string) (ProfileID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "german", "de", "germany":
		return German, nil
	case "american", "us", "usa":
		return American, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownProfile, s)
	}
}

// FoldersKey is the document key holding this profile's folder mappings.
func (p ProfileID) FoldersKey() string {
	return string(p) + "_network_folders"
}

// Label is the short status name shown once the profile is connected.
func (p ProfileID) Label() string {
	if p == American {
		return "us"
	}
	return string(p)
}

// Profile holds the VPN server and credentials for one ProfileID.
// Empty fields are accepted as-is.
type Profile struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Masked returns a copy safe to print.
func (p Profile) Masked() Profile {
	p.Password = common.MaskSecret(p.Password)
	return p
}

func (p Profile) String() string {
	return fmt.Sprintf("server=%s username=%s password=%s", p.Server, p.Username, common.MaskSecret(p.Password))
}

// FolderMapping associates a local drive letter with a UNC path.
type FolderMapping struct {
	Drive string `json:"drive"`
	Path  string `json:"path"`
}

func (f FolderMapping) String() string {
	return f.Drive + " -> " + f.Path
}

// CustomServer is a named UNC shortcut unrelated to any profile.
// Description is the key used for deletion.
type CustomServer struct {
	Description string `json:"description"`
	Address     string `json:"address"`
}

func (c CustomServer) String() string {
	return c.Description + ": " + c.Address
}
