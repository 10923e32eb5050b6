package store

import (
	"fmt"

	"github.com/dmitrijs2005/vpnkeeper/internal/models"
)

// KeyCustomServers is the document key of the custom server list.
const KeyCustomServers = "custom_servers"

// Document is the typed view of the credential file. Nil fields are
// absent from the file (or not part of an update).
type Document struct {
	German          *models.Profile        `json:"german,omitempty"`
	American        *models.Profile        `json:"american,omitempty"`
	GermanFolders   []models.FolderMapping `json:"german_network_folders,omitempty"`
	AmericanFolders []models.FolderMapping `json:"american_network_folders,omitempty"`
	CustomServers   []models.CustomServer  `json:"custom_servers,omitempty"`
}

// Profile returns the stored profile for id and whether it is present.
func (d *Document) Profile(id models.ProfileID) (models.Profile, bool) {
	var p *models.Profile
	switch id {
	case models.German:
		p = d.German
	case models.American:
		p = d.American
	}
	if p == nil {
		return models.Profile{}, false
	}
	return *p, true
}

func (d *Document) SetProfile(id models.ProfileID, p models.Profile) {
	switch id {
	case models.German:
		d.German = &p
	case models.American:
		d.American = &p
	}
}

// Folders returns the folder mappings of id in insertion order.
func (d *Document) Folders(id models.ProfileID) []models.FolderMapping {
	switch id {
	case models.German:
		return d.GermanFolders
	case models.American:
		return d.AmericanFolders
	}
	return nil
}

func (d *Document) SetFolders(id models.ProfileID, f []models.FolderMapping) {
	if f == nil {
		f = []models.FolderMapping{}
	}
	switch id {
	case models.German:
		d.GermanFolders = f
	case models.American:
		d.AmericanFolders = f
	}
}

// keys lists the document keys that carry a value.
func (d *Document) keys() []string {
	var keys []string
	if d.German != nil {
		keys = append(keys, string(models.German))
	}
	if d.American != nil {
		keys = append(keys, string(models.American))
	}
	if d.GermanFolders != nil {
		keys = append(keys, models.German.FoldersKey())
	}
	if d.AmericanFolders != nil {
		keys = append(keys, models.American.FoldersKey())
	}
	if d.CustomServers != nil {
		keys = append(keys, KeyCustomServers)
	}
	return keys
}

// value returns what Save writes for key. Lists are written as [] rather
// than null when empty.
func (d *Document) value(key string) (any, error) {
	switch key {
	case string(models.German), string(models.American):
		p, ok := d.Profile(models.ProfileID(key))
		if !ok {
			return nil, fmt.Errorf("key %q has no value", key)
		}
		return p, nil
	case models.German.FoldersKey():
		return nonNil(d.GermanFolders), nil
	case models.American.FoldersKey():
		return nonNil(d.AmericanFolders), nil
	case KeyCustomServers:
		return nonNil(d.CustomServers), nil
	default:
		return nil, fmt.Errorf("unknown document key %q", key)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
