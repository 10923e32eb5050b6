// Package filex lists directories for the interactive file browser.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// ListDir reads dir and returns its entries, directories first, each group
// ordered by case-insensitive name. Entries that cannot be stat'ed are
// listed with zero size and time.
func ListDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		e := Entry{
			Name:  de.Name(),
			Path:  filepath.Join(dir, de.Name()),
			IsDir: de.IsDir(),
		}
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// HomeDir returns the user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return home, nil
}

// DocumentsDir returns <home>/Documents, or home itself when that
// directory does not exist.
func DocumentsDir(home string) string {
	docs := filepath.Join(home, "Documents")
	if IsDir(docs) {
		return docs
	}
	return home
}

// DriveRoot turns a drive letter such as "N:" into its root path "N:\".
// Anything that is not a bare drive letter is returned unchanged.
func DriveRoot(drive string) string {
	if len(drive) == 2 && drive[1] == ':' {
		return drive + `\`
	}
	return drive
}
