package services

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/vpnkeeper/internal/filex"
)

// Browser tracks the folder the user is looking at. It is safe for
// concurrent use; VPN and drive services move its root from background
// jobs.
type Browser struct {
	mu   sync.RWMutex
	home string
	root string
}

// NewBrowser starts at home.
func NewBrowser(home string) *Browser {
	return &Browser{home: home, root: home}
}

func (b *Browser) Root() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.root
}

// SetRoot moves to path without checking it. Mapped drives may not be
// visible yet when the mapping finishes.
func (b *Browser) SetRoot(path string) {
	b.mu.Lock()
	b.root = path
	b.mu.Unlock()
}

// Home moves to the home directory and returns it.
func (b *Browser) Home() string {
	b.SetRoot(b.home)
	return b.home
}

// Documents moves to the Documents folder, or home when there is none.
func (b *Browser) Documents() string {
	docs := filex.DocumentsDir(b.home)
	b.SetRoot(docs)
	return docs
}

// Cd moves to path, resolved against the current root when relative.
func (b *Browser) Cd(path string) (string, error) {
	target := b.resolve(path)
	if !filex.IsDir(target) {
		return "", fmt.Errorf("cd %s: not a directory", target)
	}
	b.SetRoot(target)
	return target, nil
}

// List returns the entries of path, or of the root when path is empty.
func (b *Browser) List(path string) ([]filex.Entry, error) {
	return filex.ListDir(b.resolve(path))
}

func (b *Browser) resolve(path string) string {
	root := b.Root()
	switch {
	case path == "":
		return root
	case filepath.IsAbs(path), filepath.VolumeName(path) != "":
		return filepath.Clean(path)
	default:
		return filepath.Join(root, path)
	}
}
