package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
)

type JSONStore struct {
	path   string
	logger logging.Logger
	mu     sync.Mutex
}

func NewJSONStore(path string, logger logging.Logger) *JSONStore {
	return &JSONStore{path: path, logger: logger.With("store", path)}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load parses the credential file. IO and parse failures are logged and
// yield an empty Document.
func (s *JSONStore) Load(ctx context.Context) *Document {
	doc := &Document{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug(ctx, "credential file not found, using empty document")
		} else {
			s.logger.Warn(ctx, "credential file unreadable, using empty document", "error", err)
		}
		return doc
	}

	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn(ctx, "credential file malformed, using empty document", "error", err)
		return &Document{}
	}
	return doc
}

// Save merges the given keys of doc into the file on disk. With no keys,
// every key that carries a value in doc is written.
func (s *JSONStore) Save(ctx context.Context, doc *Document, keys ...string) error {
	if len(keys) == 0 {
		keys = doc.keys()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.readRaw(ctx)
	for _, key := range keys {
		v, err := doc.value(key)
		if err != nil {
			return err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		raw[key] = b
	}

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, out, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	s.logger.Debug(ctx, "credential file saved", "keys", keys)
	return nil
}

// readRaw returns the current file as a key map, or an empty map when the
// file is missing or not a JSON object.
func (s *JSONStore) readRaw(ctx context.Context) map[string]json.RawMessage {
	raw := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return raw
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn(ctx, "credential file malformed, overwriting", "error", err)
		return make(map[string]json.RawMessage)
	}
	return raw
}

func (s *JSONStore) GetProfile(ctx context.Context, id models.ProfileID) (models.Profile, bool) {
	return s.Load(ctx).Profile(id)
}

func (s *JSONStore) SaveProfile(ctx context.Context, id models.ProfileID, p models.Profile) error {
	doc := &Document{}
	doc.SetProfile(id, p)
	if err := s.Save(ctx, doc, string(id)); err != nil {
		return fmt.Errorf("save profile %s: %w", id, err)
	}
	return nil
}

// ClearProfile empties server, username and password of id and nothing else.
func (s *JSONStore) ClearProfile(ctx context.Context, id models.ProfileID) error {
	return s.SaveProfile(ctx, id, models.Profile{})
}

func (s *JSONStore) Folders(ctx context.Context, id models.ProfileID) []models.FolderMapping {
	return s.Load(ctx).Folders(id)
}

func (s *JSONStore) AddFolder(ctx context.Context, id models.ProfileID, f models.FolderMapping) error {
	doc := s.Load(ctx)
	doc.SetFolders(id, append(doc.Folders(id), f))
	if err := s.Save(ctx, doc, id.FoldersKey()); err != nil {
		return fmt.Errorf("add folder %s: %w", f.Drive, err)
	}
	return nil
}

func (s *JSONStore) CustomServers(ctx context.Context) []models.CustomServer {
	return s.Load(ctx).CustomServers
}

func (s *JSONStore) AddCustomServer(ctx context.Context, cs models.CustomServer) error {
	doc := s.Load(ctx)
	doc.CustomServers = append(doc.CustomServers, cs)
	if err := s.Save(ctx, doc, KeyCustomServers); err != nil {
		return fmt.Errorf("add server %s: %w", cs.Description, err)
	}
	return nil
}

// DeleteCustomServer removes every server with the given description and
// reports how many were removed. common.ErrNotFound if none matched.
func (s *JSONStore) DeleteCustomServer(ctx context.Context, description string) (int, error) {
	doc := s.Load(ctx)

	kept := make([]models.CustomServer, 0, len(doc.CustomServers))
	for _, cs := range doc.CustomServers {
		if cs.Description != description {
			kept = append(kept, cs)
		}
	}

	removed := len(doc.CustomServers) - len(kept)
	if removed == 0 {
		return 0, fmt.Errorf("server %q: %w", description, common.ErrNotFound)
	}

	doc.CustomServers = kept
	if err := s.Save(ctx, doc, KeyCustomServers); err != nil {
		return 0, fmt.Errorf("delete server %s: %w", description, err)
	}
	return removed, nil
}

var _ Repository = (*JSONStore)(nil)
