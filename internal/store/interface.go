package store

import (
	"context"

	"github.com/dmitrijs2005/vpnkeeper/internal/models"
)

// Repository is the only mutation surface for persisted credentials.
type Repository interface {
	Load(ctx context.Context) *Document
	Save(ctx context.Context, doc *Document, keys ...string) error

	GetProfile(ctx context.Context, id models.ProfileID) (models.Profile, bool)
	SaveProfile(ctx context.Context, id models.ProfileID, p models.Profile) error
	ClearProfile(ctx context.Context, id models.ProfileID) error

	Folders(ctx context.Context, id models.ProfileID) []models.FolderMapping
	AddFolder(ctx context.Context, id models.ProfileID, f models.FolderMapping) error

	CustomServers(ctx context.Context) []models.CustomServer
	AddCustomServer(ctx context.Context, s models.CustomServer) error
	DeleteCustomServer(ctx context.Context, description string) (int, error)
}
