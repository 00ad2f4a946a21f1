package repository

import (
	"context"

	"user_galleries/internal/domain/models"

	"github.com/google/uuid"
)

type GalleryRepository interface {
	// CreateGallery вставляет галерею, если для (owner, type) ее еще нет.
	// created == false означает, что строку успели создать раньше, и возвращается она.
	CreateGallery(ctx context.Context, gallery models.Gallery) (result models.Gallery, created bool, err error)
	GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	GetGalleryByOwnerAndType(ctx context.Context, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, error)
	UpdateGallery(ctx context.Context, gallery models.Gallery) error
	// RemoveImage сохраняет новый список изображений и, если clearPicture, снимает аватар владельца в той же транзакции.
	// Возвращает true, если аватар был снят.
	RemoveImage(ctx context.Context, gallery models.Gallery, fileID uuid.UUID, clearPicture bool) (bool, error)
	GetGalleries(ctx context.Context, page, perPage int) ([]models.GalleryListItem, int, error)
	GetSharedWith(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error)
	GetGalleriesWithImages(ctx context.Context) ([]models.GalleryListItem, error)
}

type FileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.File, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.File, error)
	MarkPermanent(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	SetPictureFileID(ctx context.Context, userID uuid.UUID, fileID *uuid.UUID) error
	ExistingUserIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	ListActive(ctx context.Context) ([]models.User, error)
}

type BlockRepository interface {
	IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error)
	Block(ctx context.Context, blocker, blocked uuid.UUID) error
	Unblock(ctx context.Context, blocker, blocked uuid.UUID) error
}
