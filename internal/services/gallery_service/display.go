package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/services/access"
	"user_galleries/internal/storage"

	"github.com/google/uuid"
)

// ForDisplay отдает изображения галереи, если зритель имеет право ее видеть.
// При отказе блок пустой и невидимый. Ссылки на пропавшие файлы пропускаются.
func (s *GalleryService) ForDisplay(ctx context.Context, gallery models.Gallery, viewer models.Actor) (models.DisplayBlock, error) {
	const op = "service.GalleryService.ForDisplay"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", gallery.ID.String()),
	)

	hidden := models.DisplayBlock{Images: []models.DisplayImage{}}

	if err := gallery.Validate(); err != nil {
		log.Warn("gallery is missing owner or type")
		return hidden, nil
	}

	ok, err := s.policy.CanAccess(ctx, gallery, access.OpView, viewer)
	if err != nil {
		log.Error("access check failed", sl.Err(err))
		return hidden, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return hidden, nil
	}

	canManage, err := s.policy.CanAccess(ctx, gallery, access.OpUpdate, viewer)
	if err != nil {
		return hidden, fmt.Errorf("%s: %w", op, err)
	}

	files, err := s.files.FindByIDs(ctx, gallery.Images.FileIDs())
	if err != nil {
		log.Error("failed to load gallery files", sl.Err(err))
		return hidden, fmt.Errorf("%s: %w", op, err)
	}

	images := make([]models.DisplayImage, 0, len(gallery.Images))
	for _, ref := range gallery.Images {
		file, ok := files[ref.FileID]
		if !ok {
			log.Debug("skipping orphaned image reference", slog.String("file_id", ref.FileID.String()))
			continue
		}

		url, err := s.urls.ResolveURL(ctx, file)
		if err != nil {
			if !errors.Is(err, storage.ErrObjectNotFound) {
				log.Warn("failed to resolve image url", slog.String("file_id", ref.FileID.String()), sl.Err(err))
			}
			continue
		}

		images = append(images, models.DisplayImage{
			FileID: ref.FileID,
			URL:    url,
			Alt:    ref.Alt,
			Title:  ref.Title,
		})
	}

	return models.DisplayBlock{
		Visible:   true,
		GalleryID: gallery.ID,
		OwnerID:   gallery.OwnerID,
		Type:      gallery.Type,
		Title:     gallery.Title,
		Images:    images,
		CanManage: canManage,
	}, nil
}

// Display - единый блок галереи профиля, тип передается параметром.
// Галерея здесь не создается: если ее нет, блок пустой.
func (s *GalleryService) Display(ctx context.Context, ownerID uuid.UUID, galleryType models.GalleryType, viewer models.Actor) (models.DisplayBlock, error) {
	const op = "service.GalleryService.Display"

	if !galleryType.Valid() {
		return models.DisplayBlock{}, fmt.Errorf("%s: %w", op, ErrInvalidGalleryType)
	}

	gallery, err := s.galleries.GetGalleryByOwnerAndType(ctx, ownerID, galleryType)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.DisplayBlock{Images: []models.DisplayImage{}}, nil
		}
		s.log.Error("failed to load gallery", slog.String("op", op), sl.Err(err))
		return models.DisplayBlock{}, fmt.Errorf("%s: %w", op, err)
	}

	block, err := s.ForDisplay(ctx, gallery, viewer)
	if err != nil {
		return models.DisplayBlock{}, fmt.Errorf("%s: %w", op, err)
	}

	return block, nil
}

// SharedWith возвращает приватные галереи, которыми поделились со зрителем и которые он сейчас может видеть
func (s *GalleryService) SharedWith(ctx context.Context, viewer models.Actor) ([]models.DisplayBlock, error) {
	const op = "service.GalleryService.SharedWith"

	if viewer.IsAnonymous() {
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	galleries, err := s.galleries.GetSharedWith(ctx, viewer.ID)
	if err != nil {
		s.log.Error("failed to load shared galleries", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blocks := make([]models.DisplayBlock, 0, len(galleries))
	for _, g := range galleries {
		block, err := s.ForDisplay(ctx, g, viewer)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if block.Visible {
			blocks = append(blocks, block)
		}
	}

	return blocks, nil
}
