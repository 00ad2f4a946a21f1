package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/metrics"

	"github.com/google/uuid"
)

// ScanOrphans находит галереи со ссылками на файлы, записей о которых больше нет
func (s *GalleryService) ScanOrphans(ctx context.Context, actor models.Actor) ([]models.OrphanReport, error) {
	const op = "service.GalleryService.ScanOrphans"

	if !actor.HasPermission(models.PermManageGalleries) {
		return nil, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	items, err := s.galleries.GetGalleriesWithImages(ctx)
	if err != nil {
		s.log.Error("failed to load galleries", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ids []uuid.UUID
	for _, item := range items {
		ids = append(ids, item.Gallery.Images.FileIDs()...)
	}

	files, err := s.files.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var reports []models.OrphanReport
	for _, item := range items {
		var orphans []uuid.UUID
		for _, ref := range item.Gallery.Images {
			if _, ok := files[ref.FileID]; !ok {
				orphans = append(orphans, ref.FileID)
			}
		}

		if len(orphans) > 0 {
			reports = append(reports, models.OrphanReport{
				GalleryID:  item.Gallery.ID,
				Title:      item.Gallery.Title,
				OwnerName:  item.OwnerName,
				OrphanRefs: orphans,
			})
		}
	}

	s.log.Info("orphan scan finished", slog.String("op", op), slog.Int("galleries", len(reports)))

	return reports, nil
}

// CleanOrphans убирает ссылки на несуществующие файлы из выбранных галерей.
// Каждая галерея сохраняется один раз; ненайденные галереи пропускаются.
func (s *GalleryService) CleanOrphans(ctx context.Context, actor models.Actor, galleryIDs []uuid.UUID) (models.CleanupResult, error) {
	const op = "service.GalleryService.CleanOrphans"
	log := s.log.With(slog.String("op", op))

	if !actor.HasPermission(models.PermManageGalleries) {
		return models.CleanupResult{}, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	result := models.CleanupResult{Events: []models.Event{}}

	for _, id := range models.NormalizeIDs(galleryIDs) {
		gallery, err := s.loadGallery(ctx, id)
		if err != nil {
			if errors.Is(err, ErrGalleryNotFound) {
				log.Warn("gallery not found, skipping", slog.String("gallery_id", id.String()))
				continue
			}
			return result, fmt.Errorf("%s: %w", op, err)
		}
		result.GalleriesProcessed++

		files, err := s.files.FindByIDs(ctx, gallery.Images.FileIDs())
		if err != nil {
			return result, fmt.Errorf("%s: %w", op, err)
		}

		kept := make(models.ImageList, 0, len(gallery.Images))
		for _, ref := range gallery.Images {
			if _, ok := files[ref.FileID]; ok {
				kept = append(kept, ref)
			}
		}

		removed := len(gallery.Images) - len(kept)
		if removed == 0 {
			continue
		}

		gallery.Images = kept
		if err := s.galleries.UpdateGallery(ctx, gallery); err != nil {
			log.Error("failed to save gallery", slog.String("gallery_id", id.String()), sl.Err(err))
			return result, fmt.Errorf("%s: %w", op, err)
		}
		metrics.GalleryWrites.WithLabelValues("gallery").Inc()

		result.ReferencesCleaned += removed
		result.Events = append(result.Events, models.OrphansCleaned(removed, gallery.Title))
	}

	recordEvents(result.Events)
	log.Info("orphan cleanup finished",
		slog.Int("galleries", result.GalleriesProcessed),
		slog.Int("references", result.ReferencesCleaned),
	)

	return result, nil
}
