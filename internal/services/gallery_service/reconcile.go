package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/metrics"
	"user_galleries/internal/services/access"
	"user_galleries/internal/storage"

	"github.com/google/uuid"
)

// Reconcile применяет отправленную форму к текущему состоянию галереи.
// Галерея сохраняется не больше одного раза и только если изменились изображения или список доступа.
// Аватар владельца сохраняется отдельно. Повторный вызов с той же командой ничего не пишет.
func (s *GalleryService) Reconcile(ctx context.Context, actor models.Actor, galleryID uuid.UUID, cmd models.ReconcileCommand) (models.Gallery, []models.Event, error) {
	const op = "service.GalleryService.Reconcile"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	gallery, err := s.loadForUpdate(ctx, actor, galleryID)
	if err != nil {
		return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	owner, err := s.loadUser(ctx, gallery.OwnerID)
	if err != nil {
		return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	next := gallery.Clone()
	var events []models.Event
	dirty := false

	added, uploadEvents, err := s.applyUploads(ctx, actor, &next, cmd.UploadedFileIDs)
	if err != nil {
		log.Error("failed to add uploaded images", sl.Err(err))
		return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	events = append(events, uploadEvents...)
	if added > 0 {
		dirty = true
		events = append(events, models.ImagesAdded(added))
	}

	if next.IsPrivate() && cmd.AllowedUsers != nil {
		changed, allowEvents, err := s.applyAllowList(ctx, &next, *cmd.AllowedUsers)
		if err != nil {
			log.Error("failed to update allow-list", sl.Err(err))
			return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, allowEvents...)
		if changed {
			dirty = true
			events = append(events, models.AllowListUpdated())
		}
	}

	var (
		picture        *uuid.UUID
		pictureChanged bool
		pictureEvents  []models.Event
	)
	if !next.IsPrivate() {
		picture, pictureChanged, pictureEvents = profilePictureTransition(owner, next, cmd.ProfilePicture)
	}

	if dirty {
		if err := s.galleries.UpdateGallery(ctx, next); err != nil {
			log.Error("failed to save gallery", sl.Err(err))
			return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
		}
		metrics.GalleryWrites.WithLabelValues("gallery").Inc()
	}

	if pictureChanged {
		pictureChanged, pictureEvents, err = s.savePicture(ctx, owner.ID, picture, pictureEvents)
		if err != nil {
			log.Error("failed to save profile picture", sl.Err(err))
			return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	events = append(events, pictureEvents...)

	if len(events) == 0 {
		events = append(events, models.NoChanges())
	}
	recordEvents(events)

	log.Info("gallery reconciled",
		slog.Bool("gallery_saved", dirty),
		slog.Bool("picture_saved", pictureChanged),
		slog.Int("events", len(events)),
	)

	return next, events, nil
}

// applyUploads добавляет новые файлы в конец списка. Неизвестные id пропускаются с предупреждением,
// уже присутствующие - молча. Принимаются только файлы владельца галереи или того, кто отправил форму.
func (s *GalleryService) applyUploads(ctx context.Context, actor models.Actor, g *models.Gallery, fileIDs []uuid.UUID) (int, []models.Event, error) {
	var events []models.Event
	added := 0

	for _, id := range fileIDs {
		if id == uuid.Nil || g.Images.Contains(id) {
			continue
		}

		file, err := s.files.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrFileNotFound) {
				events = append(events, models.InvalidReference("file", id))
				continue
			}
			return 0, nil, err
		}

		if file.OwnerID != g.OwnerID && !actor.Is(file.OwnerID) {
			s.log.Warn("uploaded file belongs to another user",
				slog.String("file_id", id.String()),
				slog.String("gallery_id", g.ID.String()),
			)
			events = append(events, models.InvalidReference("file", id))
			continue
		}

		if !file.IsPermanent() {
			if err := s.files.MarkPermanent(ctx, file.ID); err != nil {
				if errors.Is(err, storage.ErrFileNotFound) {
					events = append(events, models.InvalidReference("file", id))
					continue
				}
				return 0, nil, err
			}
		}

		g.Images = append(g.Images, models.ImageRef{FileID: file.ID})
		added++
	}

	return added, events, nil
}

// applyAllowList сравнивает запрошенный и текущий списки как отсортированные множества
func (s *GalleryService) applyAllowList(ctx context.Context, g *models.Gallery, requested []uuid.UUID) (bool, []models.Event, error) {
	requested = models.NormalizeIDs(requested)

	existing, err := s.users.ExistingUserIDs(ctx, requested)
	if err != nil {
		return false, nil, err
	}

	var events []models.Event
	known := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			events = append(events, models.InvalidReference("user", id))
		}
	}

	desired := models.NormalizeIDs(existing)
	if models.SameIDSet(desired, g.AllowedUsers) {
		return false, events, nil
	}

	g.AllowedUsers = desired
	return true, events, nil
}

// profilePictureTransition вычисляет новый аватар владельца; сама запись делается вызывающим
func profilePictureTransition(owner models.User, g models.Gallery, sel models.ProfilePictureSelection) (*uuid.UUID, bool, []models.Event) {
	switch sel.Kind {
	case models.SelectionClear:
		if owner.PictureFileID == nil {
			return nil, false, nil
		}
		return nil, true, []models.Event{models.ProfilePictureRemoved()}

	case models.SelectionSet:
		if !g.Images.Contains(sel.FileID) {
			return nil, false, []models.Event{models.InvalidReference("image", sel.FileID)}
		}
		if owner.HasPicture(sel.FileID) {
			return nil, false, nil
		}
		id := sel.FileID
		return &id, true, []models.Event{models.ProfilePictureUpdated()}

	default:
		return nil, false, nil
	}
}

// savePicture записывает аватар. Если файла уже нет, выбор пропускается с предупреждением
// вместо ошибки, остальные изменения формы остаются в силе.
func (s *GalleryService) savePicture(ctx context.Context, ownerID uuid.UUID, picture *uuid.UUID, events []models.Event) (bool, []models.Event, error) {
	err := s.users.SetPictureFileID(ctx, ownerID, picture)
	switch {
	case err == nil:
		metrics.GalleryWrites.WithLabelValues("profile_picture").Inc()
		return true, events, nil
	case errors.Is(err, storage.ErrFileNotFound) && picture != nil:
		s.log.Warn("profile picture file no longer exists", slog.String("file_id", picture.String()))
		return false, []models.Event{models.InvalidReference("image", *picture)}, nil
	default:
		return false, nil, err
	}
}

// DeleteImage убирает одну ссылку из галереи. Сам файл не удаляется.
// Если это был аватар владельца публичной галереи, он снимается в той же транзакции.
func (s *GalleryService) DeleteImage(ctx context.Context, actor models.Actor, galleryID, fileID uuid.UUID) (models.Gallery, []models.Event, error) {
	const op = "service.GalleryService.DeleteImage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("file_id", fileID.String()),
	)

	gallery, err := s.loadForUpdate(ctx, actor, galleryID)
	if err != nil {
		return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	next := gallery.Clone()
	var removed bool
	next.Images, removed = gallery.Images.Without(fileID)
	if !removed {
		events := []models.Event{models.ImageNotFound(fileID)}
		recordEvents(events)
		log.Warn("image is not in gallery")
		return gallery, events, nil
	}

	clearPicture := false
	if !gallery.IsPrivate() {
		owner, err := s.loadUser(ctx, gallery.OwnerID)
		if err != nil {
			return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
		}
		clearPicture = owner.HasPicture(fileID)
	}

	cleared, err := s.galleries.RemoveImage(ctx, next, fileID, clearPicture)
	if err != nil {
		log.Error("failed to remove image", sl.Err(err))
		return models.Gallery{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.GalleryWrites.WithLabelValues("gallery").Inc()

	// аватар мог смениться между чтением и записью, событие только по факту
	events := []models.Event{models.ImageDeleted(gallery.Type)}
	if cleared {
		events = append(events, models.ProfilePictureCleared())
		metrics.GalleryWrites.WithLabelValues("profile_picture").Inc()
	}
	recordEvents(events)

	log.Info("image removed from gallery", slog.Bool("picture_cleared", cleared))

	return next, events, nil
}

// SetProfilePicture делает изображение из публичной галереи аватаром владельца
func (s *GalleryService) SetProfilePicture(ctx context.Context, actor models.Actor, galleryID, fileID uuid.UUID) ([]models.Event, error) {
	const op = "service.GalleryService.SetProfilePicture"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("file_id", fileID.String()),
	)

	gallery, err := s.loadForUpdate(ctx, actor, galleryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if gallery.IsPrivate() {
		return nil, fmt.Errorf("%s: profile picture must come from the public gallery: %w", op, ErrInvalidGalleryType)
	}

	owner, err := s.loadUser(ctx, gallery.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if owner.HasPicture(fileID) && gallery.Images.Contains(fileID) {
		return []models.Event{models.ProfilePictureUnchanged()}, nil
	}

	picture, changed, events := profilePictureTransition(owner, gallery, models.SelectPicture(fileID))
	if changed {
		if _, events, err = s.savePicture(ctx, owner.ID, picture, events); err != nil {
			log.Error("failed to save profile picture", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	recordEvents(events)

	return events, nil
}

// loadForUpdate перечитывает галерею и проверяет право на изменение до любой записи
func (s *GalleryService) loadForUpdate(ctx context.Context, actor models.Actor, galleryID uuid.UUID) (models.Gallery, error) {
	gallery, err := s.loadGallery(ctx, galleryID)
	if err != nil {
		return models.Gallery{}, err
	}

	if err := gallery.Validate(); err != nil {
		return models.Gallery{}, err
	}

	if err := s.authorize(ctx, gallery, access.OpUpdate, actor); err != nil {
		return models.Gallery{}, err
	}

	return gallery, nil
}
