package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/metrics"
	"user_galleries/internal/repository"
	"user_galleries/internal/services/access"
	"user_galleries/internal/storage"

	"github.com/google/uuid"
)

type AccessPolicy interface {
	CanAccess(ctx context.Context, g models.Gallery, operation access.Operation, actor models.Actor) (bool, error)
	IsMutuallyBlocked(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type URLResolver interface {
	ResolveURL(ctx context.Context, file models.File) (string, error)
}

type GalleryService struct {
	log       *slog.Logger
	galleries repository.GalleryRepository
	files     repository.FileRepository
	users     repository.UserRepository
	policy    AccessPolicy
	urls      URLResolver
}

func NewGalleryService(
	log *slog.Logger,
	galleries repository.GalleryRepository,
	files repository.FileRepository,
	users repository.UserRepository,
	policy AccessPolicy,
	urls URLResolver,
) *GalleryService {
	return &GalleryService{
		log:       log,
		galleries: galleries,
		files:     files,
		users:     users,
		policy:    policy,
		urls:      urls,
	}
}

// GetOrCreate возвращает галерею пользователя нужного типа, создавая ее при первом обращении.
// Второе значение true, если галерея была создана этим вызовом.
func (s *GalleryService) GetOrCreate(ctx context.Context, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, bool, error) {
	const op = "service.GalleryService.GetOrCreate"
	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", ownerID.String()),
		slog.String("type", string(galleryType)),
	)

	if !galleryType.Valid() {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, ErrInvalidGalleryType)
	}

	gallery, err := s.galleries.GetGalleryByOwnerAndType(ctx, ownerID, galleryType)
	if err == nil {
		return gallery, false, nil
	}
	if !errors.Is(err, storage.ErrGalleryNotFound) {
		log.Error("failed to load gallery", sl.Err(err))
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
	}

	owner, err := s.loadUser(ctx, ownerID)
	if err != nil {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
	}

	gallery, created, err := s.galleries.CreateGallery(ctx, models.Gallery{
		OwnerID:      ownerID,
		Type:         galleryType,
		Title:        models.DefaultGalleryTitle(galleryType, owner.DisplayName()),
		Images:       models.ImageList{},
		AllowedUsers: []uuid.UUID{},
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.Gallery{}, false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to create gallery", sl.Err(err))
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if created {
		metrics.GalleriesCreated.WithLabelValues(string(galleryType)).Inc()
		log.Info("gallery created", slog.String("gallery_id", gallery.ID.String()))
	} else {
		log.Debug("gallery was created concurrently", slog.String("gallery_id", gallery.ID.String()))
	}

	return gallery, created, nil
}

// ManagedGallery проверяет право управления и возвращает галерею, создавая ее при необходимости.
// Права проверяются до создания, чтобы посторонний не мог создать чужую галерею.
func (s *GalleryService) ManagedGallery(ctx context.Context, actor models.Actor, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, bool, error) {
	const op = "service.GalleryService.ManagedGallery"

	if !galleryType.Valid() {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, ErrInvalidGalleryType)
	}

	if err := s.authorize(ctx, models.Gallery{OwnerID: ownerID, Type: galleryType}, access.OpUpdate, actor); err != nil {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
	}

	gallery, created, err := s.GetOrCreate(ctx, ownerID, galleryType)
	if err != nil {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, created, nil
}

// ExistingManagedGallery как ManagedGallery, но без ленивого создания: отсутствующая галерея дает ErrGalleryNotFound.
// Нужна точечным операциям над изображениями, которым нечего делать с пустой галереей.
func (s *GalleryService) ExistingManagedGallery(ctx context.Context, actor models.Actor, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, error) {
	const op = "service.GalleryService.ExistingManagedGallery"

	if !galleryType.Valid() {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, ErrInvalidGalleryType)
	}

	if err := s.authorize(ctx, models.Gallery{OwnerID: ownerID, Type: galleryType}, access.OpUpdate, actor); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := s.galleries.GetGalleryByOwnerAndType(ctx, ownerID, galleryType)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
		}
		s.log.Error("failed to load gallery", slog.String("op", op), sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// Manage готовит данные формы управления. Доступно владельцу и администратору галерей.
func (s *GalleryService) Manage(ctx context.Context, actor models.Actor, ownerID uuid.UUID, galleryType models.GalleryType) (models.ManagementView, []models.Event, error) {
	const op = "service.GalleryService.Manage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", ownerID.String()),
		slog.String("type", string(galleryType)),
	)

	gallery, created, err := s.ManagedGallery(ctx, actor, ownerID, galleryType)
	if err != nil {
		return models.ManagementView{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	var events []models.Event
	if created {
		events = append(events, models.GalleryCreated(galleryType))
		recordEvents(events)
	}

	owner, err := s.loadUser(ctx, ownerID)
	if err != nil {
		return models.ManagementView{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	view := models.ManagementView{
		Gallery:        gallery,
		Owner:          owner,
		ManagedByAdmin: !actor.Is(ownerID),
	}

	if gallery.IsPrivate() {
		view.Candidates, err = s.allowListCandidates(ctx, owner.ID)
		if err != nil {
			log.Error("failed to list allow-list candidates", sl.Err(err))
			return models.ManagementView{}, nil, fmt.Errorf("%s: %w", op, err)
		}

		view.EffectiveAllowed, err = s.effectiveAllowed(ctx, gallery)
		if err != nil {
			log.Error("failed to filter allow-list", sl.Err(err))
			return models.ManagementView{}, nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		view.ProfilePictureID = owner.PictureFileID
	}

	return view, events, nil
}

// allowListCandidates - активные пользователи, кроме владельца и тех, с кем есть блокировка
func (s *GalleryService) allowListCandidates(ctx context.Context, ownerID uuid.UUID) ([]models.User, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID == ownerID {
			continue
		}

		blocked, err := s.policy.IsMutuallyBlocked(ctx, ownerID, u.ID)
		if err != nil {
			return nil, err
		}
		if blocked {
			continue
		}

		candidates = append(candidates, u)
	}

	return candidates, nil
}

func (s *GalleryService) effectiveAllowed(ctx context.Context, gallery models.Gallery) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(gallery.AllowedUsers))
	for _, id := range gallery.AllowedUsers {
		blocked, err := s.policy.IsMutuallyBlocked(ctx, gallery.OwnerID, id)
		if err != nil {
			return nil, err
		}
		if !blocked {
			out = append(out, id)
		}
	}
	return out, nil
}

// ListGalleries - административный список всех галерей
func (s *GalleryService) ListGalleries(ctx context.Context, actor models.Actor, page, perPage int) ([]models.GalleryListItem, int, error) {
	const op = "service.GalleryService.ListGalleries"

	if !actor.HasPermission(models.PermManageGalleries) {
		return nil, 0, fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	items, total, err := s.galleries.GetGalleries(ctx, page, perPage)
	if err != nil {
		s.log.Error("failed to list galleries", slog.String("op", op), sl.Err(err))
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return items, total, nil
}

// AdminEditTarget находит владельца и тип галереи для перехода на форму управления
func (s *GalleryService) AdminEditTarget(ctx context.Context, actor models.Actor, galleryID uuid.UUID) (uuid.UUID, models.GalleryType, error) {
	const op = "service.GalleryService.AdminEditTarget"

	if !actor.HasPermission(models.PermManageGalleries) {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, ErrAccessDenied)
	}

	gallery, err := s.loadGallery(ctx, galleryID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := gallery.Validate(); err != nil {
		s.log.Warn("gallery is missing owner or type",
			slog.String("op", op),
			slog.String("gallery_id", galleryID.String()),
		)
		return uuid.Nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return gallery.OwnerID, gallery.Type, nil
}

func (s *GalleryService) authorize(ctx context.Context, g models.Gallery, operation access.Operation, actor models.Actor) error {
	ok, err := s.policy.CanAccess(ctx, g, operation, actor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccessDenied
	}
	return nil
}

func (s *GalleryService) loadGallery(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	gallery, err := s.galleries.GetGalleryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.Gallery{}, ErrGalleryNotFound
		}
		return models.Gallery{}, err
	}
	return gallery, nil
}

func (s *GalleryService) loadUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func recordEvents(events []models.Event) {
	for _, e := range events {
		metrics.GalleryEvents.WithLabelValues(string(e.Kind)).Inc()
	}
}
