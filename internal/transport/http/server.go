package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/middleware"
	gallery "user_galleries/internal/services/gallery_service"
	"user_galleries/internal/transport/http/dto"
	"user_galleries/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "user_galleries/docs"
)

type GalleryService interface {
	ManagedGallery(ctx context.Context, actor models.Actor, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, bool, error)
	ExistingManagedGallery(ctx context.Context, actor models.Actor, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, error)
	Manage(ctx context.Context, actor models.Actor, ownerID uuid.UUID, galleryType models.GalleryType) (models.ManagementView, []models.Event, error)
	Reconcile(ctx context.Context, actor models.Actor, galleryID uuid.UUID, cmd models.ReconcileCommand) (models.Gallery, []models.Event, error)
	DeleteImage(ctx context.Context, actor models.Actor, galleryID, fileID uuid.UUID) (models.Gallery, []models.Event, error)
	SetProfilePicture(ctx context.Context, actor models.Actor, galleryID, fileID uuid.UUID) ([]models.Event, error)
	Display(ctx context.Context, ownerID uuid.UUID, galleryType models.GalleryType, viewer models.Actor) (models.DisplayBlock, error)
	SharedWith(ctx context.Context, viewer models.Actor) ([]models.DisplayBlock, error)
	ListGalleries(ctx context.Context, actor models.Actor, page, perPage int) ([]models.GalleryListItem, int, error)
	AdminEditTarget(ctx context.Context, actor models.Actor, galleryID uuid.UUID) (uuid.UUID, models.GalleryType, error)
	ScanOrphans(ctx context.Context, actor models.Actor) ([]models.OrphanReport, error)
	CleanOrphans(ctx context.Context, actor models.Actor, galleryIDs []uuid.UUID) (models.CleanupResult, error)
}

type CreatePolicy interface {
	CanCreate(actor models.Actor) bool
}

type Routers struct {
	log            *slog.Logger
	GalleryService GalleryService
	policy         CreatePolicy
	sessionName    string
}

func NewRouter(log *slog.Logger, galleryService GalleryService, policy CreatePolicy, sessionName string) *Routers {
	return &Routers{
		log:            log,
		GalleryService: galleryService,
		policy:         policy,
		sessionName:    sessionName,
	}
}

var ErrInvalidUUID = errors.New("not valid UUID")

// DisplayGallery godoc
// @Summary Блок галереи профиля
// @Description Возвращает изображения публичной или приватной галереи пользователя, если зритель имеет к ней доступ. Токен необязателен.
// @Tags galleries
// @Produce json
// @Param user_id path string true "UUID владельца" format(uuid)
// @Param type path string true "Тип галереи" Enums(public, private)
// @Success 200 {object} response.Response{data=models.DisplayBlock}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/users/{user_id}/galleries/{type} [get]
func (r *Routers) DisplayGallery(c echo.Context) error {
	const op = "http.routers.DisplayGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	ownerID, galleryType, err := parseTarget(c)
	if err != nil {
		return r.badRequest(c, err)
	}

	block, err := r.GalleryService.Display(c.Request().Context(), ownerID, galleryType, middleware.ActorFrom(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(block))
}

// ManageGallery godoc
// @Summary Форма управления галереей
// @Description Возвращает галерею (создавая ее при первом обращении), кандидатов в список доступа и отложенные сообщения.
// @Tags galleries
// @Produce json
// @Param user_id path string true "UUID владельца" format(uuid)
// @Param type path string true "Тип галереи" Enums(public, private)
// @Success 200 {object} response.Response{data=dto.ManageGalleryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/galleries/{type}/manage [get]
func (r *Routers) ManageGallery(c echo.Context) error {
	const op = "http.routers.ManageGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	ownerID, galleryType, err := parseTarget(c)
	if err != nil {
		return r.badRequest(c, err)
	}

	view, events, err := r.GalleryService.Manage(c.Request().Context(), middleware.ActorFrom(c), ownerID, galleryType)
	if err != nil {
		return r.fail(c, log, err)
	}

	messages := r.popFlashes(c)
	for _, e := range events {
		messages = append(messages, dto.FlashMessage{Level: string(e.Level), Message: e.Message})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.ManageGalleryResponse{
		View:     view,
		Messages: messages,
	}))
}

// SaveGallery godoc
// @Summary Сохранение формы галереи
// @Description Добавляет загруженные файлы, обновляет список доступа (приватная) или фото профиля (публичная). После сохранения перенаправляет на форму управления.
// @Tags galleries
// @Accept json
// @Param user_id path string true "UUID владельца" format(uuid)
// @Param type path string true "Тип галереи" Enums(public, private)
// @Param destination query string false "Куда вернуться после формы"
// @Param request body dto.ReconcileGalleryRequest true "Изменения"
// @Success 303 "Перенаправление на форму управления"
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/galleries/{type}/manage [post]
func (r *Routers) SaveGallery(c echo.Context) error {
	const op = "http.routers.SaveGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	ownerID, galleryType, err := parseTarget(c)
	if err != nil {
		return r.badRequest(c, err)
	}

	var req dto.ReconcileGalleryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", sl.Err(err))
		return r.badRequest(c, err)
	}

	cmd, err := req.ToCommand()
	if err != nil {
		return r.badRequest(c, err)
	}

	ctx := c.Request().Context()
	actor := middleware.ActorFrom(c)

	g, created, err := r.GalleryService.ManagedGallery(ctx, actor, ownerID, galleryType)
	if err != nil {
		return r.fail(c, log, err)
	}

	var events []models.Event
	if created {
		events = append(events, models.GalleryCreated(galleryType))
	}

	_, saved, err := r.GalleryService.Reconcile(ctx, actor, g.ID, cmd)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.addFlashes(c, append(events, saved...))

	return c.Redirect(http.StatusSeeOther, manageURL(ownerID, galleryType, c.QueryParam("destination")))
}

// DeleteGalleryImage godoc
// @Summary Удаление изображения из галереи
// @Description Убирает ссылку на файл из галереи. Если это было фото профиля, оно сбрасывается в той же транзакции. Сам файл не удаляется.
// @Tags galleries
// @Param user_id path string true "UUID владельца" format(uuid)
// @Param type path string true "Тип галереи" Enums(public, private)
// @Param file_id path string true "UUID файла" format(uuid)
// @Success 303 "Перенаправление на форму управления"
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/galleries/{type}/images/{file_id} [delete]
func (r *Routers) DeleteGalleryImage(c echo.Context) error {
	const op = "http.routers.DeleteGalleryImage"

	log := r.log.With(
		slog.String("op", op),
	)

	ownerID, galleryType, err := parseTarget(c)
	if err != nil {
		return r.badRequest(c, err)
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		return r.badRequest(c, ErrInvalidUUID)
	}

	ctx := c.Request().Context()
	actor := middleware.ActorFrom(c)

	g, err := r.GalleryService.ExistingManagedGallery(ctx, actor, ownerID, galleryType)
	if err != nil {
		return r.fail(c, log, err)
	}

	_, events, err := r.GalleryService.DeleteImage(ctx, actor, g.ID, fileID)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.addFlashes(c, events)

	return c.Redirect(http.StatusSeeOther, manageURL(ownerID, galleryType, c.QueryParam("destination")))
}

// SetProfilePicture godoc
// @Summary Выбор фото профиля
// @Description Делает изображение публичной галереи фотографией профиля владельца.
// @Tags galleries
// @Param user_id path string true "UUID владельца" format(uuid)
// @Param type path string true "Тип галереи" Enums(public)
// @Param file_id path string true "UUID файла" format(uuid)
// @Success 303 "Перенаправление на форму управления"
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/galleries/{type}/profile-picture/{file_id} [put]
func (r *Routers) SetProfilePicture(c echo.Context) error {
	const op = "http.routers.SetProfilePicture"

	log := r.log.With(
		slog.String("op", op),
	)

	ownerID, galleryType, err := parseTarget(c)
	if err != nil {
		return r.badRequest(c, err)
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		return r.badRequest(c, ErrInvalidUUID)
	}

	// аватар выбирается только из публичной галереи
	if galleryType != models.GalleryTypePublic {
		return r.fail(c, log, gallery.ErrInvalidGalleryType)
	}

	ctx := c.Request().Context()
	actor := middleware.ActorFrom(c)

	g, err := r.GalleryService.ExistingManagedGallery(ctx, actor, ownerID, galleryType)
	if err != nil {
		return r.fail(c, log, err)
	}

	events, err := r.GalleryService.SetProfilePicture(ctx, actor, g.ID, fileID)
	if err != nil {
		return r.fail(c, log, err)
	}

	r.addFlashes(c, events)

	return c.Redirect(http.StatusSeeOther, manageURL(ownerID, galleryType, c.QueryParam("destination")))
}

// SharedGalleries godoc
// @Summary Галереи, которыми со мной поделились
// @Tags galleries
// @Produce json
// @Success 200 {object} response.Response{data=[]models.DisplayBlock}
// @Failure 401 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries/shared [get]
func (r *Routers) SharedGalleries(c echo.Context) error {
	const op = "http.routers.SharedGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	blocks, err := r.GalleryService.SharedWith(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(blocks))
}

// CreateGallery godoc
// @Summary Прямое создание галереи
// @Description Галереи создаются только автоматически, этот путь всегда запрещен.
// @Tags galleries
// @Produce json
// @Failure 403 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	if !r.policy.CanCreate(middleware.ActorFrom(c)) {
		return c.JSON(http.StatusForbidden, response.ErrGalleryCreateForbidden)
	}

	return c.JSON(http.StatusNotImplemented, response.ErrInternal)
}

// ListGalleries godoc
// @Summary Список всех галерей
// @Tags admin
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Количество элементов на странице" default(20)
// @Success 200 {object} response.Response{data=dto.GalleryListResponse}
// @Failure 403 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	const op = "http.routers.ListGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 20
	}

	items, total, err := r.GalleryService.ListGalleries(c.Request().Context(), middleware.ActorFrom(c), page, perPage)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.GalleryListResponse{
		Galleries: items,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}))
}

// EditGallery godoc
// @Summary Переход к форме управления из админки
// @Description Перенаправляет на форму управления галереей владельца. Параметр destination сохраняется.
// @Tags admin
// @Param id path string true "UUID галереи" format(uuid)
// @Param destination query string false "Куда вернуться после формы"
// @Success 302 "Перенаправление"
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries/{id}/edit [get]
func (r *Routers) EditGallery(c echo.Context) error {
	const op = "http.routers.EditGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return r.badRequest(c, ErrInvalidUUID)
	}

	ownerID, galleryType, err := r.GalleryService.AdminEditTarget(c.Request().Context(), middleware.ActorFrom(c), galleryID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.Redirect(http.StatusFound, manageURL(ownerID, galleryType, c.QueryParam("destination")))
}

// ScanOrphans godoc
// @Summary Поиск ссылок на удаленные файлы
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=[]models.OrphanReport}
// @Failure 403 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries/orphans [get]
func (r *Routers) ScanOrphans(c echo.Context) error {
	const op = "http.routers.ScanOrphans"

	log := r.log.With(
		slog.String("op", op),
	)

	reports, err := r.GalleryService.ScanOrphans(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return r.fail(c, log, err)
	}

	if reports == nil {
		reports = []models.OrphanReport{}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(reports))
}

// CleanOrphans godoc
// @Summary Очистка ссылок на удаленные файлы
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CleanOrphansRequest true "Галереи для очистки"
// @Success 200 {object} response.Response{data=models.CleanupResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/galleries/orphans [post]
func (r *Routers) CleanOrphans(c echo.Context) error {
	const op = "http.routers.CleanOrphans"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CleanOrphansRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.badRequest(c, err)
	}

	result, err := r.GalleryService.CleanOrphans(c.Request().Context(), middleware.ActorFrom(c), req.GalleryIDs)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

func (r *Routers) badRequest(c echo.Context, err error) error {
	resp := response.ErrInvalidRequestFormat
	if errors.Is(err, models.ErrInvalidGalleryType) {
		resp = response.ErrInvalidGalleryType
	}
	resp.Details = err.Error()
	return c.JSON(http.StatusBadRequest, resp)
}

// fail переводит ошибки сервиса в HTTP-ответы
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, gallery.ErrAccessDenied):
		log.Warn("access denied", sl.Err(err))
		return c.JSON(http.StatusForbidden, response.ErrAccessDenied)
	case errors.Is(err, gallery.ErrInvalidGalleryType):
		return c.JSON(http.StatusBadRequest, response.ErrInvalidGalleryType)
	case errors.Is(err, gallery.ErrGalleryNotFound):
		return c.JSON(http.StatusNotFound, response.ErrGalleryNotFound)
	case errors.Is(err, gallery.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, response.ErrUserNotFound)
	case errors.Is(err, gallery.ErrGalleryInvariant):
		log.Error("gallery invariant violated", sl.Err(err))
		r.addFlashes(c, []models.Event{{
			Kind:    models.EventInvalidReference,
			Level:   models.LevelError,
			Message: "Invalid gallery: the owner or type is missing.",
		}})
		return c.Redirect(http.StatusFound, "/")
	default:
		log.Error("request failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}

func parseTarget(c echo.Context) (uuid.UUID, models.GalleryType, error) {
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return uuid.Nil, "", ErrInvalidUUID
	}

	galleryType, err := models.ParseGalleryType(c.Param("type"))
	if err != nil {
		return uuid.Nil, "", err
	}

	return ownerID, galleryType, nil
}

func manageURL(ownerID uuid.UUID, galleryType models.GalleryType, destination string) string {
	path := fmt.Sprintf("/api/v1/users/%s/galleries/%s/manage", ownerID, galleryType)
	if destination == "" {
		return path
	}
	return path + "?" + url.Values{"destination": {destination}}.Encode()
}
