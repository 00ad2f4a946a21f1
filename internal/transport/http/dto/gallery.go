package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"user_galleries/internal/domain/models"

	"github.com/google/uuid"
)

const (
	PictureNone  = "none"
	PictureClear = "clear"
)

var ErrInvalidID = errors.New("invalid id")

// AllowedUsers принимает как JSON-массив, так и строку с идентификаторами через запятую.
// Пустая строка означает пустой список, отсутствие поля или null - "без изменений".
type AllowedUsers []string

func (a *AllowedUsers) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("allowed_users must be a list or a comma separated string: %w", err)
	}

	out := AllowedUsers{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*a = out
	return nil
}

// ReconcileGalleryRequest - данные формы сохранения галереи
type ReconcileGalleryRequest struct {
	UploadedFileIDs []string      `json:"uploaded_file_ids" validate:"omitempty,dive,uuid"`
	ProfilePicture  string        `json:"profile_picture" validate:"omitempty,profile_picture"`
	AllowedUsers    *AllowedUsers `json:"allowed_users" validate:"omitempty,dive,uuid"`
}

// ToCommand нормализует запрос в команду для сервиса
func (r ReconcileGalleryRequest) ToCommand() (models.ReconcileCommand, error) {
	var cmd models.ReconcileCommand

	uploaded, err := parseIDs(r.UploadedFileIDs)
	if err != nil {
		return cmd, err
	}
	cmd.UploadedFileIDs = uploaded

	cmd.ProfilePicture, err = ParsePictureSelection(r.ProfilePicture)
	if err != nil {
		return cmd, err
	}

	if r.AllowedUsers != nil {
		allowed, err := parseIDs(*r.AllowedUsers)
		if err != nil {
			return cmd, err
		}
		cmd.AllowedUsers = &allowed
	}

	return cmd, nil
}

// ParsePictureSelection: "" и "none" - без выбора, "clear" - убрать, иначе uuid файла
func ParsePictureSelection(s string) (models.ProfilePictureSelection, error) {
	switch strings.TrimSpace(s) {
	case "", PictureNone:
		return models.NoSelection(), nil
	case PictureClear:
		return models.ClearSelection(), nil
	}

	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return models.ProfilePictureSelection{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return models.SelectPicture(id), nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type CleanOrphansRequest struct {
	GalleryIDs []uuid.UUID `json:"gallery_ids" validate:"required,min=1"`
}

// FlashMessage - отложенное сообщение из сессии
type FlashMessage struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type ManageGalleryResponse struct {
	View     models.ManagementView `json:"view"`
	Messages []FlashMessage        `json:"messages"`
}

type GalleryListResponse struct {
	Galleries []models.GalleryListItem `json:"galleries"`
	Total     int                      `json:"total"`
	Page      int                      `json:"page"`
	PerPage   int                      `json:"per_page"`
}
