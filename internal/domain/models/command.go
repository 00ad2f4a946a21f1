package models

import (
	"github.com/google/uuid"
)

type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionClear
	SelectionSet
)

// ProfilePictureSelection - выбор аватара в форме: none, clear или id файла
type ProfilePictureSelection struct {
	Kind   SelectionKind
	FileID uuid.UUID
}

func NoSelection() ProfilePictureSelection {
	return ProfilePictureSelection{Kind: SelectionNone}
}

func ClearSelection() ProfilePictureSelection {
	return ProfilePictureSelection{Kind: SelectionClear}
}

func SelectPicture(fileID uuid.UUID) ProfilePictureSelection {
	return ProfilePictureSelection{Kind: SelectionSet, FileID: fileID}
}

// ReconcileCommand - нормализованные данные формы сохранения галереи.
// AllowedUsers == nil означает "без изменений", пустой срез - "очистить список".
// Удаление изображения сюда не входит, это отдельная операция.
type ReconcileCommand struct {
	UploadedFileIDs []uuid.UUID
	ProfilePicture  ProfilePictureSelection
	AllowedUsers    *[]uuid.UUID
}

// ManagementView - данные для отрисовки формы управления галереей
type ManagementView struct {
	Gallery          Gallery     `json:"gallery"`
	Owner            User        `json:"owner"`
	ManagedByAdmin   bool        `json:"managed_by_admin"`
	ProfilePictureID *uuid.UUID  `json:"profile_picture_id,omitempty"`
	Candidates       []User      `json:"candidates,omitempty"`
	EffectiveAllowed []uuid.UUID `json:"effective_allowed,omitempty"`
}

// DisplayImage - изображение, готовое к отрисовке
type DisplayImage struct {
	FileID uuid.UUID `json:"file_id"`
	URL    string    `json:"url"`
	Alt    string    `json:"alt,omitempty"`
	Title  string    `json:"title,omitempty"`
}

// DisplayBlock - результат для блока галереи на странице профиля
type DisplayBlock struct {
	Visible   bool           `json:"visible"`
	GalleryID uuid.UUID      `json:"gallery_id,omitempty"`
	OwnerID   uuid.UUID      `json:"owner_id,omitempty"`
	Type      GalleryType    `json:"gallery_type,omitempty"`
	Title     string         `json:"title,omitempty"`
	Images    []DisplayImage `json:"images"`
	CanManage bool           `json:"can_manage"`
}

type OrphanReport struct {
	GalleryID  uuid.UUID   `json:"gallery_id"`
	Title      string      `json:"title"`
	OwnerName  string      `json:"owner_name"`
	OrphanRefs []uuid.UUID `json:"orphan_refs"`
}

type CleanupResult struct {
	GalleriesProcessed int     `json:"galleries_processed"`
	ReferencesCleaned  int     `json:"references_cleaned"`
	Events             []Event `json:"events"`
}
