package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	PermManageGalleries = "manage user galleries"
	PermViewAnyPrivate  = "view any private gallery"
)

type User struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Permissions      []string   `db:"permissions" json:"permissions"`
	PictureFileID    *uuid.UUID `db:"picture_file_id" json:"picture_file_id,omitempty"`
	Active           bool       `db:"active" json:"active"`
	RegistrationDate time.Time  `db:"registration_date" json:"registration_date,omitempty"`
}

// DisplayName возвращает email, если имя не заполнено
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u User) HasPicture(fileID uuid.UUID) bool {
	return u.PictureFileID != nil && *u.PictureFileID == fileID
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Permissions: slices.Clone(u.Permissions)}
}

// Actor - тот, кто выполняет операцию. Нулевой ID означает анонима.
type Actor struct {
	ID          uuid.UUID
	Permissions []string
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

func (a Actor) HasPermission(name string) bool {
	return slices.Contains(a.Permissions, name)
}

// Is проверяет, что актор - этот пользователь. Анонимный актор не совпадает ни с кем.
func (a Actor) Is(userID uuid.UUID) bool {
	return !a.IsAnonymous() && a.ID == userID
}
