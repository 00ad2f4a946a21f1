package services

import (
	"errors"

	"user_galleries/internal/domain/models"
)

var (
	ErrAccessDenied       = errors.New("access denied")
	ErrGalleryNotFound    = errors.New("gallery not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidGalleryType = models.ErrInvalidGalleryType
	ErrGalleryInvariant   = models.ErrGalleryInvariant
)
