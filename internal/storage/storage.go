package storage

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGalleryNotFound = errors.New("gallery not found")
)

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrObjectNotFound = errors.New("object not found")
)
