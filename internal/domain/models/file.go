package models

import (
	"time"

	"github.com/google/uuid"
)

type FileScheme string

const (
	FileSchemePublic  FileScheme = "public"
	FileSchemePrivate FileScheme = "private"
)

type FileStatus int

const (
	FileStatusTemporary FileStatus = 0
	FileStatusPermanent FileStatus = 1
)

// File - запись о загруженном файле. Создается сервисом загрузки как временная,
// галерея делает ее постоянной при добавлении.
type File struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	OwnerID          uuid.UUID  `json:"owner_id" db:"owner_id"`
	Scheme           FileScheme `json:"scheme" db:"scheme"`
	StoragePath      string     `json:"storage_path" db:"storage_path"`
	OriginalFilename string     `json:"original_filename" db:"original_filename"`
	MimeType         string     `json:"mime_type,omitempty" db:"mime_type"`
	FileSize         int64      `json:"file_size" db:"file_size"`
	Status           FileStatus `json:"status" db:"status"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

func (f File) IsPermanent() bool {
	return f.Status == FileStatusPermanent
}

