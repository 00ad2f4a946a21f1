package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GalleryType определяет вид галереи пользователя
type GalleryType string

const (
	GalleryTypePublic  GalleryType = "public"
	GalleryTypePrivate GalleryType = "private"
)

var (
	ErrInvalidGalleryType = errors.New("invalid gallery type")
	ErrGalleryInvariant   = errors.New("gallery is missing owner or type")
)

// ParseGalleryType принимает только public и private
func ParseGalleryType(s string) (GalleryType, error) {
	switch GalleryType(s) {
	case GalleryTypePublic, GalleryTypePrivate:
		return GalleryType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGalleryType, s)
	}
}

func (t GalleryType) Valid() bool {
	return t == GalleryTypePublic || t == GalleryTypePrivate
}

// Label возвращает "Public" или "Private" для заголовка по умолчанию
func (t GalleryType) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// DefaultGalleryTitle строит заголовок для лениво созданной галереи
func DefaultGalleryTitle(t GalleryType, ownerDisplayName string) string {
	return fmt.Sprintf("%s Gallery for %s", t.Label(), ownerDisplayName)
}

// ImageRef ссылка на постоянный файл внутри галереи
type ImageRef struct {
	FileID uuid.UUID `json:"file_id"`
	Alt    string    `json:"alt,omitempty"`
	Title  string    `json:"title,omitempty"`
}

// ImageList хранится в JSONB, порядок элементов = порядок добавления
type ImageList []ImageRef

// Value реализует интерфейс driver.Valuer для сериализации ImageList в JSONB
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan реализует интерфейс sql.Scanner для десериализации JSONB в ImageList
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported image list type %T", value)
	}

	var out ImageList
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

func (l ImageList) Contains(fileID uuid.UUID) bool {
	return l.IndexOf(fileID) >= 0
}

func (l ImageList) IndexOf(fileID uuid.UUID) int {
	for i, ref := range l {
		if ref.FileID == fileID {
			return i
		}
	}
	return -1
}

// Without возвращает копию списка без fileID, порядок остальных сохраняется
func (l ImageList) Without(fileID uuid.UUID) (ImageList, bool) {
	out := make(ImageList, 0, len(l))
	removed := false
	for _, ref := range l {
		if ref.FileID == fileID {
			removed = true
			continue
		}
		out = append(out, ref)
	}
	return out, removed
}

func (l ImageList) FileIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(l))
	for _, ref := range l {
		ids = append(ids, ref.FileID)
	}
	return ids
}

// Gallery представляет собой галерею пользователя, одну на пару (владелец, тип)
type Gallery struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      uuid.UUID   `json:"owner_id"`
	Type         GalleryType `json:"gallery_type"`
	Title        string      `json:"title"`
	Images       ImageList   `json:"images"`
	AllowedUsers []uuid.UUID `json:"allowed_users"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Validate проверяет, что у галереи есть владелец и корректный тип
func (g Gallery) Validate() error {
	if g.OwnerID == uuid.Nil || !g.Type.Valid() {
		return ErrGalleryInvariant
	}
	return nil
}

func (g Gallery) IsPrivate() bool {
	return g.Type == GalleryTypePrivate
}

func (g Gallery) IsAllowed(userID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}
	return slices.Contains(g.AllowedUsers, userID)
}

// Clone копирует срезы, чтобы изменения не протекали в исходную галерею
func (g Gallery) Clone() Gallery {
	c := g
	c.Images = slices.Clone(g.Images)
	c.AllowedUsers = slices.Clone(g.AllowedUsers)
	return c
}

// NormalizeIDs убирает дубликаты и uuid.Nil и сортирует идентификаторы
func NormalizeIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// SameIDSet сравнивает два набора как отсортированные списки
func SameIDSet(a, b []uuid.UUID) bool {
	return slices.Equal(NormalizeIDs(a), NormalizeIDs(b))
}

// GalleryListItem строка административного списка галерей
type GalleryListItem struct {
	Gallery   Gallery `json:"gallery"`
	OwnerName string  `json:"owner_name"`
}
