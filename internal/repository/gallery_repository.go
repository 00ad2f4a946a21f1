package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const (
	pgForeignKeyViolation = "23503"
)

var galleryColumns = []string{
	"g.id",
	"g.owner_id",
	"g.gallery_type",
	"g.title",
	"g.images",
	"g.allowed_users",
	"g.created_at",
	"g.updated_at",
}

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGallery(row rowScanner, extra ...interface{}) (models.Gallery, error) {
	var (
		gallery models.Gallery
		allowed []string
	)

	dest := []interface{}{
		&gallery.ID,
		&gallery.OwnerID,
		&gallery.Type,
		&gallery.Title,
		&gallery.Images,
		&allowed,
		&gallery.CreatedAt,
		&gallery.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.Gallery{}, err
	}

	ids, err := parseUUIDs(allowed)
	if err != nil {
		return models.Gallery{}, err
	}
	gallery.AllowedUsers = ids

	if gallery.Images == nil {
		gallery.Images = models.ImageList{}
	}

	return gallery, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("bad uuid %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// uuidArray готовит значение для колонки uuid[]; nil превращается в пустой массив, а не в NULL
func uuidArray(ids []uuid.UUID) interface{} {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return pq.Array(out)
}

// CreateGallery создает галерею, а при конфликте по (owner_id, gallery_type) возвращает уже существующую
func (r *GalleryRepo) CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, bool, error) {
	const op = "repository.GalleryRepo.CreateGallery"

	query, args, err := r.sb.Insert("galleries AS g").
		Columns(
			"owner_id",
			"gallery_type",
			"title",
			"images",
			"allowed_users",
		).
		Values(
			gallery.OwnerID,
			gallery.Type,
			gallery.Title,
			gallery.Images,
			uuidArray(models.NormalizeIDs(gallery.AllowedUsers)),
		).
		Suffix("ON CONFLICT (owner_id, gallery_type) DO NOTHING").
		Suffix("RETURNING " + strings.Join(galleryColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err == nil {
		return created, true, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		// строку уже вставил параллельный запрос
		existing, err := r.GetGalleryByOwnerAndType(ctx, gallery.OwnerID, gallery.Type)
		if err != nil {
			return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
		}
		return existing, false, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return models.Gallery{}, false, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return models.Gallery{}, false, fmt.Errorf("%s: %w", op, err)
}

// GetGalleryByID возвращает галерею по ID
func (r *GalleryRepo) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GetGalleryByID"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries g").
		Where(squirrel.Eq{"g.id": id}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

func (r *GalleryRepo) GetGalleryByOwnerAndType(ctx context.Context, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GetGalleryByOwnerAndType"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries g").
		Where(squirrel.Eq{"g.owner_id": ownerID, "g.gallery_type": galleryType}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// UpdateGallery сохраняет изменяемые поля галереи. Владелец и тип не меняются никогда.
func (r *GalleryRepo) UpdateGallery(ctx context.Context, gallery models.Gallery) error {
	const op = "repository.GalleryRepo.UpdateGallery"

	query, args, err := r.sb.Update("galleries").
		Set("title", gallery.Title).
		Set("images", gallery.Images).
		Set("allowed_users", uuidArray(models.NormalizeIDs(gallery.AllowedUsers))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": gallery.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

// RemoveImage записывает список изображений без удаленного файла.
// При clearPicture в той же транзакции снимается аватар владельца, если он все еще указывает на fileID.
// Возвращает true, только если аватар действительно был снят.
func (r *GalleryRepo) RemoveImage(ctx context.Context, gallery models.Gallery, fileID uuid.UUID, clearPicture bool) (bool, error) {
	const op = "repository.GalleryRepo.RemoveImage"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query, args, err := r.sb.Update("galleries").
		Set("images", gallery.Images).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": gallery.ID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return false, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	cleared := false
	if clearPicture {
		query, args, err = r.sb.Update("users").
			Set("picture_file_id", nil).
			Where(squirrel.Eq{"id": gallery.OwnerID, "picture_file_id": fileID}).
			ToSql()
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return false, fmt.Errorf("%s: failed to clear profile picture: %w", op, err)
		}
		cleared = tag.RowsAffected() > 0
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return cleared, nil
}

// GetGalleries возвращает страницу административного списка вместе с именем владельца
func (r *GalleryRepo) GetGalleries(ctx context.Context, page, perPage int) ([]models.GalleryListItem, int, error) {
	const op = "repository.GalleryRepo.GetGalleries"

	// Проверка и корректировка параметров пагинации
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	totalCount, err := r.getTotalCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.withOwnerName().
		OrderBy("g.created_at DESC", "g.id").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	items, err := r.queryListItems(ctx, query, args)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return items, totalCount, nil
}

// GetGalleriesWithImages - все галереи, в которых есть хотя бы одна ссылка на файл
func (r *GalleryRepo) GetGalleriesWithImages(ctx context.Context) ([]models.GalleryListItem, error) {
	const op = "repository.GalleryRepo.GetGalleriesWithImages"

	query, args, err := r.withOwnerName().
		Where("jsonb_array_length(g.images) > 0").
		OrderBy("g.created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := r.queryListItems(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetSharedWith возвращает приватные галереи, в список доступа которых входит userID
func (r *GalleryRepo) GetSharedWith(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error) {
	const op = "repository.GalleryRepo.GetSharedWith"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries g").
		Where(squirrel.Eq{"g.gallery_type": models.GalleryTypePrivate}).
		Where("g.allowed_users @> ?::uuid[]", uuidArray([]uuid.UUID{userID})).
		OrderBy("g.updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var galleries []models.Gallery
	for rows.Next() {
		gallery, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		galleries = append(galleries, gallery)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

func (r *GalleryRepo) withOwnerName() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, galleryColumns...), "COALESCE(NULLIF(u.name, ''), u.email, '')")...).
		From("galleries g").
		LeftJoin("users u ON u.id = g.owner_id")
}

func (r *GalleryRepo) queryListItems(ctx context.Context, query string, args []interface{}) ([]models.GalleryListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.GalleryListItem
	for rows.Next() {
		var ownerName string
		gallery, err := scanGallery(rows, &ownerName)
		if err != nil {
			return nil, err
		}
		items = append(items, models.GalleryListItem{Gallery: gallery, OwnerName: ownerName})
	}

	return items, rows.Err()
}

// Вспомогательная функция для получения общего количества записей
func (r *GalleryRepo) getTotalCount(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("galleries").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error execute query: %w (SQL: %s)", err, query)
	}

	return count, nil
}
