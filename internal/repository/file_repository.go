package repository

import (
	"context"
	"errors"
	"fmt"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var fileColumns = []string{
	"id",
	"owner_id",
	"scheme",
	"storage_path",
	"original_filename",
	"mime_type",
	"file_size",
	"status",
	"created_at",
}

// FileRepo читает записи о файлах, которые создает сервис загрузки
type FileRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewFileRepository(db *pgxpool.Pool) *FileRepo {
	return &FileRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanFile(row rowScanner) (models.File, error) {
	var (
		f        models.File
		mimeType *string
	)

	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.Scheme,
		&f.StoragePath,
		&f.OriginalFilename,
		&mimeType,
		&f.FileSize,
		&f.Status,
		&f.CreatedAt,
	)
	if err != nil {
		return models.File{}, err
	}

	if mimeType != nil {
		f.MimeType = *mimeType
	}

	return f, nil
}

func (r *FileRepo) FindByID(ctx context.Context, id uuid.UUID) (models.File, error) {
	const op = "repository.file_repository.FindByID"

	query, args, err := r.sb.Select(fileColumns...).
		From("files").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.File{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	f, err := scanFile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.File{}, fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
		}
		return models.File{}, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

// FindByIDs возвращает только найденные файлы; отсутствующих id в карте нет
func (r *FileRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.File, error) {
	const op = "repository.file_repository.FindByIDs"

	result := make(map[uuid.UUID]models.File, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := r.sb.Select(fileColumns...).
		From("files").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		result[f.ID] = f
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return result, nil
}

// MarkPermanent переводит временный файл в постоянный, повторный вызов ничего не меняет
func (r *FileRepo) MarkPermanent(ctx context.Context, id uuid.UUID) error {
	const op = "repository.file_repository.MarkPermanent"

	query, args, err := r.sb.Update("files").
		Set("status", models.FileStatusPermanent).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
	}

	return nil
}
