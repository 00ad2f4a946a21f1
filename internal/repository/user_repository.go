package repository

import (
	"context"
	"errors"
	"fmt"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"permissions",
	"picture_file_id",
	"active",
	"registration_date",
}

type UserRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Permissions,
		&user.PictureFileID,
		&user.Active,
		&user.RegistrationDate,
	)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "repository.user_repository.GetUserByID"

	sql, args, err := r.sb.Select(userColumns...).From("users").Where(sq.Eq{"id": userID}).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// SetPictureFileID меняет аватар пользователя; nil снимает его
func (r *UserRepo) SetPictureFileID(ctx context.Context, userID uuid.UUID, fileID *uuid.UUID) error {
	const op = "repository.user_repository.SetPictureFileID"

	var value interface{}
	if fileID != nil {
		value = *fileID
	}

	sql, args, err := r.sb.Update("users").
		Set("picture_file_id", value).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return nil
}

// ExistingUserIDs отфильтровывает идентификаторы, которых нет в users
func (r *UserRepo) ExistingUserIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	const op = "repository.user_repository.ExistingUserIDs"

	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	sql, args, err := r.sb.Select("id").From("users").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	existing := make([]uuid.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		existing = append(existing, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return models.NormalizeIDs(existing), nil
}

// ListActive - кандидаты для списка доступа, по имени
func (r *UserRepo) ListActive(ctx context.Context) ([]models.User, error) {
	const op = "repository.user_repository.ListActive"

	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"active": true}).
		OrderBy("name", "email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}
