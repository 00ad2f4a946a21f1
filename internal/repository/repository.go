package repository

import (
	"context"
	"fmt"

	redisapp "user_galleries/internal/storage/redis"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db      *pgxpool.Pool
	Gallery GalleryRepository
	File    FileRepository
	User    UserRepository
	Block   BlockRepository
}

func NewRepository(ctx context.Context, dsn string, redisClient *redisapp.Client) (*Repository, error) {
	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		db:      db,
		Gallery: NewGalleryRepo(db),
		File:    NewFileRepository(db),
		User:    NewUserRepository(db),
		Block:   NewRedisBlockRepo(redisClient),
	}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repository) Close() {
	r.db.Close()
}
