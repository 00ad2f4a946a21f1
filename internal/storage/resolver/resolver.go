package resolver

import (
	"context"
	"fmt"
	"time"

	"user_galleries/internal/domain/models"

	"github.com/patrickmn/go-cache"
)

type PublicStorage interface {
	URL(ctx context.Context, relativePath string) (string, error)
}

type PrivateStorage interface {
	PresignedURL(ctx context.Context, objectName string) (string, error)
	Expiry() time.Duration
}

// Resolver превращает запись о файле в ссылку для отображения.
// Публичные файлы отдаются как статика, приватные - presigned ссылкой из minio.
type Resolver struct {
	public  PublicStorage
	private PrivateStorage
	cache   *cache.Cache
}

func New(public PublicStorage, private PrivateStorage) *Resolver {
	ttl := time.Minute
	if private != nil {
		// ссылка из кэша должна жить дольше, чем лежит в кэше
		ttl = private.Expiry() / 2
	}

	return &Resolver{
		public:  public,
		private: private,
		cache:   cache.New(ttl, 2*ttl),
	}
}

func (r *Resolver) ResolveURL(ctx context.Context, file models.File) (string, error) {
	const op = "resolver.Resolver.ResolveURL"

	switch file.Scheme {
	case models.FileSchemePublic:
		u, err := r.public.URL(ctx, file.StoragePath)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return u, nil

	case models.FileSchemePrivate:
		if r.private == nil {
			return "", fmt.Errorf("%s: private storage is not configured", op)
		}

		key := file.ID.String()
		if cached, ok := r.cache.Get(key); ok {
			return cached.(string), nil
		}

		u, err := r.private.PresignedURL(ctx, file.StoragePath)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		r.cache.SetDefault(key, u)
		return u, nil

	default:
		return "", fmt.Errorf("%s: unknown file scheme %q", op, file.Scheme)
	}
}
