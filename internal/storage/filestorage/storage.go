package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	appstorage "user_galleries/internal/storage"
)

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог (например: "./uploads")
	baseURL string // Базовый URL (например: "http://localhost:8080/uploads")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// URL возвращает публичную ссылку на файл, если он есть на диске
func (s *LocalFileStorage) URL(ctx context.Context, relativePath string) (string, error) {
	const op = "filestorage.LocalFileStorage.URL"

	ok, err := s.Exists(ctx, relativePath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", fmt.Errorf("%s: %w", op, appstorage.ErrObjectNotFound)
	}

	u, err := url.JoinPath(s.baseURL, filepath.ToSlash(relativePath))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (s *LocalFileStorage) Exists(ctx context.Context, relativePath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	clean := filepath.Clean("/" + relativePath)
	_, err := os.Stat(filepath.Join(s.baseDir, clean))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
