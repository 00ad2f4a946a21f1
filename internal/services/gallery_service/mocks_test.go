package services

import (
	"context"
	"log/slog"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/services/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, bool, error) {
	args := m.Called(ctx, gallery)
	if fn, ok := args.Get(0).(func(context.Context, models.Gallery) models.Gallery); ok {
		return fn(ctx, gallery), args.Bool(1), args.Error(2)
	}
	return args.Get(0).(models.Gallery), args.Bool(1), args.Error(2)
}

func (m *MockGalleryRepository) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryByOwnerAndType(ctx context.Context, ownerID uuid.UUID, galleryType models.GalleryType) (models.Gallery, error) {
	args := m.Called(ctx, ownerID, galleryType)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) UpdateGallery(ctx context.Context, gallery models.Gallery) error {
	args := m.Called(ctx, gallery)
	return args.Error(0)
}

func (m *MockGalleryRepository) RemoveImage(ctx context.Context, gallery models.Gallery, fileID uuid.UUID, clearPicture bool) (bool, error) {
	args := m.Called(ctx, gallery, fileID, clearPicture)
	return args.Bool(0), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleries(ctx context.Context, page, perPage int) ([]models.GalleryListItem, int, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).([]models.GalleryListItem), args.Int(1), args.Error(2)
}

func (m *MockGalleryRepository) GetSharedWith(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleriesWithImages(ctx context.Context) ([]models.GalleryListItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.GalleryListItem), args.Error(1)
}

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (models.File, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.File), args.Error(1)
}

func (m *MockFileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.File, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]models.File), args.Error(1)
}

func (m *MockFileRepository) MarkPermanent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) SetPictureFileID(ctx context.Context, userID uuid.UUID, fileID *uuid.UUID) error {
	args := m.Called(ctx, userID, fileID)
	return args.Error(0)
}

func (m *MockUserRepository) ExistingUserIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) ListActive(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockBlockOracle struct {
	mock.Mock
}

func (m *MockBlockOracle) IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error) {
	args := m.Called(ctx, blocker, blocked)
	return args.Bool(0), args.Error(1)
}

type MockURLResolver struct {
	mock.Mock
}

func (m *MockURLResolver) ResolveURL(ctx context.Context, file models.File) (string, error) {
	args := m.Called(ctx, file)
	if fn, ok := args.Get(0).(func(context.Context, models.File) string); ok {
		return fn(ctx, file), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

type testDeps struct {
	galleries *MockGalleryRepository
	files     *MockFileRepository
	users     *MockUserRepository
	blocks    *MockBlockOracle
	urls      *MockURLResolver
	service   *GalleryService
}

func newTestDeps() *testDeps {
	d := &testDeps{
		galleries: new(MockGalleryRepository),
		files:     new(MockFileRepository),
		users:     new(MockUserRepository),
		blocks:    new(MockBlockOracle),
		urls:      new(MockURLResolver),
	}

	d.service = NewGalleryService(
		slog.Default(),
		d.galleries,
		d.files,
		d.users,
		access.New(d.blocks),
		d.urls,
	)

	return d
}

func (d *testDeps) assertExpectations(t mock.TestingT) {
	d.galleries.AssertExpectations(t)
	d.files.AssertExpectations(t)
	d.users.AssertExpectations(t)
	d.blocks.AssertExpectations(t)
	d.urls.AssertExpectations(t)
}

// noBlocks разрешает любые проверки блокировок с ответом "не заблокирован"
func (d *testDeps) noBlocks() {
	d.blocks.On("IsBlocked", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
}
