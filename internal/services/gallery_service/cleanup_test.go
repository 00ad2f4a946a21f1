package services

import (
	"context"
	"testing"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGalleryService_ScanOrphans(t *testing.T) {
	ctx := context.Background()
	admin := models.Actor{ID: uuid.New(), Permissions: []string{models.PermManageGalleries}}
	live, gone := uuid.New(), uuid.New()

	clean := models.Gallery{ID: uuid.New(), Title: "clean", Images: models.ImageList{{FileID: live}}}
	dirty := models.Gallery{ID: uuid.New(), Title: "dirty", Images: models.ImageList{{FileID: live}, {FileID: gone}}}

	t.Run("reports galleries with missing files", func(t *testing.T) {
		d := newTestDeps()
		d.galleries.On("GetGalleriesWithImages", ctx).Return([]models.GalleryListItem{
			{Gallery: clean, OwnerName: "jo"},
			{Gallery: dirty, OwnerName: "kim"},
		}, nil).Once()
		d.files.On("FindByIDs", ctx, []uuid.UUID{live, live, gone}).
			Return(map[uuid.UUID]models.File{live: publicFile(live)}, nil).Once()

		reports, err := d.service.ScanOrphans(ctx, admin)

		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, dirty.ID, reports[0].GalleryID)
		assert.Equal(t, "kim", reports[0].OwnerName)
		assert.Equal(t, []uuid.UUID{gone}, reports[0].OrphanRefs)
		d.assertExpectations(t)
	})

	t.Run("non admin", func(t *testing.T) {
		d := newTestDeps()
		_, err := d.service.ScanOrphans(ctx, models.Actor{ID: uuid.New()})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGalleryService_CleanOrphans(t *testing.T) {
	ctx := context.Background()
	admin := models.Actor{ID: uuid.New(), Permissions: []string{models.PermManageGalleries}}
	live, gone1, gone2 := uuid.New(), uuid.New(), uuid.New()

	dirty := models.Gallery{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Type:    models.GalleryTypePublic,
		Title:   "dirty",
		Images:  models.ImageList{{FileID: gone1}, {FileID: live}, {FileID: gone2}},
	}
	clean := models.Gallery{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Type:    models.GalleryTypePrivate,
		Title:   "clean",
		Images:  models.ImageList{{FileID: live}},
	}
	missing := uuid.New()

	d := newTestDeps()
	d.galleries.On("GetGalleryByID", ctx, dirty.ID).Return(dirty, nil).Once()
	d.galleries.On("GetGalleryByID", ctx, clean.ID).Return(clean, nil).Once()
	d.galleries.On("GetGalleryByID", ctx, missing).Return(models.Gallery{}, storage.ErrGalleryNotFound).Once()
	d.files.On("FindByIDs", ctx, []uuid.UUID{gone1, live, gone2}).
		Return(map[uuid.UUID]models.File{live: publicFile(live)}, nil).Once()
	d.files.On("FindByIDs", ctx, []uuid.UUID{live}).
		Return(map[uuid.UUID]models.File{live: publicFile(live)}, nil).Once()
	d.galleries.On("UpdateGallery", ctx, mock.MatchedBy(func(g models.Gallery) bool {
		return g.ID == dirty.ID && len(g.Images) == 1 && g.Images[0].FileID == live
	})).Return(nil).Once()

	result, err := d.service.CleanOrphans(ctx, admin, []uuid.UUID{dirty.ID, clean.ID, missing, dirty.ID})

	require.NoError(t, err)
	assert.Equal(t, 2, result.GalleriesProcessed)
	assert.Equal(t, 2, result.ReferencesCleaned)
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.EventOrphanReferencesCleaned, result.Events[0].Kind)
	assert.Equal(t, 2, result.Events[0].Count)
	d.assertExpectations(t)
	d.galleries.AssertNumberOfCalls(t, "UpdateGallery", 1)
}
