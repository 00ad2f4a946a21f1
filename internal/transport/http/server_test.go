package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapp "user_galleries/internal/app/http"
	"user_galleries/internal/domain/models"
	appjwt "user_galleries/internal/lib/jwt"
	"user_galleries/internal/services/access"
	gallery "user_galleries/internal/services/gallery_service"
	"user_galleries/internal/storage"
	httprouters "user_galleries/internal/transport/http"
	"user_galleries/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) ManagedGallery(ctx context.Context, actor models.Actor, ownerID uuid.UUID, t models.GalleryType) (models.Gallery, bool, error) {
	args := m.Called(ctx, actor, ownerID, t)
	return args.Get(0).(models.Gallery), args.Bool(1), args.Error(2)
}

func (m *MockGalleryService) ExistingManagedGallery(ctx context.Context, actor models.Actor, ownerID uuid.UUID, t models.GalleryType) (models.Gallery, error) {
	args := m.Called(ctx, actor, ownerID, t)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryService) Manage(ctx context.Context, actor models.Actor, ownerID uuid.UUID, t models.GalleryType) (models.ManagementView, []models.Event, error) {
	args := m.Called(ctx, actor, ownerID, t)
	return args.Get(0).(models.ManagementView), args.Get(1).([]models.Event), args.Error(2)
}

func (m *MockGalleryService) Reconcile(ctx context.Context, actor models.Actor, galleryID uuid.UUID, cmd models.ReconcileCommand) (models.Gallery, []models.Event, error) {
	args := m.Called(ctx, actor, galleryID, cmd)
	return args.Get(0).(models.Gallery), args.Get(1).([]models.Event), args.Error(2)
}

func (m *MockGalleryService) DeleteImage(ctx context.Context, actor models.Actor, galleryID, fileID uuid.UUID) (models.Gallery, []models.Event, error) {
	args := m.Called(ctx, actor, galleryID, fileID)
	return args.Get(0).(models.Gallery), args.Get(1).([]models.Event), args.Error(2)
}

func (m *MockGalleryService) SetProfilePicture(ctx context.Context, actor models.Actor, galleryID, fileID uuid.UUID) ([]models.Event, error) {
	args := m.Called(ctx, actor, galleryID, fileID)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockGalleryService) Display(ctx context.Context, ownerID uuid.UUID, t models.GalleryType, viewer models.Actor) (models.DisplayBlock, error) {
	args := m.Called(ctx, ownerID, t, viewer)
	return args.Get(0).(models.DisplayBlock), args.Error(1)
}

func (m *MockGalleryService) SharedWith(ctx context.Context, viewer models.Actor) ([]models.DisplayBlock, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).([]models.DisplayBlock), args.Error(1)
}

func (m *MockGalleryService) ListGalleries(ctx context.Context, actor models.Actor, page, perPage int) ([]models.GalleryListItem, int, error) {
	args := m.Called(ctx, actor, page, perPage)
	return args.Get(0).([]models.GalleryListItem), args.Int(1), args.Error(2)
}

func (m *MockGalleryService) AdminEditTarget(ctx context.Context, actor models.Actor, galleryID uuid.UUID) (uuid.UUID, models.GalleryType, error) {
	args := m.Called(ctx, actor, galleryID)
	return args.Get(0).(uuid.UUID), args.Get(1).(models.GalleryType), args.Error(2)
}

func (m *MockGalleryService) ScanOrphans(ctx context.Context, actor models.Actor) ([]models.OrphanReport, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]models.OrphanReport), args.Error(1)
}

func (m *MockGalleryService) CleanOrphans(ctx context.Context, actor models.Actor, ids []uuid.UUID) (models.CleanupResult, error) {
	args := m.Called(ctx, actor, ids)
	return args.Get(0).(models.CleanupResult), args.Error(1)
}

type MockUserLoader struct {
	mock.Mock
}

func (m *MockUserLoader) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

type testServer struct {
	handler   http.Handler
	galleries *MockGalleryService
	users     *MockUserLoader
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	galleries := new(MockGalleryService)
	users := new(MockUserLoader)

	routers := httprouters.NewRouter(log, galleries, access.New(nil), "galleries")
	server := httpapp.New(log, httpapp.Options{
		Port:          "0",
		JWTSecret:     testSecret,
		SessionSecret: "session-secret",
	}, routers, users)
	server.BuildRouters()

	return &testServer{handler: server.Handler(), galleries: galleries, users: users}
}

// login регистрирует пользователя в моке и возвращает токен
func (s *testServer) login(t *testing.T, user models.User) string {
	t.Helper()

	user.Active = true
	s.users.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	token, err := appjwt.NewToken(user.ID, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, target, token, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func galleryPath(ownerID uuid.UUID, t models.GalleryType, suffix string) string {
	return fmt.Sprintf("/api/v1/users/%s/galleries/%s%s", ownerID, t, suffix)
}

func TestDisplayGallery(t *testing.T) {
	ownerID := uuid.New()

	t.Run("anonymous viewer", func(t *testing.T) {
		s := newTestServer(t)
		block := models.DisplayBlock{
			Visible: true,
			OwnerID: ownerID,
			Type:    models.GalleryTypePublic,
			Images:  []models.DisplayImage{{FileID: uuid.New(), URL: "http://localhost/uploads/a.jpg"}},
		}
		s.galleries.On("Display", mock.Anything, ownerID, models.GalleryTypePublic, models.Anonymous()).Return(block, nil).Once()

		rec := s.do(http.MethodGet, galleryPath(ownerID, models.GalleryTypePublic, ""), "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data models.DisplayBlock `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Data.Visible)
		assert.Len(t, body.Data.Images, 1)
		s.galleries.AssertExpectations(t)
	})

	t.Run("logged in viewer", func(t *testing.T) {
		s := newTestServer(t)
		viewer := models.User{ID: uuid.New(), Permissions: []string{models.PermViewAnyPrivate}}
		token := s.login(t, viewer)
		s.galleries.On("Display", mock.Anything, ownerID, models.GalleryTypePrivate, mock.MatchedBy(func(a models.Actor) bool {
			return a.ID == viewer.ID && a.HasPermission(models.PermViewAnyPrivate)
		})).Return(models.DisplayBlock{Visible: true, Images: []models.DisplayImage{}}, nil).Once()

		rec := s.do(http.MethodGet, galleryPath(ownerID, models.GalleryTypePrivate, ""), token, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		s.galleries.AssertExpectations(t)
	})

	t.Run("broken token is rejected", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodGet, galleryPath(ownerID, models.GalleryTypePublic, ""), "not-a-jwt", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%s/galleries/shared-album", ownerID), "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid_gallery_type")
	})
}

func TestManageGallery(t *testing.T) {
	owner := models.User{ID: uuid.New(), Name: "lena"}

	t.Run("requires token", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(http.MethodGet, galleryPath(owner.ID, models.GalleryTypePublic, "/manage"), "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		s := newTestServer(t)
		stranger := models.User{ID: uuid.New()}
		token := s.login(t, stranger)
		s.galleries.On("Manage", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePrivate).
			Return(models.ManagementView{}, []models.Event(nil), fmt.Errorf("manage: %w", gallery.ErrAccessDenied)).Once()

		rec := s.do(http.MethodGet, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage"), token, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("created event is shown", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		view := models.ManagementView{Gallery: models.Gallery{ID: uuid.New(), OwnerID: owner.ID, Type: models.GalleryTypePublic}}
		s.galleries.On("Manage", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePublic).
			Return(view, []models.Event{models.GalleryCreated(models.GalleryTypePublic)}, nil).Once()

		rec := s.do(http.MethodGet, galleryPath(owner.ID, models.GalleryTypePublic, "/manage"), token, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data dto.ManageGalleryResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data.Messages, 1)
		assert.Equal(t, "A new public gallery has been created.", body.Data.Messages[0].Message)
	})
}

func TestSaveGallery(t *testing.T) {
	owner := models.User{ID: uuid.New(), Name: "mia"}
	g := models.Gallery{ID: uuid.New(), OwnerID: owner.ID, Type: models.GalleryTypePrivate}
	friend := uuid.New()

	t.Run("redirects and shows messages once", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		upload := uuid.New()

		s.galleries.On("ManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePrivate).Return(g, false, nil)
		s.galleries.On("Reconcile", mock.Anything, mock.Anything, g.ID, mock.MatchedBy(func(cmd models.ReconcileCommand) bool {
			return len(cmd.UploadedFileIDs) == 1 && cmd.UploadedFileIDs[0] == upload &&
				cmd.AllowedUsers != nil && len(*cmd.AllowedUsers) == 1 && (*cmd.AllowedUsers)[0] == friend &&
				cmd.ProfilePicture.Kind == models.SelectionNone
		})).Return(g, []models.Event{models.ImagesAdded(1), models.AllowListUpdated()}, nil).Once()

		body := fmt.Sprintf(`{"uploaded_file_ids":[%q],"allowed_users":[%q]}`, upload, friend)
		rec := s.do(http.MethodPost, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage?destination=/user/1"), token, body)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage?destination=%2Fuser%2F1"), rec.Header().Get("Location"))
		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)

		s.galleries.On("Manage", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePrivate).
			Return(models.ManagementView{Gallery: g}, []models.Event(nil), nil)

		rec = s.do(http.MethodGet, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage"), token, "", cookies...)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data dto.ManageGalleryResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Messages, 2)
		assert.Equal(t, "Added 1 new images.", resp.Data.Messages[0].Message)
		assert.Equal(t, "Access list updated.", resp.Data.Messages[1].Message)

		rec = s.do(http.MethodGet, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage"), token, "", rec.Result().Cookies()...)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data.Messages)
	})

	t.Run("empty string clears the allow-list", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		s.galleries.On("ManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePrivate).Return(g, false, nil)
		s.galleries.On("Reconcile", mock.Anything, mock.Anything, g.ID, mock.MatchedBy(func(cmd models.ReconcileCommand) bool {
			return cmd.AllowedUsers != nil && len(*cmd.AllowedUsers) == 0
		})).Return(g, []models.Event{models.AllowListUpdated()}, nil).Once()

		rec := s.do(http.MethodPost, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage"), token, `{"allowed_users":""}`)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		s.galleries.AssertExpectations(t)
	})

	t.Run("absent allow-list means no change", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		s.galleries.On("ManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePublic).Return(g, false, nil)
		s.galleries.On("Reconcile", mock.Anything, mock.Anything, g.ID, mock.MatchedBy(func(cmd models.ReconcileCommand) bool {
			return cmd.AllowedUsers == nil && cmd.ProfilePicture.Kind == models.SelectionClear
		})).Return(g, []models.Event{models.ProfilePictureRemoved()}, nil).Once()

		rec := s.do(http.MethodPost, galleryPath(owner.ID, models.GalleryTypePublic, "/manage"), token, `{"profile_picture":"clear"}`)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		s.galleries.AssertExpectations(t)
	})

	t.Run("invalid ids are rejected before the service", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)

		for _, body := range []string{
			`{"uploaded_file_ids":["42"]}`,
			`{"allowed_users":["nope"]}`,
			`{"profile_picture":"maybe"}`,
		} {
			rec := s.do(http.MethodPost, galleryPath(owner.ID, models.GalleryTypePrivate, "/manage"), token, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		s.galleries.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteImageAndProfilePicture(t *testing.T) {
	owner := models.User{ID: uuid.New(), Name: "nia"}
	g := models.Gallery{ID: uuid.New(), OwnerID: owner.ID, Type: models.GalleryTypePublic}
	fileID := uuid.New()

	t.Run("delete", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		s.galleries.On("ExistingManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePublic).Return(g, nil)
		s.galleries.On("DeleteImage", mock.Anything, mock.Anything, g.ID, fileID).
			Return(g, []models.Event{models.ImageDeleted(models.GalleryTypePublic), models.ProfilePictureCleared()}, nil).Once()

		rec := s.do(http.MethodDelete, galleryPath(owner.ID, models.GalleryTypePublic, "/images/"+fileID.String()), token, "")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		s.galleries.AssertExpectations(t)
	})

	t.Run("delete with bad file id", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		rec := s.do(http.MethodDelete, galleryPath(owner.ID, models.GalleryTypePublic, "/images/42"), token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete from a gallery that does not exist yet", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		s.galleries.On("ExistingManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePrivate).
			Return(models.Gallery{}, fmt.Errorf("load: %w", gallery.ErrGalleryNotFound)).Once()

		rec := s.do(http.MethodDelete, galleryPath(owner.ID, models.GalleryTypePrivate, "/images/"+fileID.String()), token, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		s.galleries.AssertNotCalled(t, "ManagedGallery", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		s.galleries.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		s.galleries.AssertExpectations(t)
	})

	t.Run("profile picture", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		s.galleries.On("ExistingManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePublic).Return(g, nil)
		s.galleries.On("SetProfilePicture", mock.Anything, mock.Anything, g.ID, fileID).
			Return([]models.Event{models.ProfilePictureUpdated()}, nil).Once()

		rec := s.do(http.MethodPut, galleryPath(owner.ID, models.GalleryTypePublic, "/profile-picture/"+fileID.String()), token, "")

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		s.galleries.AssertExpectations(t)
	})

	t.Run("profile picture on private gallery", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)

		rec := s.do(http.MethodPut, galleryPath(owner.ID, models.GalleryTypePrivate, "/profile-picture/"+fileID.String()), token, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		s.galleries.AssertNotCalled(t, "ManagedGallery", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		s.galleries.AssertNotCalled(t, "ExistingManagedGallery", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		s.galleries.AssertNotCalled(t, "SetProfilePicture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile picture without a public gallery", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, owner)
		s.galleries.On("ExistingManagedGallery", mock.Anything, mock.Anything, owner.ID, models.GalleryTypePublic).
			Return(models.Gallery{}, fmt.Errorf("load: %w", gallery.ErrGalleryNotFound)).Once()

		rec := s.do(http.MethodPut, galleryPath(owner.ID, models.GalleryTypePublic, "/profile-picture/"+fileID.String()), token, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		s.galleries.AssertNotCalled(t, "SetProfilePicture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateGalleryIsForbidden(t *testing.T) {
	s := newTestServer(t)
	admin := models.User{ID: uuid.New(), Permissions: []string{models.PermManageGalleries}}
	token := s.login(t, admin)

	rec := s.do(http.MethodPost, "/api/v1/galleries", token, `{"title":"x"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "gallery_create_forbidden")
}

func TestAdminRoutes(t *testing.T) {
	admin := models.User{ID: uuid.New(), Permissions: []string{models.PermManageGalleries}}

	t.Run("regular user", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, models.User{ID: uuid.New()})
		rec := s.do(http.MethodGet, "/api/v1/admin/galleries", token, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown user in token", func(t *testing.T) {
		s := newTestServer(t)
		ghost := uuid.New()
		s.users.On("GetUserByID", mock.Anything, ghost).Return(models.User{}, storage.ErrUserNotFound)
		token, err := appjwt.NewToken(ghost, testSecret, time.Hour)
		require.NoError(t, err)

		rec := s.do(http.MethodGet, "/api/v1/admin/galleries", token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("list with default paging", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, admin)
		s.galleries.On("ListGalleries", mock.Anything, mock.Anything, 1, 20).
			Return([]models.GalleryListItem{{OwnerName: "ola"}}, 1, nil).Once()

		rec := s.do(http.MethodGet, "/api/v1/admin/galleries?per_page=1000", token, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"owner_name":"ola"`)
		s.galleries.AssertExpectations(t)
	})

	t.Run("edit redirects to the manage form", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, admin)
		galleryID, ownerID := uuid.New(), uuid.New()
		s.galleries.On("AdminEditTarget", mock.Anything, mock.Anything, galleryID).
			Return(ownerID, models.GalleryTypePrivate, nil).Once()

		rec := s.do(http.MethodGet, "/api/v1/admin/galleries/"+galleryID.String()+"/edit?destination=/admin/galleries", token, "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, galleryPath(ownerID, models.GalleryTypePrivate, "/manage?destination=%2Fadmin%2Fgalleries"), rec.Header().Get("Location"))
	})

	t.Run("edit of a broken gallery goes home", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, admin)
		galleryID := uuid.New()
		s.galleries.On("AdminEditTarget", mock.Anything, mock.Anything, galleryID).
			Return(uuid.Nil, models.GalleryType(""), fmt.Errorf("edit: %w", gallery.ErrGalleryInvariant)).Once()

		rec := s.do(http.MethodGet, "/api/v1/admin/galleries/"+galleryID.String()+"/edit", token, "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("edit of a missing gallery", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, admin)
		galleryID := uuid.New()
		s.galleries.On("AdminEditTarget", mock.Anything, mock.Anything, galleryID).
			Return(uuid.Nil, models.GalleryType(""), gallery.ErrGalleryNotFound).Once()

		rec := s.do(http.MethodGet, "/api/v1/admin/galleries/"+galleryID.String()+"/edit", token, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("clean orphans", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, admin)
		galleryID := uuid.New()
		s.galleries.On("CleanOrphans", mock.Anything, mock.Anything, []uuid.UUID{galleryID}).
			Return(models.CleanupResult{GalleriesProcessed: 1, ReferencesCleaned: 3, Events: []models.Event{}}, nil).Once()

		rec := s.do(http.MethodPost, "/api/v1/admin/galleries/orphans", token, fmt.Sprintf(`{"gallery_ids":[%q]}`, galleryID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"references_cleaned":3`)
	})

	t.Run("clean orphans needs ids", func(t *testing.T) {
		s := newTestServer(t)
		token := s.login(t, admin)
		rec := s.do(http.MethodPost, "/api/v1/admin/galleries/orphans", token, `{"gallery_ids":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
