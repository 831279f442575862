package services

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTx struct {
	Calls int
}

func (t *MockTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGallery(ctx context.Context, gallery models.Gallery) (int64, error) {
	args := m.Called(ctx, gallery)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryByID(ctx context.Context, galleryID int64) (models.Gallery, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) GetOpenGalleryByMember(ctx context.Context, memberID int64) (models.Gallery, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) ExistsOpenGallery(ctx context.Context, memberID int64) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGalleryRepository) UpdateGallery(ctx context.Context, gallery models.Gallery) error {
	args := m.Called(ctx, gallery)
	return args.Error(0)
}

func (m *MockGalleryRepository) UpdateGalleryStatus(ctx context.Context, galleryID int64, status models.GalleryStatus) error {
	args := m.Called(ctx, galleryID, status)
	return args.Error(0)
}

type MockArtworkRepository struct {
	mock.Mock
}

func (m *MockArtworkRepository) CreateArtwork(ctx context.Context, artwork models.Artwork) (int64, error) {
	args := m.Called(ctx, artwork)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtworkRepository) GetArtworkByID(ctx context.Context, artworkID int64) (models.Artwork, error) {
	args := m.Called(ctx, artworkID)
	return args.Get(0).(models.Artwork), args.Error(1)
}

func (m *MockArtworkRepository) GetArtworkView(ctx context.Context, artworkID int64) (models.ArtworkView, error) {
	args := m.Called(ctx, artworkID)
	return args.Get(0).(models.ArtworkView), args.Error(1)
}

func (m *MockArtworkRepository) ListArtworkViews(ctx context.Context, galleryID int64) ([]models.ArtworkView, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).([]models.ArtworkView), args.Error(1)
}

func (m *MockArtworkRepository) TopArtworkViews(ctx context.Context, galleryID int64, limit int) ([]models.ArtworkView, error) {
	args := m.Called(ctx, galleryID, limit)
	return args.Get(0).([]models.ArtworkView), args.Error(1)
}

func (m *MockArtworkRepository) UpdateArtwork(ctx context.Context, artwork models.Artwork) error {
	args := m.Called(ctx, artwork)
	return args.Error(0)
}

func (m *MockArtworkRepository) DeleteArtwork(ctx context.Context, artworkID int64) error {
	args := m.Called(ctx, artworkID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(ctx context.Context, comment models.Comment) (int64, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) GetCommentByID(ctx context.Context, commentID int64) (models.Comment, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetCommentView(ctx context.Context, commentID int64) (models.CommentView, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(models.CommentView), args.Error(1)
}

func (m *MockCommentRepository) ListGalleryComments(ctx context.Context, galleryID int64, page, size int) ([]models.CommentView, int64, error) {
	args := m.Called(ctx, galleryID, page, size)
	return args.Get(0).([]models.CommentView), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListArtworkComments(ctx context.Context, artworkID int64, page, size int) ([]models.CommentView, int64, error) {
	args := m.Called(ctx, artworkID, page, size)
	return args.Get(0).([]models.CommentView), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateCommentContent(ctx context.Context, commentID int64, content string) error {
	args := m.Called(ctx, commentID, content)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteComment(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Emit(ctx context.Context, event models.AlarmEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

const (
	galleryOwnerID int64 = 9
	artistID       int64 = 2
	commenterID    int64 = 3
	galleryID      int64 = 4
	artworkID      int64 = 40
	commentID      int64 = 400
)

type commentDeps struct {
	tx        *MockTx
	galleries *MockGalleryRepository
	artworks  *MockArtworkRepository
	comments  *MockCommentRepository
	alarms    *MockNotifier
}

func newCommentService() (*CommentService, commentDeps) {
	d := commentDeps{
		tx:        new(MockTx),
		galleries: new(MockGalleryRepository),
		artworks:  new(MockArtworkRepository),
		comments:  new(MockCommentRepository),
		alarms:    new(MockNotifier),
	}
	svc := NewCommentService(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})), d.tx, d.galleries, d.artworks, d.comments, d.alarms)
	return svc, d
}

func openGallery() models.Gallery {
	return models.Gallery{ID: galleryID, MemberID: galleryOwnerID, Status: models.GalleryOpen}
}

func strPtr(s string) *string { return &s }

func TestCommentService_CreateOnGallery(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		content   string
		mockSetup func(d commentDeps)
		wantErr   error
	}{
		{
			name:    "notifies gallery owner",
			content: "lovely",
			mockSetup: func(d commentDeps) {
				d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
				d.comments.On("CreateComment", ctx, models.Comment{
					GalleryID: galleryID,
					MemberID:  commenterID,
					Content:   "lovely",
				}).Return(commentID, nil).Once()
				gid := galleryID
				d.alarms.On("Emit", ctx, models.AlarmEvent{
					SenderID:   commenterID,
					ReceiverID: galleryOwnerID,
					Type:       models.AlarmCommentGallery,
					GalleryID:  &gid,
				}).Return(nil).Once()
				d.comments.On("GetCommentView", ctx, commentID).
					Return(models.CommentView{Comment: models.Comment{ID: commentID, Content: "lovely"}}, nil).Once()
			},
		},
		{
			name:    "blank content",
			content: "  \t",
			mockSetup: func(d commentDeps) {
				d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
			},
			wantErr: errs.ErrInvalidContent,
		},
		{
			name:    "content over 30 characters",
			content: strings.Repeat("a", 31),
			mockSetup: func(d commentDeps) {
				d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
			},
			wantErr: errs.ErrInvalidContent,
		},
		{
			name:    "missing gallery",
			content: "lovely",
			mockSetup: func(d commentDeps) {
				d.galleries.On("GetGalleryByID", ctx, galleryID).
					Return(models.Gallery{}, storage.ErrGalleryNotFound).Once()
			},
			wantErr: errs.ErrGalleryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newCommentService()
			tt.mockSetup(d)

			view, err := svc.CreateOnGallery(ctx, commenterID, galleryID, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				d.comments.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, commentID, view.ID)
			}

			d.comments.AssertExpectations(t)
			d.alarms.AssertExpectations(t)
		})
	}
}

func TestCommentService_CreateOnArtwork(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		artworkOwn int64
		wantAlarms int
	}{
		{name: "artwork owner is gallery owner", artworkOwn: galleryOwnerID, wantAlarms: 1},
		{name: "artwork owner differs", artworkOwn: artistID, wantAlarms: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newCommentService()

			d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
			d.artworks.On("GetArtworkByID", ctx, artworkID).
				Return(models.Artwork{ID: artworkID, GalleryID: galleryID, MemberID: tt.artworkOwn}, nil).Once()
			d.comments.On("CreateComment", ctx, mock.MatchedBy(func(c models.Comment) bool {
				return c.ArtworkID != nil && *c.ArtworkID == artworkID && c.GalleryID == galleryID
			})).Return(commentID, nil).Once()
			d.alarms.On("Emit", ctx, mock.MatchedBy(func(e models.AlarmEvent) bool {
				return e.Type == models.AlarmCommentArtwork && e.SenderID == commenterID
			})).Return(nil).Times(tt.wantAlarms)
			d.comments.On("GetCommentView", ctx, commentID).
				Return(models.CommentView{Comment: models.Comment{ID: commentID}}, nil).Once()

			_, err := svc.CreateOnArtwork(ctx, commenterID, galleryID, artworkID, "nice cut")
			require.NoError(t, err)

			d.alarms.AssertExpectations(t)
			d.alarms.AssertNumberOfCalls(t, "Emit", tt.wantAlarms)

			receivers := make([]int64, 0, tt.wantAlarms)
			for _, call := range d.alarms.Calls {
				receivers = append(receivers, call.Arguments.Get(1).(models.AlarmEvent).ReceiverID)
			}
			assert.Contains(t, receivers, galleryOwnerID)
			assert.Contains(t, receivers, tt.artworkOwn)
		})
	}

	t.Run("artwork from another gallery", func(t *testing.T) {
		svc, d := newCommentService()

		d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
		d.artworks.On("GetArtworkByID", ctx, artworkID).
			Return(models.Artwork{ID: artworkID, GalleryID: 77}, nil).Once()

		_, err := svc.CreateOnArtwork(ctx, commenterID, galleryID, artworkID, "nice cut")
		assert.ErrorIs(t, err, errs.ErrArtworkNotFoundFromGallery)
	})
}

func TestCommentService_Page(t *testing.T) {
	ctx := context.Background()

	t.Run("page info", func(t *testing.T) {
		svc, d := newCommentService()
		views := []models.CommentView{
			{Comment: models.Comment{ID: 12}},
			{Comment: models.Comment{ID: 11}},
		}

		d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
		d.comments.On("ListGalleryComments", ctx, galleryID, 2, 10).Return(views, int64(12), nil).Once()

		page, err := svc.Page(ctx, galleryID, 2, 0)
		require.NoError(t, err)

		assert.Equal(t, galleryID, page.GalleryID)
		assert.Nil(t, page.ArtworkID)
		assert.Equal(t, views, page.Comments)
		assert.Equal(t, models.PageInfo{Page: 2, Size: 10, TotalElements: 12, TotalPages: 2}, page.PageInfo)
	})

	t.Run("missing gallery is an error, not an empty page", func(t *testing.T) {
		svc, d := newCommentService()
		d.galleries.On("GetGalleryByID", ctx, galleryID).
			Return(models.Gallery{}, storage.ErrGalleryNotFound).Once()

		_, err := svc.Page(ctx, galleryID, 1, 10)

		assert.ErrorIs(t, err, errs.ErrGalleryNotFound)
		d.comments.AssertNotCalled(t, "ListGalleryComments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("artwork page", func(t *testing.T) {
		svc, d := newCommentService()

		d.artworks.On("GetArtworkByID", ctx, artworkID).
			Return(models.Artwork{ID: artworkID, GalleryID: galleryID}, nil).Once()
		d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
		d.comments.On("ListArtworkComments", ctx, artworkID, 1, 5).
			Return([]models.CommentView{}, int64(0), nil).Once()

		page, err := svc.PageForArtwork(ctx, galleryID, artworkID, 1, 5)
		require.NoError(t, err)

		require.NotNil(t, page.ArtworkID)
		assert.Equal(t, artworkID, *page.ArtworkID)
		assert.Equal(t, 0, page.PageInfo.TotalPages)
		d.comments.AssertExpectations(t)
	})
}

func TestCommentService_Modify(t *testing.T) {
	ctx := context.Background()
	stored := models.Comment{ID: commentID, GalleryID: galleryID, MemberID: commenterID, Content: "old"}

	tests := []struct {
		name      string
		memberID  int64
		content   *string
		mockSetup func(d commentDeps)
		wantErr   error
	}{
		{
			name:     "author changes content",
			memberID: commenterID,
			content:  strPtr("new"),
			mockSetup: func(d commentDeps) {
				d.comments.On("UpdateCommentContent", ctx, commentID, "new").Return(nil).Once()
				d.comments.On("GetCommentView", ctx, commentID).
					Return(models.CommentView{Comment: models.Comment{ID: commentID, Content: "new"}}, nil).Once()
			},
		},
		{
			name:     "nil content leaves comment unchanged",
			memberID: commenterID,
			mockSetup: func(d commentDeps) {
				d.comments.On("GetCommentView", ctx, commentID).
					Return(models.CommentView{Comment: stored}, nil).Once()
			},
		},
		{
			name:      "gallery owner is not the author",
			memberID:  galleryOwnerID,
			content:   strPtr("new"),
			mockSetup: func(d commentDeps) {},
			wantErr:   errs.ErrUnauthorized,
		},
		{
			name:      "blank content",
			memberID:  commenterID,
			content:   strPtr(" "),
			mockSetup: func(d commentDeps) {},
			wantErr:   errs.ErrInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newCommentService()
			d.comments.On("GetCommentByID", ctx, commentID).Return(stored, nil).Once()
			d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
			tt.mockSetup(d)

			_, err := svc.Modify(ctx, galleryID, commentID, tt.memberID, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				d.comments.AssertNotCalled(t, "UpdateCommentContent", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			d.comments.AssertExpectations(t)
		})
	}

	t.Run("comment from another gallery", func(t *testing.T) {
		svc, d := newCommentService()
		other := stored
		other.GalleryID = 77
		d.comments.On("GetCommentByID", ctx, commentID).Return(other, nil).Once()
		d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()

		_, err := svc.Modify(ctx, galleryID, commentID, commenterID, strPtr("new"))
		assert.ErrorIs(t, err, errs.ErrCommentNotFoundFromGallery)
	})

	t.Run("missing comment", func(t *testing.T) {
		svc, d := newCommentService()
		d.comments.On("GetCommentByID", ctx, commentID).Return(models.Comment{}, storage.ErrCommentNotFound).Once()

		_, err := svc.Modify(ctx, galleryID, commentID, commenterID, strPtr("new"))
		assert.ErrorIs(t, err, errs.ErrCommentNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	stored := models.Comment{ID: commentID, GalleryID: galleryID, MemberID: commenterID}

	tests := []struct {
		name     string
		memberID int64
		wantErr  error
	}{
		{name: "author", memberID: commenterID},
		{name: "gallery owner", memberID: galleryOwnerID},
		{name: "stranger", memberID: artistID, wantErr: errs.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newCommentService()
			d.comments.On("GetCommentByID", ctx, commentID).Return(stored, nil).Once()
			d.galleries.On("GetGalleryByID", ctx, galleryID).Return(openGallery(), nil).Once()
			if tt.wantErr == nil {
				d.comments.On("DeleteComment", ctx, commentID).Return(nil).Once()
			}

			err := svc.Delete(ctx, galleryID, commentID, tt.memberID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			d.comments.AssertExpectations(t)
		})
	}
}
