package repository

import (
	"context"

	"fourcut/internal/domain/models"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type MemberRepository interface {
	GetMemberByID(ctx context.Context, memberID int64) (models.Member, error)
}

type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery models.Gallery) (int64, error)
	GetGalleryByID(ctx context.Context, galleryID int64) (models.Gallery, error)
	GetOpenGalleryByMember(ctx context.Context, memberID int64) (models.Gallery, error)
	ExistsOpenGallery(ctx context.Context, memberID int64) (bool, error)
	UpdateGallery(ctx context.Context, gallery models.Gallery) error
	UpdateGalleryStatus(ctx context.Context, galleryID int64, status models.GalleryStatus) error
}

type ArtworkRepository interface {
	CreateArtwork(ctx context.Context, artwork models.Artwork) (int64, error)
	GetArtworkByID(ctx context.Context, artworkID int64) (models.Artwork, error)
	GetArtworkView(ctx context.Context, artworkID int64) (models.ArtworkView, error)
	ListArtworkViews(ctx context.Context, galleryID int64) ([]models.ArtworkView, error)
	TopArtworkViews(ctx context.Context, galleryID int64, limit int) ([]models.ArtworkView, error)
	UpdateArtwork(ctx context.Context, artwork models.Artwork) error
	DeleteArtwork(ctx context.Context, artworkID int64) error
}

type LikeRepository interface {
	GetLikeForUpdate(ctx context.Context, memberID, artworkID int64) (models.ArtworkLike, error)
	CreateLike(ctx context.Context, like models.ArtworkLike) (int64, error)
	UpdateLikeStatus(ctx context.Context, likeID int64, status models.LikeStatus) error
	LikedArtworkIDs(ctx context.Context, memberID int64, artworkIDs []int64) (map[int64]bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (int64, error)
	GetCommentByID(ctx context.Context, commentID int64) (models.Comment, error)
	GetCommentView(ctx context.Context, commentID int64) (models.CommentView, error)
	ListGalleryComments(ctx context.Context, galleryID int64, page, size int) ([]models.CommentView, int64, error)
	ListArtworkComments(ctx context.Context, artworkID int64, page, size int) ([]models.CommentView, int64, error)
	UpdateCommentContent(ctx context.Context, commentID int64, content string) error
	DeleteComment(ctx context.Context, commentID int64) error
}

type AlarmRepository interface {
	CreateAlarm(ctx context.Context, alarm models.Alarm) (int64, error)
	GetAlarmByID(ctx context.Context, alarmID int64) (models.Alarm, error)
	MarkAlarmRead(ctx context.Context, alarmID int64) error
	ListAlarms(ctx context.Context, receiverID int64, filter models.AlarmFilter, page, size int) ([]models.AlarmView, int64, error)
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
}

// AlarmCacheRepository кеш счетчика непрочитанных. Запись проходит только если версия
// получателя не изменилась с момента UnreadVersion.
type AlarmCacheRepository interface {
	GetUnreadCount(ctx context.Context, receiverID int64) (int64, bool, error)
	UnreadVersion(ctx context.Context, receiverID int64) (int64, error)
	SetUnreadCount(ctx context.Context, receiverID int64, count, version int64) (bool, error)
	InvalidateUnreadCount(ctx context.Context, receiverIDs ...int64) error
}
