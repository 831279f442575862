package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/lib/pagination"
	"fourcut/internal/repository"
	"fourcut/internal/services/access"
	"fourcut/internal/storage"
)

const maxCommentLen = 30

type Notifier interface {
	Emit(ctx context.Context, event models.AlarmEvent) error
}

type CommentService struct {
	log       *slog.Logger
	tx        repository.Transactor
	galleries repository.GalleryRepository
	artworks  repository.ArtworkRepository
	comments  repository.CommentRepository
	alarms    Notifier
}

func NewCommentService(
	log *slog.Logger,
	tx repository.Transactor,
	galleries repository.GalleryRepository,
	artworks repository.ArtworkRepository,
	comments repository.CommentRepository,
	alarms Notifier,
) *CommentService {
	return &CommentService{
		log:       log,
		tx:        tx,
		galleries: galleries,
		artworks:  artworks,
		comments:  comments,
		alarms:    alarms,
	}
}

// CreateOnGallery комментарий к галерее; владелец галереи получает COMMENT_GALLERY.
func (s *CommentService) CreateOnGallery(ctx context.Context, memberID, galleryID int64, content string) (models.CommentView, error) {
	const op = "service.CommentService.CreateOnGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("gallery_id", galleryID),
	)

	gallery, err := access.OpenGallery(ctx, s.galleries, galleryID)
	if err != nil {
		log.Debug("gallery does not accept comments", slog.Any("err", err))
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateContent(content); err != nil {
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	events := []models.AlarmEvent{{
		SenderID:   memberID,
		ReceiverID: gallery.MemberID,
		Type:       models.AlarmCommentGallery,
		GalleryID:  &galleryID,
	}}

	view, err := s.create(ctx, models.Comment{
		GalleryID: galleryID,
		MemberID:  memberID,
		Content:   content,
	}, events)
	if err != nil {
		log.Error("failed to create comment", slog.Any("err", err))
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("comment created", slog.Int64("comment_id", view.ID))
	return view, nil
}

// CreateOnArtwork комментарий к работе. Владелец галереи получает COMMENT_ARTWORK,
// автор работы получает второе уведомление, только если это другой участник.
func (s *CommentService) CreateOnArtwork(ctx context.Context, memberID, galleryID, artworkID int64, content string) (models.CommentView, error) {
	const op = "service.CommentService.CreateOnArtwork"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("gallery_id", galleryID),
		slog.Int64("artwork_id", artworkID),
	)

	gallery, err := access.OpenGallery(ctx, s.galleries, galleryID)
	if err != nil {
		log.Debug("gallery does not accept comments", slog.Any("err", err))
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	artwork, err := access.Artwork(ctx, s.artworks, artworkID)
	if err != nil {
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}
	if !artwork.BelongsTo(galleryID) {
		return models.CommentView{}, fmt.Errorf("%s: %w", op, errs.ErrArtworkNotFoundFromGallery)
	}

	if err := validateContent(content); err != nil {
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	events := []models.AlarmEvent{{
		SenderID:   memberID,
		ReceiverID: gallery.MemberID,
		Type:       models.AlarmCommentArtwork,
		GalleryID:  &galleryID,
		ArtworkID:  &artworkID,
	}}
	if artwork.MemberID != gallery.MemberID {
		events = append(events, models.AlarmEvent{
			SenderID:   memberID,
			ReceiverID: artwork.MemberID,
			Type:       models.AlarmCommentArtwork,
			GalleryID:  &galleryID,
			ArtworkID:  &artworkID,
		})
	}

	view, err := s.create(ctx, models.Comment{
		GalleryID: galleryID,
		ArtworkID: &artworkID,
		MemberID:  memberID,
		Content:   content,
	}, events)
	if err != nil {
		log.Error("failed to create comment", slog.Any("err", err))
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("comment created", slog.Int64("comment_id", view.ID), slog.Int("alarms", len(events)))
	return view, nil
}

// Page страница комментариев галереи, включая комментарии к ее работам. Новые первыми.
func (s *CommentService) Page(ctx context.Context, galleryID int64, page, size int) (models.CommentPage, error) {
	const op = "service.CommentService.Page"

	if _, err := access.Gallery(ctx, s.galleries, galleryID); err != nil {
		return models.CommentPage{}, fmt.Errorf("%s: %w", op, err)
	}

	page, size = pagination.Normalize(page, size)

	views, total, err := s.comments.ListGalleryComments(ctx, galleryID, page, size)
	if err != nil {
		s.log.Error("failed to list comments",
			slog.String("op", op),
			slog.Int64("gallery_id", galleryID),
			slog.Any("err", err),
		)
		return models.CommentPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.CommentPage{
		GalleryID: galleryID,
		Comments:  views,
		PageInfo:  models.NewPageInfo(page, size, total),
	}, nil
}

func (s *CommentService) PageForArtwork(ctx context.Context, galleryID, artworkID int64, page, size int) (models.CommentPage, error) {
	const op = "service.CommentService.PageForArtwork"

	if _, _, err := access.ArtworkForInteraction(ctx, s.galleries, s.artworks, galleryID, artworkID); err != nil {
		return models.CommentPage{}, fmt.Errorf("%s: %w", op, err)
	}

	page, size = pagination.Normalize(page, size)

	views, total, err := s.comments.ListArtworkComments(ctx, artworkID, page, size)
	if err != nil {
		s.log.Error("failed to list comments",
			slog.String("op", op),
			slog.Int64("artwork_id", artworkID),
			slog.Any("err", err),
		)
		return models.CommentPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.CommentPage{
		GalleryID: galleryID,
		ArtworkID: &artworkID,
		Comments:  views,
		PageInfo:  models.NewPageInfo(page, size, total),
	}, nil
}

// Modify меняет текст комментария. Только автор; nil оставляет текст как есть.
func (s *CommentService) Modify(ctx context.Context, galleryID, commentID, memberID int64, content *string) (models.CommentView, error) {
	const op = "service.CommentService.Modify"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("comment_id", commentID),
	)

	comment, _, err := access.GalleryComment(ctx, s.galleries, s.comments, galleryID, commentID)
	if err != nil {
		log.Debug("comment is not reachable", slog.Any("err", err))
		return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
	}

	if !comment.IsOwner(memberID) {
		log.Warn("member is not the comment author")
		return models.CommentView{}, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	if content != nil {
		if err := validateContent(*content); err != nil {
			return models.CommentView{}, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.comments.UpdateCommentContent(ctx, commentID, *content); err != nil {
			log.Error("failed to update comment", slog.Any("err", err))
			return models.CommentView{}, fmt.Errorf("%s: %w", op, notFound(err))
		}
	}

	view, err := s.comments.GetCommentView(ctx, commentID)
	if err != nil {
		return models.CommentView{}, fmt.Errorf("%s: %w", op, notFound(err))
	}

	log.Info("comment modified")
	return view, nil
}

// Delete удаляет комментарий. Может автор или владелец галереи.
func (s *CommentService) Delete(ctx context.Context, galleryID, commentID, memberID int64) error {
	const op = "service.CommentService.Delete"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("comment_id", commentID),
	)

	comment, gallery, err := access.GalleryComment(ctx, s.galleries, s.comments, galleryID, commentID)
	if err != nil {
		log.Debug("comment is not reachable", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !comment.IsOwner(memberID) && !gallery.IsOwner(memberID) {
		log.Warn("member can not delete comment")
		return fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		log.Error("failed to delete comment", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, notFound(err))
	}

	log.Info("comment deleted")
	return nil
}

// create пишет комментарий и его уведомления в одной транзакции.
func (s *CommentService) create(ctx context.Context, comment models.Comment, events []models.AlarmEvent) (models.CommentView, error) {
	var view models.CommentView

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.comments.CreateComment(ctx, comment)
		if err != nil {
			return err
		}

		for _, event := range events {
			if err := s.alarms.Emit(ctx, event); err != nil {
				return err
			}
		}

		view, err = s.comments.GetCommentView(ctx, id)
		return err
	})

	return view, err
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errs.ErrInvalidContent.WithMessage("content must not be blank")
	}
	if len([]rune(content)) > maxCommentLen {
		return errs.ErrInvalidContent.WithMessage(fmt.Sprintf("content must be at most %d characters", maxCommentLen))
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrCommentNotFound) {
		return errs.ErrCommentNotFound
	}
	return err
}
