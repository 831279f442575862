package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fourcut/internal/domain/models"
	"fourcut/internal/metrics"
	"fourcut/internal/repository"
	"fourcut/internal/services/access"
	"fourcut/internal/storage"
)

// maxToggleAttempts сколько раз транзакция переключения перезапускается после
// конфликта уникального индекса на первой вставке.
const maxToggleAttempts = 3

type Notifier interface {
	Emit(ctx context.Context, event models.AlarmEvent) error
}

type LikeService struct {
	log       *slog.Logger
	tx        repository.Transactor
	galleries repository.GalleryRepository
	artworks  repository.ArtworkRepository
	likes     repository.LikeRepository
	alarms    Notifier
}

func NewLikeService(
	log *slog.Logger,
	tx repository.Transactor,
	galleries repository.GalleryRepository,
	artworks repository.ArtworkRepository,
	likes repository.LikeRepository,
	alarms Notifier,
) *LikeService {
	return &LikeService{
		log:       log,
		tx:        tx,
		galleries: galleries,
		artworks:  artworks,
		likes:     likes,
		alarms:    alarms,
	}
}

// Toggle переключает лайк участника: нет строки -> LIKE, LIKE -> CANCEL, CANCEL -> LIKE.
// Строка пары создается один раз, дальше меняется только статус. Переход в LIKE
// уведомляет автора работы.
func (s *LikeService) Toggle(ctx context.Context, memberID, galleryID, artworkID int64) (models.ArtworkLike, error) {
	const op = "service.LikeService.Toggle"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("gallery_id", galleryID),
		slog.Int64("artwork_id", artworkID),
	)

	artwork, _, err := access.ArtworkForInteraction(ctx, s.galleries, s.artworks, galleryID, artworkID)
	if err != nil {
		log.Debug("artwork can not be liked", slog.Any("err", err))
		return models.ArtworkLike{}, fmt.Errorf("%s: %w", op, err)
	}

	var like models.ArtworkLike
	for attempt := 1; ; attempt++ {
		like, err = s.toggleOnce(ctx, memberID, artwork)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrLikeExists) || attempt == maxToggleAttempts {
			log.Error("failed to toggle like", slog.Int("attempt", attempt), slog.Any("err", err))
			return models.ArtworkLike{}, fmt.Errorf("%s: %w", op, err)
		}

		metrics.LikeToggleRetriesTotal.Inc()
		log.Debug("like row created concurrently, retrying", slog.Int("attempt", attempt))
	}

	metrics.LikeTogglesTotal.WithLabelValues(string(like.Status)).Inc()
	log.Info("like toggled", slog.String("status", string(like.Status)))

	return like, nil
}

func (s *LikeService) toggleOnce(ctx context.Context, memberID int64, artwork models.Artwork) (models.ArtworkLike, error) {
	var like models.ArtworkLike

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.likes.GetLikeForUpdate(ctx, memberID, artwork.ID)
		switch {
		case errors.Is(err, storage.ErrLikeNotFound):
			like = models.ArtworkLike{
				MemberID:  memberID,
				ArtworkID: artwork.ID,
				Status:    models.LikeStatusLike,
			}
			if like.ID, err = s.likes.CreateLike(ctx, like); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			like = current
			like.Status = current.Status.Toggled()
			if err := s.likes.UpdateLikeStatus(ctx, like.ID, like.Status); err != nil {
				return err
			}
		}

		if like.Status != models.LikeStatusLike {
			return nil
		}

		galleryID, artworkID := artwork.GalleryID, artwork.ID
		return s.alarms.Emit(ctx, models.AlarmEvent{
			SenderID:   memberID,
			ReceiverID: artwork.MemberID,
			Type:       models.AlarmLikeArtwork,
			GalleryID:  &galleryID,
			ArtworkID:  &artworkID,
		})
	})

	return like, err
}
