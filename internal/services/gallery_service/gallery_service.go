package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/repository"
	"fourcut/internal/services/access"
	"fourcut/internal/storage"
	"fourcut/internal/transport/http/dto"
)

type GalleryService struct {
	log       *slog.Logger
	tx        repository.Transactor
	galleries repository.GalleryRepository
}

func NewGalleryService(log *slog.Logger, tx repository.Transactor, galleries repository.GalleryRepository) *GalleryService {
	return &GalleryService{
		log:       log,
		tx:        tx,
		galleries: galleries,
	}
}

// Open открывает новую галерею участника. Одновременно у участника может быть только одна OPEN галерея.
func (s *GalleryService) Open(ctx context.Context, memberID int64, req dto.OpenGalleryRequest) (models.Gallery, error) {
	const op = "service.GalleryService.Open"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	if err := validateGalleryText(&req.Title, &req.Content); err != nil {
		log.Warn("invalid gallery", slog.Any("err", err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	var created models.Gallery
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.galleries.ExistsOpenGallery(ctx, memberID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrGalleryAlreadyOpen
		}

		id, err := s.galleries.CreateGallery(ctx, models.Gallery{
			MemberID: memberID,
			Title:    req.Title,
			Content:  req.Content,
			Status:   models.GalleryOpen,
		})
		if err != nil {
			// проверка выше не спасает от параллельного открытия, его ловит уникальный индекс
			if errors.Is(err, storage.ErrGalleryExists) {
				return errs.ErrGalleryAlreadyOpen
			}
			return err
		}

		created, err = s.galleries.GetGalleryByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, errs.ErrGalleryAlreadyOpen) {
			log.Warn("member already has an open gallery")
		} else {
			log.Error("failed to open gallery", slog.Any("err", err))
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery opened", slog.Int64("gallery_id", created.ID))
	return created, nil
}

// Get возвращает открытую галерею. Закрытые галереи не показываются.
func (s *GalleryService) Get(ctx context.Context, galleryID int64) (models.Gallery, error) {
	const op = "service.GalleryService.Get"

	gallery, err := access.OpenGallery(ctx, s.galleries, galleryID)
	if err != nil {
		s.log.Debug("gallery is not readable",
			slog.String("op", op),
			slog.Int64("gallery_id", galleryID),
			slog.Any("err", err),
		)
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// Patch меняет только переданные поля открытой галереи вызывающего.
func (s *GalleryService) Patch(ctx context.Context, memberID int64, req dto.PatchGalleryRequest) (models.Gallery, error) {
	const op = "service.GalleryService.Patch"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	if err := validateGalleryText(req.Title, req.Content); err != nil {
		log.Warn("invalid gallery patch", slog.Any("err", err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	var updated models.Gallery
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		gallery, err := s.galleries.GetOpenGalleryByMember(ctx, memberID)
		if err != nil {
			if errors.Is(err, storage.ErrGalleryNotFound) {
				return errs.ErrUnauthorized
			}
			return err
		}

		if req.Title != nil {
			gallery.Title = *req.Title
		}
		if req.Content != nil {
			gallery.Content = *req.Content
		}

		if err := s.galleries.UpdateGallery(ctx, gallery); err != nil {
			return err
		}

		updated, err = s.galleries.GetGalleryByID(ctx, gallery.ID)
		return err
	})
	if err != nil {
		log.Warn("failed to patch gallery", slog.Any("err", err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery patched", slog.Int64("gallery_id", updated.ID))
	return updated, nil
}

// Close закрывает открытую галерею участника. Повторный вызов возвращает GalleryNotFound.
func (s *GalleryService) Close(ctx context.Context, memberID int64) error {
	const op = "service.GalleryService.Close"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		gallery, err := s.galleries.GetOpenGalleryByMember(ctx, memberID)
		if err != nil {
			if errors.Is(err, storage.ErrGalleryNotFound) {
				return errs.ErrGalleryNotFound
			}
			return err
		}

		return s.galleries.UpdateGalleryStatus(ctx, gallery.ID, models.GalleryClosed)
	})
	if err != nil {
		log.Warn("failed to close gallery", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery closed")
	return nil
}

// validateGalleryText nil означает, что поле не передавалось.
func validateGalleryText(title, content *string) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return errs.ErrInvalidTitle.WithMessage("title must not be blank")
	}
	if title != nil && len([]rune(*title)) > 255 {
		return errs.ErrInvalidTitle.WithMessage("title must be at most 255 characters")
	}
	if content != nil && strings.TrimSpace(*content) == "" {
		return errs.ErrInvalidContent.WithMessage("content must not be blank")
	}
	return nil
}
