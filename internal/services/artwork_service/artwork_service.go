package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/repository"
	"fourcut/internal/services/access"
	"fourcut/internal/storage"
	"fourcut/internal/transport/http/dto"
)

const (
	topArtworksLimit = 4

	maxTitleLen   = 20
	maxContentLen = 70
)

type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, error)
	Delete(ctx context.Context, filePath string) error
}

type Notifier interface {
	Emit(ctx context.Context, event models.AlarmEvent) error
}

type ArtworkService struct {
	log       *slog.Logger
	tx        repository.Transactor
	galleries repository.GalleryRepository
	artworks  repository.ArtworkRepository
	likes     repository.LikeRepository
	files     FileStorage
	alarms    Notifier
}

func NewArtworkService(
	log *slog.Logger,
	tx repository.Transactor,
	galleries repository.GalleryRepository,
	artworks repository.ArtworkRepository,
	likes repository.LikeRepository,
	files FileStorage,
	alarms Notifier,
) *ArtworkService {
	return &ArtworkService{
		log:       log,
		tx:        tx,
		galleries: galleries,
		artworks:  artworks,
		likes:     likes,
		files:     files,
		alarms:    alarms,
	}
}

// Create загружает изображение, сохраняет работу и уведомляет владельца галереи.
// Если транзакция не прошла, загруженный файл удаляется.
func (s *ArtworkService) Create(ctx context.Context, memberID, galleryID int64, input dto.ArtworkCreateInput) (models.ArtworkView, error) {
	const op = "service.ArtworkService.Create"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("gallery_id", galleryID),
	)

	gallery, err := access.OpenGallery(ctx, s.galleries, galleryID)
	if err != nil {
		log.Warn("gallery does not accept artworks", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	if input.Image == nil {
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, errs.ErrImageNotFound)
	}

	if err := validateArtworkText(&input.Title, &input.Content); err != nil {
		log.Warn("invalid artwork", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	imagePath, err := s.saveImage(ctx, galleryID, input.Image)
	if err != nil {
		log.Warn("failed to save image", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	var created models.ArtworkView
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.artworks.CreateArtwork(ctx, models.Artwork{
			GalleryID: galleryID,
			MemberID:  memberID,
			Title:     input.Title,
			Content:   input.Content,
			ImagePath: imagePath,
		})
		if err != nil {
			return err
		}

		if err := s.alarms.Emit(ctx, models.AlarmEvent{
			SenderID:   memberID,
			ReceiverID: gallery.MemberID,
			Type:       models.AlarmPostArtwork,
			GalleryID:  &galleryID,
			ArtworkID:  &id,
		}); err != nil {
			return err
		}

		created, err = s.artworks.GetArtworkView(ctx, id)
		return err
	})
	if err != nil {
		log.Error("failed to create artwork", slog.Any("err", err))
		s.removeImage(ctx, imagePath)
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("artwork created", slog.Int64("artwork_id", created.ID))
	return created, nil
}

// Get работа с агрегатами. viewerID == 0 означает анонимного зрителя.
func (s *ArtworkService) Get(ctx context.Context, viewerID, galleryID, artworkID int64) (models.ArtworkView, error) {
	const op = "service.ArtworkService.Get"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("gallery_id", galleryID),
		slog.Int64("artwork_id", artworkID),
	)

	if _, _, err := access.ArtworkForRead(ctx, s.galleries, s.artworks, galleryID, artworkID); err != nil {
		log.Debug("artwork is not readable", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	view, err := s.artworks.GetArtworkView(ctx, artworkID)
	if err != nil {
		if errors.Is(err, storage.ErrArtworkNotFound) {
			return models.ArtworkView{}, fmt.Errorf("%s: %w", op, errs.ErrArtworkNotFound)
		}
		log.Error("failed to get artwork", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	views := []models.ArtworkView{view}
	if err := s.stampLiked(ctx, viewerID, views); err != nil {
		log.Error("failed to resolve liked flag", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	return views[0], nil
}

// List все работы галереи, новые первыми. Пустая галерея дает пустой срез.
func (s *ArtworkService) List(ctx context.Context, viewerID, galleryID int64) ([]models.ArtworkView, error) {
	const op = "service.ArtworkService.List"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("gallery_id", galleryID),
	)

	if _, err := access.OpenGallery(ctx, s.galleries, galleryID); err != nil {
		log.Debug("gallery is not readable", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := s.artworks.ListArtworkViews(ctx, galleryID)
	if err != nil {
		log.Error("failed to list artworks", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.stampLiked(ctx, viewerID, views); err != nil {
		log.Error("failed to resolve liked flags", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// TopFour не больше четырех работ по убыванию лайков, при равенстве новые первыми.
func (s *ArtworkService) TopFour(ctx context.Context, galleryID int64) ([]models.ArtworkView, error) {
	const op = "service.ArtworkService.TopFour"

	if _, err := access.OpenGallery(ctx, s.galleries, galleryID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := s.artworks.TopArtworkViews(ctx, galleryID, topArtworksLimit)
	if err != nil {
		s.log.Error("failed to get top artworks",
			slog.String("op", op),
			slog.Int64("gallery_id", galleryID),
			slog.Any("err", err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// Update меняет переданные поля. Новое изображение сначала загружается, старое удаляется
// после успешного коммита.
func (s *ArtworkService) Update(ctx context.Context, memberID, galleryID, artworkID int64, input dto.ArtworkPatchInput) (models.ArtworkView, error) {
	const op = "service.ArtworkService.Update"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("gallery_id", galleryID),
		slog.Int64("artwork_id", artworkID),
	)

	artwork, _, err := access.ArtworkForRead(ctx, s.galleries, s.artworks, galleryID, artworkID)
	if err != nil {
		log.Debug("artwork is not readable", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	if !artwork.IsOwner(memberID) {
		log.Warn("member is not the artwork owner")
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	if err := validateArtworkText(input.Title, input.Content); err != nil {
		log.Warn("invalid artwork patch", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	if input.Title != nil {
		artwork.Title = *input.Title
	}
	if input.Content != nil {
		artwork.Content = *input.Content
	}

	previousImage := artwork.ImagePath
	if input.Image != nil {
		artwork.ImagePath, err = s.saveImage(ctx, galleryID, input.Image)
		if err != nil {
			log.Warn("failed to save image", slog.Any("err", err))
			return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var updated models.ArtworkView
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.artworks.UpdateArtwork(ctx, artwork); err != nil {
			return err
		}

		updated, err = s.artworks.GetArtworkView(ctx, artworkID)
		return err
	})
	if err != nil {
		log.Error("failed to update artwork", slog.Any("err", err))
		if input.Image != nil {
			s.removeImage(ctx, artwork.ImagePath)
		}
		if errors.Is(err, storage.ErrArtworkNotFound) {
			return models.ArtworkView{}, fmt.Errorf("%s: %w", op, errs.ErrArtworkNotFound)
		}
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	if input.Image != nil {
		s.removeImage(ctx, previousImage)
	}

	views := []models.ArtworkView{updated}
	if err := s.stampLiked(ctx, memberID, views); err != nil {
		log.Error("failed to resolve liked flag", slog.Any("err", err))
		return models.ArtworkView{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("artwork updated")
	return views[0], nil
}

// Delete удаляет изображение, затем работу вместе с ее лайками и комментариями.
// Удалять может автор работы или владелец галереи.
func (s *ArtworkService) Delete(ctx context.Context, memberID, galleryID, artworkID int64) error {
	const op = "service.ArtworkService.Delete"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("member_id", memberID),
		slog.Int64("gallery_id", galleryID),
		slog.Int64("artwork_id", artworkID),
	)

	artwork, gallery, err := access.ArtworkForRead(ctx, s.galleries, s.artworks, galleryID, artworkID)
	if err != nil {
		log.Debug("artwork is not readable", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !artwork.IsOwner(memberID) && !gallery.IsOwner(memberID) {
		log.Warn("member can not delete artwork")
		return fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.files.Delete(ctx, artwork.ImagePath); err != nil {
			if !errors.Is(err, storage.ErrFileNotFound) {
				return err
			}
			log.Warn("image already gone", slog.String("image_path", artwork.ImagePath))
		}

		return s.artworks.DeleteArtwork(ctx, artworkID)
	})
	if err != nil {
		log.Error("failed to delete artwork", slog.Any("err", err))
		if errors.Is(err, storage.ErrArtworkNotFound) {
			return fmt.Errorf("%s: %w", op, errs.ErrArtworkNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("artwork deleted")
	return nil
}

func (s *ArtworkService) saveImage(ctx context.Context, galleryID int64, image *multipart.FileHeader) (string, error) {
	path, err := s.files.Save(ctx, image, fmt.Sprintf("artworks/%d", galleryID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidFileType):
			return "", errs.ErrInvalidImage.WithMessage("image must have an image/* content type")
		case errors.Is(err, storage.ErrFileTooLarge):
			return "", errs.ErrInvalidImage.WithMessage("image is too large")
		case errors.Is(err, storage.ErrFileNotFound):
			return "", errs.ErrImageNotFound
		}
		return "", err
	}
	return path, nil
}

func (s *ArtworkService) removeImage(ctx context.Context, path string) {
	if err := s.files.Delete(context.WithoutCancel(ctx), path); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		s.log.Warn("failed to remove image",
			slog.String("op", "service.ArtworkService.removeImage"),
			slog.String("image_path", path),
			slog.Any("err", err),
		)
	}
}

// stampLiked проставляет liked для зрителя одним запросом на весь срез.
func (s *ArtworkService) stampLiked(ctx context.Context, viewerID int64, views []models.ArtworkView) error {
	if viewerID == 0 || len(views) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}

	liked, err := s.likes.LikedArtworkIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}

	for i := range views {
		views[i].Liked = liked[views[i].ID]
	}
	return nil
}

// validateArtworkText nil означает, что поле не передавалось.
func validateArtworkText(title, content *string) error {
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return errs.ErrInvalidTitle.WithMessage("title must not be blank")
		}
		if len([]rune(*title)) > maxTitleLen {
			return errs.ErrInvalidTitle.WithMessage(fmt.Sprintf("title must be at most %d characters", maxTitleLen))
		}
	}
	if content != nil {
		if strings.TrimSpace(*content) == "" {
			return errs.ErrInvalidContent.WithMessage("content must not be blank")
		}
		if len([]rune(*content)) > maxContentLen {
			return errs.ErrInvalidContent.WithMessage(fmt.Sprintf("content must be at most %d characters", maxContentLen))
		}
	}
	return nil
}
