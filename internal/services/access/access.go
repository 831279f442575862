// Package access проверки существования и принадлежности, общие для сервисов работ,
// лайков и комментариев. Ошибки хранилища переводятся в доменные.
package access

import (
	"context"
	"errors"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	"fourcut/internal/storage"
)

type GalleryGetter interface {
	GetGalleryByID(ctx context.Context, galleryID int64) (models.Gallery, error)
}

type ArtworkGetter interface {
	GetArtworkByID(ctx context.Context, artworkID int64) (models.Artwork, error)
}

type CommentGetter interface {
	GetCommentByID(ctx context.Context, commentID int64) (models.Comment, error)
}

// Gallery галерея в любом статусе.
func Gallery(ctx context.Context, galleries GalleryGetter, galleryID int64) (models.Gallery, error) {
	gallery, err := galleries.GetGalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.Gallery{}, errs.ErrGalleryNotFound
		}
		return models.Gallery{}, err
	}
	return gallery, nil
}

// OpenGallery галерея, которая еще принимает работы и комментарии.
func OpenGallery(ctx context.Context, galleries GalleryGetter, galleryID int64) (models.Gallery, error) {
	gallery, err := Gallery(ctx, galleries, galleryID)
	if err != nil {
		return models.Gallery{}, err
	}
	if !gallery.IsOpen() {
		return models.Gallery{}, errs.ErrGalleryClosed
	}
	return gallery, nil
}

func Artwork(ctx context.Context, artworks ArtworkGetter, artworkID int64) (models.Artwork, error) {
	artwork, err := artworks.GetArtworkByID(ctx, artworkID)
	if err != nil {
		if errors.Is(err, storage.ErrArtworkNotFound) {
			return models.Artwork{}, errs.ErrArtworkNotFound
		}
		return models.Artwork{}, err
	}
	return artwork, nil
}

// ArtworkForRead порядок проверок: работа существует, галерея открыта, работа из этой галереи.
func ArtworkForRead(ctx context.Context, galleries GalleryGetter, artworks ArtworkGetter, galleryID, artworkID int64) (models.Artwork, models.Gallery, error) {
	artwork, err := Artwork(ctx, artworks, artworkID)
	if err != nil {
		return models.Artwork{}, models.Gallery{}, err
	}

	gallery, err := OpenGallery(ctx, galleries, galleryID)
	if err != nil {
		return models.Artwork{}, models.Gallery{}, err
	}

	if !artwork.BelongsTo(galleryID) {
		return models.Artwork{}, models.Gallery{}, errs.ErrArtworkNotFoundFromGallery
	}

	return artwork, gallery, nil
}

// ArtworkForInteraction порядок проверок: работа существует, работа из этой галереи, галерея открыта.
// Используется для лайков и комментариев к работе.
func ArtworkForInteraction(ctx context.Context, galleries GalleryGetter, artworks ArtworkGetter, galleryID, artworkID int64) (models.Artwork, models.Gallery, error) {
	artwork, err := Artwork(ctx, artworks, artworkID)
	if err != nil {
		return models.Artwork{}, models.Gallery{}, err
	}

	if !artwork.BelongsTo(galleryID) {
		return models.Artwork{}, models.Gallery{}, errs.ErrArtworkNotFoundFromGallery
	}

	gallery, err := OpenGallery(ctx, galleries, galleryID)
	if err != nil {
		return models.Artwork{}, models.Gallery{}, err
	}

	return artwork, gallery, nil
}

// GalleryComment порядок проверок: комментарий существует, галерея существует,
// комментарий из этой галереи.
func GalleryComment(ctx context.Context, galleries GalleryGetter, comments CommentGetter, galleryID, commentID int64) (models.Comment, models.Gallery, error) {
	comment, err := comments.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			return models.Comment{}, models.Gallery{}, errs.ErrCommentNotFound
		}
		return models.Comment{}, models.Gallery{}, err
	}

	gallery, err := Gallery(ctx, galleries, galleryID)
	if err != nil {
		return models.Comment{}, models.Gallery{}, err
	}

	if comment.GalleryID != galleryID {
		return models.Comment{}, models.Gallery{}, errs.ErrCommentNotFoundFromGallery
	}

	return comment, gallery, nil
}
