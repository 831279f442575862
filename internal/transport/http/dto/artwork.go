package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"fourcut/internal/domain/models"
)

// ArtworkCreateInput данные multipart-формы создания работы
type ArtworkCreateInput struct {
	Title   string                `form:"title" validate:"required,notblank,max=20"`
	Content string                `form:"content" validate:"required,notblank,max=70"`
	Image   *multipart.FileHeader `form:"-" validate:"-"`
}

// ArtworkPatchInput поля, которых не было в форме, остаются nil и не меняются
type ArtworkPatchInput struct {
	Title   *string               `form:"title" validate:"omitnil,notblank,max=20"`
	Content *string               `form:"content" validate:"omitnil,notblank,max=70"`
	Image   *multipart.FileHeader `form:"-" validate:"-"`
}

func (in ArtworkPatchInput) Empty() bool {
	return in.Title == nil && in.Content == nil && in.Image == nil
}

type ArtworkResponse struct {
	ArtworkID    int64     `json:"artwork_id"`
	GalleryID    int64     `json:"gallery_id"`
	MemberID     int64     `json:"member_id"`
	Nickname     string    `json:"nickname"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ImagePath    string    `json:"image_path"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TopArtworkResponse элемент подборки самых популярных работ
type TopArtworkResponse struct {
	ArtworkID int64  `json:"artwork_id"`
	ImagePath string `json:"image_path"`
	LikeCount int    `json:"like_count"`
}

type LikeResponse struct {
	ArtworkID int64  `json:"artwork_id"`
	Status    string `json:"status"`
	Liked     bool   `json:"liked"`
}

func NewArtworkResponse(v models.ArtworkView, imageBaseURL string) ArtworkResponse {
	return ArtworkResponse{
		ArtworkID:    v.ID,
		GalleryID:    v.GalleryID,
		MemberID:     v.MemberID,
		Nickname:     v.Nickname,
		Title:        v.Title,
		Content:      v.Content,
		ImagePath:    ImageURL(imageBaseURL, v.ImagePath),
		LikeCount:    v.LikeCount,
		CommentCount: v.CommentCount,
		Liked:        v.Liked,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func NewArtworkListResponse(views []models.ArtworkView, imageBaseURL string) []ArtworkResponse {
	res := make([]ArtworkResponse, 0, len(views))
	for _, v := range views {
		res = append(res, NewArtworkResponse(v, imageBaseURL))
	}
	return res
}

func NewTopArtworkResponse(views []models.ArtworkView, imageBaseURL string) []TopArtworkResponse {
	res := make([]TopArtworkResponse, 0, len(views))
	for _, v := range views {
		res = append(res, TopArtworkResponse{
			ArtworkID: v.ID,
			ImagePath: ImageURL(imageBaseURL, v.ImagePath),
			LikeCount: v.LikeCount,
		})
	}
	return res
}

// ImageURL склеивает публичный адрес хранилища и путь изображения
func ImageURL(baseURL, imagePath string) string {
	if baseURL == "" {
		return imagePath
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(imagePath, "/")
}
