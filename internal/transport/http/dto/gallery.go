package dto

import (
	"time"

	"fourcut/internal/domain/models"
)

type OpenGalleryRequest struct {
	Title   string `json:"title" validate:"required,notblank,max=255"`
	Content string `json:"content" validate:"required,notblank"`
}

// PatchGalleryRequest отсутствующее поле (nil) не меняется
type PatchGalleryRequest struct {
	Title   *string `json:"title" validate:"omitnil,notblank,max=255"`
	Content *string `json:"content" validate:"omitnil,notblank"`
}

// GalleryResponse представляет собой DTO для ответа с данными о галерее
type GalleryResponse struct {
	GalleryID int64     `json:"gallery_id"`
	MemberID  int64     `json:"member_id"` // Владелец галереи
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"` // OPEN или CLOSED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGalleryResponse(g models.Gallery) GalleryResponse {
	return GalleryResponse{
		GalleryID: g.ID,
		MemberID:  g.MemberID,
		Title:     g.Title,
		Content:   g.Content,
		Status:    string(g.Status),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
