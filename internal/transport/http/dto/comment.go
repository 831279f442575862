package dto

import (
	"time"

	"fourcut/internal/domain/models"
)

type CommentRequest struct {
	Content *string `json:"content" validate:"required,notblank,max=30"`
}

// CommentPatchRequest без content комментарий остается прежним
type CommentPatchRequest struct {
	Content *string `json:"content" validate:"omitnil,notblank,max=30"`
}

type CommentResponse struct {
	CommentID  int64     `json:"comment_id"`
	GalleryID  int64     `json:"gallery_id"`
	ArtworkID  *int64    `json:"artwork_id,omitempty"`
	MemberID   int64     `json:"member_id"`
	Nickname   string    `json:"nickname"`
	Profile    string    `json:"profile"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type CommentPageResponse struct {
	GalleryID int64             `json:"gallery_id"`
	ArtworkID *int64            `json:"artwork_id,omitempty"`
	Comments  []CommentResponse `json:"comments"`
	PageInfo  models.PageInfo   `json:"page_info"`
}

func NewCommentResponse(v models.CommentView) CommentResponse {
	return CommentResponse{
		CommentID:  v.ID,
		GalleryID:  v.GalleryID,
		ArtworkID:  v.ArtworkID,
		MemberID:   v.MemberID,
		Nickname:   v.Nickname,
		Profile:    v.Profile,
		Content:    v.Content,
		CreatedAt:  v.CreatedAt,
		ModifiedAt: v.UpdatedAt,
	}
}

func NewCommentPageResponse(p models.CommentPage) CommentPageResponse {
	comments := make([]CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, NewCommentResponse(c))
	}

	return CommentPageResponse{
		GalleryID: p.GalleryID,
		ArtworkID: p.ArtworkID,
		Comments:  comments,
		PageInfo:  p.PageInfo,
	}
}
