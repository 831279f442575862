package models

import "time"

// Comment комментарий к галерее; ArtworkID заполнен, если комментарий оставлен к работе.
type Comment struct {
	ID        int64     `json:"comment_id"`
	GalleryID int64     `json:"gallery_id"`
	ArtworkID *int64    `json:"artwork_id,omitempty"`
	MemberID  int64     `json:"member_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Comment) IsOwner(memberID int64) bool {
	return c.MemberID == memberID
}

type CommentView struct {
	Comment
	Nickname string `json:"nickname"`
	Profile  string `json:"profile"`
}

// PageInfo метаданные страницы; Page начинается с 1.
type PageInfo struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPageInfo(page, size int, total int64) PageInfo {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}

	return PageInfo{
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

type CommentPage struct {
	GalleryID int64         `json:"gallery_id"`
	ArtworkID *int64        `json:"artwork_id,omitempty"`
	Comments  []CommentView `json:"comments"`
	PageInfo  PageInfo      `json:"page_info"`
}
