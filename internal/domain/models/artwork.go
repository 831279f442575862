package models

import "time"

// Artwork работа, опубликованная в галерее. Изображение хранится во внешнем хранилище,
// в строке лежит только путь к нему.
type Artwork struct {
	ID        int64     `json:"artwork_id"`
	GalleryID int64     `json:"gallery_id"`
	MemberID  int64     `json:"member_id"` // автор работы
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Artwork) IsOwner(memberID int64) bool {
	return a.MemberID == memberID
}

func (a Artwork) BelongsTo(galleryID int64) bool {
	return a.GalleryID == galleryID
}

// ArtworkView работа вместе с агрегатами, посчитанными при чтении.
type ArtworkView struct {
	Artwork
	Nickname     string `json:"nickname"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	Liked        bool   `json:"liked"`
}
