package models

import "time"

type LikeStatus string

const (
	LikeStatusLike   LikeStatus = "LIKE"
	LikeStatusCancel LikeStatus = "CANCEL"
)

// Toggled возвращает противоположный статус.
func (s LikeStatus) Toggled() LikeStatus {
	if s == LikeStatusLike {
		return LikeStatusCancel
	}
	return LikeStatusLike
}

// ArtworkLike единственная строка на пару (участник, работа). Не удаляется, только переключается.
type ArtworkLike struct {
	ID        int64      `json:"like_id"`
	MemberID  int64      `json:"member_id"`
	ArtworkID int64      `json:"artwork_id"`
	Status    LikeStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
