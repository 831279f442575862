package models

import "time"

type GalleryStatus string

const (
	GalleryOpen   GalleryStatus = "OPEN"
	GalleryClosed GalleryStatus = "CLOSED"
)

// Gallery персональная выставка участника. У участника не более одной OPEN галереи.
type Gallery struct {
	ID        int64         `json:"gallery_id"`
	MemberID  int64         `json:"member_id"` // владелец
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Status    GalleryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (g Gallery) IsOpen() bool {
	return g.Status == GalleryOpen
}

func (g Gallery) IsOwner(memberID int64) bool {
	return g.MemberID == memberID
}
